// internal/discovery/models.go

package discovery

import "github.com/imadgeboyega/spotlink-backend/internal/store"

// Candidate is one recommended user. SimilarityScore is formatted to two
// decimals for the client; ranking uses the unrounded value.
type Candidate struct {
	User                 *store.UserInfo   `json:"user"`
	SimilarityScore      string            `json:"similarityScore"`
	SharedInterests      []*store.Interest `json:"sharedInterests"`
	TotalSharedInterests int               `json:"totalSharedInterests"`
}
