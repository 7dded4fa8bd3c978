// internal/discovery/engine.go
// Interest-similarity recommendations ranked by Jaccard coefficient.

package discovery

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var ErrUserNotFound = errors.New("user not found")

// Engine computes ranked candidate lists. It holds no state between calls;
// interest sets are re-read from the store on every computation.
type Engine struct {
	store store.Store
}

// NewEngine creates a recommendation engine
func NewEngine(st store.Store) *Engine {
	return &Engine{store: st}
}

type scoredCandidate struct {
	raw       float64
	candidate *Candidate
}

// Recommend ranks every other user by interest similarity. Users with no
// declared interests and users sharing nothing with the subject are left
// out entirely. An empty result is a normal outcome, not an error.
func (e *Engine) Recommend(ctx context.Context, userID int64) ([]*Candidate, error) {
	if _, err := e.store.GetUser(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	recordRecommendationRequest()

	myInterests, err := e.store.GetUserInterests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load interests: %w", err)
	}
	if len(myInterests) == 0 {
		return []*Candidate{}, nil
	}

	mySet := make(map[int64]bool, len(myInterests))
	for _, interest := range myInterests {
		mySet[interest.ID] = true
	}

	users, err := e.store.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	var scored []scoredCandidate
	for _, other := range users {
		if other.ID == userID {
			continue
		}

		otherInterests, err := e.store.GetUserInterests(ctx, other.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load interests: %w", err)
		}
		if len(otherInterests) == 0 {
			continue
		}

		// Both sides are treated as sets so duplicate join rows cannot
		// inflate the intersection or deflate the union.
		otherSet := make(map[int64]bool, len(otherInterests))
		var shared []*store.Interest
		for _, interest := range otherInterests {
			if otherSet[interest.ID] {
				continue
			}
			otherSet[interest.ID] = true
			if mySet[interest.ID] {
				shared = append(shared, interest)
			}
		}
		if len(shared) == 0 {
			continue
		}

		union := len(mySet) + len(otherSet) - len(shared)
		score := float64(len(shared)) / float64(union)
		recordSimilarityScore(score)

		scored = append(scored, scoredCandidate{
			raw: score,
			candidate: &Candidate{
				User:                 other.Info(),
				SimilarityScore:      fmt.Sprintf("%.2f", score),
				SharedInterests:      shared,
				TotalSharedInterests: len(shared),
			},
		})
	}

	// Ties break on user ID so the ranking is stable across calls.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].raw != scored[j].raw {
			return scored[i].raw > scored[j].raw
		}
		return scored[i].candidate.User.ID < scored[j].candidate.User.ID
	})

	candidates := make([]*Candidate, len(scored))
	for i, sc := range scored {
		candidates[i] = sc.candidate
	}
	return candidates, nil
}
