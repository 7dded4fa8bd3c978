package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

func seedUser(t *testing.T, st *store.MemStore, username string) *store.User {
	t.Helper()
	user := &store.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, st.CreateUser(context.Background(), user))
	return user
}

func seedInterest(t *testing.T, st *store.MemStore, name string) *store.Interest {
	t.Helper()
	interest := &store.Interest{Name: name}
	require.NoError(t, st.CreateInterest(context.Background(), interest))
	return interest
}

func giveInterests(t *testing.T, st *store.MemStore, userID int64, interests ...*store.Interest) {
	t.Helper()
	for _, interest := range interests {
		require.NoError(t, st.AddUserInterest(context.Background(), userID, interest.ID))
	}
}

func TestRecommendWorkedExample(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	u1 := seedUser(t, st, "u1")
	u2 := seedUser(t, st, "u2")
	u3 := seedUser(t, st, "u3")

	design := seedInterest(t, st, "Design")
	coffee := seedInterest(t, st, "Coffee")
	tech := seedInterest(t, st, "Technology")
	music := seedInterest(t, st, "Music")

	giveInterests(t, st, u1.ID, design, coffee)
	giveInterests(t, st, u2.ID, design, tech)
	giveInterests(t, st, u3.ID, music)

	candidates, err := NewEngine(st).Recommend(ctx, u1.ID)
	require.NoError(t, err)

	// u2 shares Design (1 of 3 in the union); u3 shares nothing.
	require.Len(t, candidates, 1)
	assert.Equal(t, u2.ID, candidates[0].User.ID)
	assert.Equal(t, "0.33", candidates[0].SimilarityScore)
	assert.Equal(t, 1, candidates[0].TotalSharedInterests)
	require.Len(t, candidates[0].SharedInterests, 1)
	assert.Equal(t, "Design", candidates[0].SharedInterests[0].Name)
}

func TestRecommendSymmetry(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	a := seedUser(t, st, "a")
	b := seedUser(t, st, "b")

	design := seedInterest(t, st, "Design")
	coffee := seedInterest(t, st, "Coffee")
	tech := seedInterest(t, st, "Technology")

	giveInterests(t, st, a.ID, design, coffee)
	giveInterests(t, st, b.ID, design, tech)

	engine := NewEngine(st)

	fromA, err := engine.Recommend(ctx, a.ID)
	require.NoError(t, err)
	fromB, err := engine.Recommend(ctx, b.ID)
	require.NoError(t, err)

	require.Len(t, fromA, 1)
	require.Len(t, fromB, 1)
	assert.Equal(t, fromA[0].SimilarityScore, fromB[0].SimilarityScore)
}

func TestRecommendEmptyInterestSetIsTerminal(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	subject := seedUser(t, st, "subject")
	other := seedUser(t, st, "other")
	giveInterests(t, st, other.ID, seedInterest(t, st, "Design"))

	candidates, err := NewEngine(st).Recommend(ctx, subject.ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRecommendSkipsUsersWithoutInterests(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	subject := seedUser(t, st, "subject")
	seedUser(t, st, "blank")
	giveInterests(t, st, subject.ID, seedInterest(t, st, "Design"))

	candidates, err := NewEngine(st).Recommend(ctx, subject.ID)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestRecommendOrdersByScoreThenID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	subject := seedUser(t, st, "subject")
	high := seedUser(t, st, "high")
	tieA := seedUser(t, st, "tie_a")
	tieB := seedUser(t, st, "tie_b")

	design := seedInterest(t, st, "Design")
	coffee := seedInterest(t, st, "Coffee")
	tech := seedInterest(t, st, "Technology")

	giveInterests(t, st, subject.ID, design, coffee)
	// Perfect overlap: score 1.0.
	giveInterests(t, st, high.ID, design, coffee)
	// Both tie users share one interest against a 3-element union.
	giveInterests(t, st, tieA.ID, design, tech)
	giveInterests(t, st, tieB.ID, coffee, tech)

	candidates, err := NewEngine(st).Recommend(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	assert.Equal(t, high.ID, candidates[0].User.ID)
	assert.Equal(t, "1.00", candidates[0].SimilarityScore)
	assert.Equal(t, tieA.ID, candidates[1].User.ID, "ties break on lower user ID first")
	assert.Equal(t, tieB.ID, candidates[2].User.ID)
}

// duplicatingStore doubles one user's interest rows to model a backend that
// returns duplicate join rows.
type duplicatingStore struct {
	*store.MemStore
	duplicateFor int64
}

func (d *duplicatingStore) GetUserInterests(ctx context.Context, userID int64) ([]*store.Interest, error) {
	interests, err := d.MemStore.GetUserInterests(ctx, userID)
	if err != nil || userID != d.duplicateFor {
		return interests, err
	}
	return append(interests, interests...), nil
}

func TestRecommendTolerantOfDuplicateInterestRows(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	a := seedUser(t, st, "a")
	b := seedUser(t, st, "b")

	design := seedInterest(t, st, "Design")
	giveInterests(t, st, a.ID, design)
	giveInterests(t, st, b.ID, design)

	engine := NewEngine(&duplicatingStore{MemStore: st, duplicateFor: b.ID})

	fromA, err := engine.Recommend(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, fromA, 1)
	assert.Equal(t, "1.00", fromA[0].SimilarityScore)
	assert.Equal(t, 1, fromA[0].TotalSharedInterests)

	fromB, err := engine.Recommend(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, fromB, 1)
	assert.Equal(t, fromA[0].SimilarityScore, fromB[0].SimilarityScore)
}

func TestRecommendUnknownUser(t *testing.T) {
	st := store.NewMemStore()
	_, err := NewEngine(st).Recommend(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecommendRedactsCandidates(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()

	subject := seedUser(t, st, "subject")
	other := seedUser(t, st, "other")

	design := seedInterest(t, st, "Design")
	giveInterests(t, st, subject.ID, design)
	giveInterests(t, st, other.ID, design)

	candidates, err := NewEngine(st).Recommend(ctx, subject.ID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "other", candidates[0].User.Username)
}
