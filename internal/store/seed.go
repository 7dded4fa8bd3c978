// internal/store/seed.go
// Development-mode sample data.

package store

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed loads sample users, catalog data and a couple of live check-ins.
// Intended for the in-memory store in development mode; it assumes an empty
// store and does not check for duplicates.
func Seed(ctx context.Context, s Store) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed password hash: %w", err)
	}

	users := []*User{
		{Username: "demo_user", FirstName: strPtr("Demo"), LastName: strPtr("User"), Bio: strPtr("Just exploring the city and meeting new people"), Location: strPtr("Downtown")},
		{Username: "alex_dev", FirstName: strPtr("Alex"), LastName: strPtr("Chen"), Bio: strPtr("Software engineer who codes best with a flat white in hand"), Location: strPtr("Downtown")},
		{Username: "sara_design", FirstName: strPtr("Sara"), LastName: strPtr("Kim"), Bio: strPtr("Product designer, sketchbook always within reach"), Location: strPtr("Midtown")},
		{Username: "mike_data", FirstName: strPtr("Mike"), LastName: strPtr("Okafor"), Bio: strPtr("Data scientist and amateur barista"), Location: strPtr("Downtown")},
	}
	for _, u := range users {
		u.PasswordHash = string(hash)
		if err := s.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	locations := []*Location{
		{Name: "The Daily Grind", Address: "123 Main St", Type: "cafe", Icon: strPtr("coffee")},
		{Name: "Central Library", Address: "456 Oak Ave", Type: "library", Icon: strPtr("book")},
		{Name: "Hub Coworking", Address: "789 Market St", Type: "coworking", Icon: strPtr("briefcase")},
	}
	for _, l := range locations {
		if err := s.CreateLocation(ctx, l); err != nil {
			return fmt.Errorf("seed location %s: %w", l.Name, err)
		}
	}

	activities := []*Activity{
		{Name: "Networking", Icon: strPtr("users")},
		{Name: "Studying", Icon: strPtr("book-open")},
		{Name: "Working", Icon: strPtr("laptop")},
		{Name: "Socializing", Icon: strPtr("message-circle")},
	}
	for _, a := range activities {
		if err := s.CreateActivity(ctx, a); err != nil {
			return fmt.Errorf("seed activity %s: %w", a.Name, err)
		}
	}

	interestNames := []string{
		"Technology", "Design", "Coffee", "Music", "Startups", "Photography",
		"Books", "Fitness", "Travel", "Food", "Art", "Data Science",
	}
	interests := make([]*Interest, 0, len(interestNames))
	for _, name := range interestNames {
		i := &Interest{Name: name}
		if err := s.CreateInterest(ctx, i); err != nil {
			return fmt.Errorf("seed interest %s: %w", name, err)
		}
		interests = append(interests, i)
	}

	// demo_user: Technology, Design, Coffee, Music
	// alex_dev:  Technology, Coffee, Startups, Data Science
	// sara_design: Design, Art, Photography, Coffee
	// mike_data: Data Science, Technology, Books
	userInterests := map[int64][]int{
		users[0].ID: {0, 1, 2, 3},
		users[1].ID: {0, 2, 4, 11},
		users[2].ID: {1, 10, 5, 2},
		users[3].ID: {11, 0, 6},
	}
	for userID, idxs := range userInterests {
		for _, idx := range idxs {
			if err := s.AddUserInterest(ctx, userID, interests[idx].ID); err != nil {
				return fmt.Errorf("seed user interest: %w", err)
			}
		}
	}

	if err := s.AddUserActivity(ctx, users[0].ID, activities[0].ID); err != nil {
		return fmt.Errorf("seed user activity: %w", err)
	}
	if err := s.AddUserActivity(ctx, users[1].ID, activities[2].ID); err != nil {
		return fmt.Errorf("seed user activity: %w", err)
	}

	now := time.Now()
	checkins := []struct {
		checkin   *Checkin
		interests []int64
	}{
		{
			checkin: &Checkin{
				UserID:     users[1].ID,
				LocationID: locations[0].ID,
				ActivityID: activities[2].ID,
				Note:       strPtr("Heads-down on a side project, say hi if you see me"),
				ExpiresAt:  now.Add(2 * time.Hour),
			},
			interests: []int64{interests[0].ID, interests[2].ID},
		},
		{
			checkin: &Checkin{
				UserID:     users[2].ID,
				LocationID: locations[2].ID,
				ActivityID: activities[0].ID,
				Note:       strPtr("Here for the design meetup"),
				ExpiresAt:  now.Add(3 * time.Hour),
			},
			interests: []int64{interests[1].ID, interests[10].ID},
		},
	}
	for _, c := range checkins {
		if err := s.CreateCheckin(ctx, c.checkin, c.interests); err != nil {
			return fmt.Errorf("seed checkin: %w", err)
		}
	}

	return nil
}

func strPtr(s string) *string {
	return &s
}
