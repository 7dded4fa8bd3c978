// internal/store/postgres.go
// PostgreSQL-backed Store implementation.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore implements Store on top of sqlx. CreateCheckin is the only
// multi-statement write and runs in a transaction.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// User methods

func (s *PostgresStore) GetUser(ctx context.Context, id int64) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE id = $1`

	err := s.db.GetContext(ctx, &user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	query := `SELECT * FROM users WHERE username = $1`

	err := s.db.GetContext(ctx, &user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &user, nil
}

func (s *PostgresStore) GetAllUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	query := `SELECT * FROM users ORDER BY id`

	if err := s.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("get all users: %w", err)
	}
	return users, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, profile_image_url, bio, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx, query,
		user.Username, user.PasswordHash, user.FirstName,
		user.LastName, user.ProfileImageURL, user.Bio, user.Location,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateUser(ctx context.Context, user *User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, profile_image_url = $4,
		    bio = $5, location = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx, query,
		user.ID, user.FirstName, user.LastName,
		user.ProfileImageURL, user.Bio, user.Location,
	).Scan(&user.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Location methods

func (s *PostgresStore) GetLocation(ctx context.Context, id int64) (*Location, error) {
	var location Location
	query := `SELECT * FROM locations WHERE id = $1`

	err := s.db.GetContext(ctx, &location, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &location, nil
}

func (s *PostgresStore) GetAllLocations(ctx context.Context) ([]*Location, error) {
	var locations []*Location
	query := `SELECT * FROM locations ORDER BY id`

	if err := s.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("get all locations: %w", err)
	}
	return locations, nil
}

func (s *PostgresStore) CreateLocation(ctx context.Context, location *Location) error {
	query := `
		INSERT INTO locations (name, address, type, icon)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := s.db.QueryRowxContext(
		ctx, query,
		location.Name, location.Address, location.Type, location.Icon,
	).Scan(&location.ID)
	if err != nil {
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// Interest methods

func (s *PostgresStore) GetInterest(ctx context.Context, id int64) (*Interest, error) {
	var interest Interest
	query := `SELECT * FROM interests WHERE id = $1`

	err := s.db.GetContext(ctx, &interest, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get interest: %w", err)
	}
	return &interest, nil
}

func (s *PostgresStore) GetAllInterests(ctx context.Context) ([]*Interest, error) {
	var interests []*Interest
	query := `SELECT * FROM interests ORDER BY id`

	if err := s.db.SelectContext(ctx, &interests, query); err != nil {
		return nil, fmt.Errorf("get all interests: %w", err)
	}
	return interests, nil
}

func (s *PostgresStore) CreateInterest(ctx context.Context, interest *Interest) error {
	query := `INSERT INTO interests (name) VALUES ($1) RETURNING id`

	if err := s.db.QueryRowxContext(ctx, query, interest.Name).Scan(&interest.ID); err != nil {
		return fmt.Errorf("create interest: %w", err)
	}
	return nil
}

// User interest methods

func (s *PostgresStore) GetUserInterests(ctx context.Context, userID int64) ([]*Interest, error) {
	var interests []*Interest
	query := `
		SELECT i.* FROM interests i
		JOIN user_interests ui ON ui.interest_id = i.id
		WHERE ui.user_id = $1
		ORDER BY i.id
	`

	if err := s.db.SelectContext(ctx, &interests, query, userID); err != nil {
		return nil, fmt.Errorf("get user interests: %w", err)
	}
	return interests, nil
}

func (s *PostgresStore) AddUserInterest(ctx context.Context, userID, interestID int64) error {
	query := `
		INSERT INTO user_interests (user_id, interest_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, userID, interestID); err != nil {
		return fmt.Errorf("add user interest: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveUserInterest(ctx context.Context, userID, interestID int64) error {
	query := `DELETE FROM user_interests WHERE user_id = $1 AND interest_id = $2`

	if _, err := s.db.ExecContext(ctx, query, userID, interestID); err != nil {
		return fmt.Errorf("remove user interest: %w", err)
	}
	return nil
}

// Activity methods

func (s *PostgresStore) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	var activity Activity
	query := `SELECT * FROM activities WHERE id = $1`

	err := s.db.GetContext(ctx, &activity, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return &activity, nil
}

func (s *PostgresStore) GetAllActivities(ctx context.Context) ([]*Activity, error) {
	var activities []*Activity
	query := `SELECT * FROM activities ORDER BY id`

	if err := s.db.SelectContext(ctx, &activities, query); err != nil {
		return nil, fmt.Errorf("get all activities: %w", err)
	}
	return activities, nil
}

func (s *PostgresStore) CreateActivity(ctx context.Context, activity *Activity) error {
	query := `INSERT INTO activities (name, icon) VALUES ($1, $2) RETURNING id`

	if err := s.db.QueryRowxContext(ctx, query, activity.Name, activity.Icon).Scan(&activity.ID); err != nil {
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

// User activity methods

func (s *PostgresStore) GetUserActivities(ctx context.Context, userID int64) ([]*Activity, error) {
	var activities []*Activity
	query := `
		SELECT a.* FROM activities a
		JOIN user_activities ua ON ua.activity_id = a.id
		WHERE ua.user_id = $1
		ORDER BY a.id
	`

	if err := s.db.SelectContext(ctx, &activities, query, userID); err != nil {
		return nil, fmt.Errorf("get user activities: %w", err)
	}
	return activities, nil
}

func (s *PostgresStore) AddUserActivity(ctx context.Context, userID, activityID int64) error {
	query := `
		INSERT INTO user_activities (user_id, activity_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, userID, activityID); err != nil {
		return fmt.Errorf("add user activity: %w", err)
	}
	return nil
}

func (s *PostgresStore) RemoveUserActivity(ctx context.Context, userID, activityID int64) error {
	query := `DELETE FROM user_activities WHERE user_id = $1 AND activity_id = $2`

	if _, err := s.db.ExecContext(ctx, query, userID, activityID); err != nil {
		return fmt.Errorf("remove user activity: %w", err)
	}
	return nil
}

// Check-in methods

func (s *PostgresStore) GetCheckin(ctx context.Context, id int64) (*Checkin, error) {
	var checkin Checkin
	query := `SELECT * FROM checkins WHERE id = $1`

	err := s.db.GetContext(ctx, &checkin, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get checkin: %w", err)
	}
	return &checkin, nil
}

func (s *PostgresStore) GetUserCheckins(ctx context.Context, userID int64) ([]*Checkin, error) {
	var checkins []*Checkin
	query := `SELECT * FROM checkins WHERE user_id = $1 ORDER BY id`

	if err := s.db.SelectContext(ctx, &checkins, query, userID); err != nil {
		return nil, fmt.Errorf("get user checkins: %w", err)
	}
	return checkins, nil
}

func (s *PostgresStore) GetAllCheckins(ctx context.Context) ([]*Checkin, error) {
	var checkins []*Checkin
	query := `SELECT * FROM checkins ORDER BY id`

	if err := s.db.SelectContext(ctx, &checkins, query); err != nil {
		return nil, fmt.Errorf("get all checkins: %w", err)
	}
	return checkins, nil
}

func (s *PostgresStore) GetCheckinsByLocation(ctx context.Context, locationID int64) ([]*Checkin, error) {
	var checkins []*Checkin
	query := `SELECT * FROM checkins WHERE location_id = $1 ORDER BY id`

	if err := s.db.SelectContext(ctx, &checkins, query, locationID); err != nil {
		return nil, fmt.Errorf("get checkins by location: %w", err)
	}
	return checkins, nil
}

func (s *PostgresStore) CreateCheckin(ctx context.Context, checkin *Checkin, interestIDs []int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO checkins (user_id, location_id, activity_id, note, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		RETURNING id, created_at, is_active
	`

	err = tx.QueryRowxContext(
		ctx, query,
		checkin.UserID, checkin.LocationID, checkin.ActivityID,
		checkin.Note, checkin.ExpiresAt,
	).Scan(&checkin.ID, &checkin.CreatedAt, &checkin.IsActive)
	if err != nil {
		return fmt.Errorf("create checkin: %w", err)
	}

	tagQuery := `INSERT INTO checkin_interests (checkin_id, interest_id) VALUES ($1, $2)`
	for _, interestID := range interestIDs {
		if _, err := tx.ExecContext(ctx, tagQuery, checkin.ID, interestID); err != nil {
			return fmt.Errorf("tag checkin interest: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkin tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeactivateCheckin(ctx context.Context, id int64) (*Checkin, error) {
	var checkin Checkin
	query := `
		UPDATE checkins SET is_active = FALSE
		WHERE id = $1
		RETURNING *
	`

	err := s.db.GetContext(ctx, &checkin, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("deactivate checkin: %w", err)
	}
	return &checkin, nil
}

func (s *PostgresStore) GetCheckinInterests(ctx context.Context, checkinID int64) ([]*Interest, error) {
	var interests []*Interest
	query := `
		SELECT i.* FROM interests i
		JOIN checkin_interests ci ON ci.interest_id = i.id
		WHERE ci.checkin_id = $1
		ORDER BY i.id
	`

	if err := s.db.SelectContext(ctx, &interests, query, checkinID); err != nil {
		return nil, fmt.Errorf("get checkin interests: %w", err)
	}
	return interests, nil
}

// Message methods

func (s *PostgresStore) GetMessage(ctx context.Context, id int64) (*Message, error) {
	var message Message
	query := `SELECT * FROM messages WHERE id = $1`

	err := s.db.GetContext(ctx, &message, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get message: %w", err)
	}
	return &message, nil
}

func (s *PostgresStore) GetUserMessages(ctx context.Context, userID int64) ([]*Message, error) {
	var messages []*Message
	query := `
		SELECT * FROM messages
		WHERE sender_id = $1 OR receiver_id = $1
		ORDER BY id
	`

	if err := s.db.SelectContext(ctx, &messages, query, userID); err != nil {
		return nil, fmt.Errorf("get user messages: %w", err)
	}
	return messages, nil
}

func (s *PostgresStore) CreateMessage(ctx context.Context, message *Message) error {
	query := `
		INSERT INTO messages (sender_id, receiver_id, content, is_read)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, created_at, is_read
	`

	err := s.db.QueryRowxContext(
		ctx, query,
		message.SenderID, message.ReceiverID, message.Content,
	).Scan(&message.ID, &message.CreatedAt, &message.IsRead)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

func (s *PostgresStore) MarkMessageRead(ctx context.Context, id int64) (*Message, error) {
	var message Message
	query := `
		UPDATE messages SET is_read = TRUE
		WHERE id = $1
		RETURNING *
	`

	err := s.db.GetContext(ctx, &message, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark message read: %w", err)
	}
	return &message, nil
}

// Connection request methods

func (s *PostgresStore) GetConnectionRequest(ctx context.Context, id int64) (*ConnectionRequest, error) {
	var request ConnectionRequest
	query := `SELECT * FROM connection_requests WHERE id = $1`

	err := s.db.GetContext(ctx, &request, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get connection request: %w", err)
	}
	return &request, nil
}

func (s *PostgresStore) GetSentConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error) {
	var requests []*ConnectionRequest
	query := `
		SELECT * FROM connection_requests
		WHERE sender_id = $1
		ORDER BY created_at DESC, id DESC
	`

	if err := s.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("get sent connection requests: %w", err)
	}
	return requests, nil
}

func (s *PostgresStore) GetReceivedConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error) {
	var requests []*ConnectionRequest
	query := `
		SELECT * FROM connection_requests
		WHERE receiver_id = $1
		ORDER BY created_at DESC, id DESC
	`

	if err := s.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("get received connection requests: %w", err)
	}
	return requests, nil
}

func (s *PostgresStore) HasPendingConnectionRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS(
			SELECT 1 FROM connection_requests
			WHERE sender_id = $1 AND receiver_id = $2 AND status = 'pending'
		)
	`

	if err := s.db.GetContext(ctx, &exists, query, senderID, receiverID); err != nil {
		return false, fmt.Errorf("check pending connection request: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) CreateConnectionRequest(ctx context.Context, request *ConnectionRequest) error {
	query := `
		INSERT INTO connection_requests (sender_id, receiver_id, message, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx, query,
		request.SenderID, request.ReceiverID, request.Message, request.Status,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create connection request: %w", err)
	}
	return nil
}

func (s *PostgresStore) UpdateConnectionRequestStatus(ctx context.Context, id int64, status string) (*ConnectionRequest, error) {
	var request ConnectionRequest
	query := `
		UPDATE connection_requests
		SET status = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING *
	`

	err := s.db.GetContext(ctx, &request, query, id, status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update connection request status: %w", err)
	}
	return &request, nil
}
