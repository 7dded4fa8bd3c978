// internal/store/memory.go
// In-memory Store used for development mode and tests.

package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore keeps everything in maps behind one RWMutex. IDs are sequential
// per entity. Every mutating call is a single critical section, which gives
// the same one-logical-transaction guarantee the SQL backend gets from a tx.
type MemStore struct {
	mu sync.RWMutex

	users              map[int64]*User
	locations          map[int64]*Location
	interests          map[int64]*Interest
	userInterests      map[int64]*UserInterest
	activities         map[int64]*Activity
	userActivities     map[int64]*UserActivity
	checkins           map[int64]*Checkin
	checkinInterests   map[int64]*CheckinInterest
	messages           map[int64]*Message
	connectionRequests map[int64]*ConnectionRequest

	nextUserID              int64
	nextLocationID          int64
	nextInterestID          int64
	nextUserInterestID      int64
	nextActivityID          int64
	nextUserActivityID      int64
	nextCheckinID           int64
	nextCheckinInterestID   int64
	nextMessageID           int64
	nextConnectionRequestID int64
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:              make(map[int64]*User),
		locations:          make(map[int64]*Location),
		interests:          make(map[int64]*Interest),
		userInterests:      make(map[int64]*UserInterest),
		activities:         make(map[int64]*Activity),
		userActivities:     make(map[int64]*UserActivity),
		checkins:           make(map[int64]*Checkin),
		checkinInterests:   make(map[int64]*CheckinInterest),
		messages:           make(map[int64]*Message),
		connectionRequests: make(map[int64]*ConnectionRequest),

		nextUserID:              1,
		nextLocationID:          1,
		nextInterestID:          1,
		nextUserInterestID:      1,
		nextActivityID:          1,
		nextUserActivityID:      1,
		nextCheckinID:           1,
		nextCheckinInterestID:   1,
		nextMessageID:           1,
		nextConnectionRequestID: 1,
	}
}

// User methods

func (m *MemStore) GetUser(ctx context.Context, id int64) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	u := *user
	return &u, nil
}

func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, user := range m.users {
		if user.Username == username {
			u := *user
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetAllUsers(ctx context.Context) ([]*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]*User, 0, len(m.users))
	for _, user := range m.users {
		u := *user
		users = append(users, &u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemStore) CreateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextUserID
	m.nextUserID++

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = user.CreatedAt

	u := *user
	m.users[user.ID] = &u
	return nil
}

func (m *MemStore) UpdateUser(ctx context.Context, user *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.ID]; !ok {
		return ErrNotFound
	}
	user.UpdatedAt = time.Now()
	u := *user
	m.users[user.ID] = &u
	return nil
}

// Location methods

func (m *MemStore) GetLocation(ctx context.Context, id int64) (*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	location, ok := m.locations[id]
	if !ok {
		return nil, ErrNotFound
	}
	l := *location
	return &l, nil
}

func (m *MemStore) GetAllLocations(ctx context.Context) ([]*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	locations := make([]*Location, 0, len(m.locations))
	for _, location := range m.locations {
		l := *location
		locations = append(locations, &l)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].ID < locations[j].ID })
	return locations, nil
}

func (m *MemStore) CreateLocation(ctx context.Context, location *Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	location.ID = m.nextLocationID
	m.nextLocationID++

	l := *location
	m.locations[location.ID] = &l
	return nil
}

// Interest methods

func (m *MemStore) GetInterest(ctx context.Context, id int64) (*Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	interest, ok := m.interests[id]
	if !ok {
		return nil, ErrNotFound
	}
	i := *interest
	return &i, nil
}

func (m *MemStore) GetAllInterests(ctx context.Context) ([]*Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	interests := make([]*Interest, 0, len(m.interests))
	for _, interest := range m.interests {
		i := *interest
		interests = append(interests, &i)
	}
	sort.Slice(interests, func(i, j int) bool { return interests[i].ID < interests[j].ID })
	return interests, nil
}

func (m *MemStore) CreateInterest(ctx context.Context, interest *Interest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	interest.ID = m.nextInterestID
	m.nextInterestID++

	i := *interest
	m.interests[interest.ID] = &i
	return nil
}

// User interest methods

func (m *MemStore) GetUserInterests(ctx context.Context, userID int64) ([]*Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var interests []*Interest
	for _, ui := range m.userInterests {
		if ui.UserID != userID {
			continue
		}
		// A join row pointing at a missing interest is sparse data, not an
		// error; skip it.
		if interest, ok := m.interests[ui.InterestID]; ok {
			i := *interest
			interests = append(interests, &i)
		}
	}
	sort.Slice(interests, func(i, j int) bool { return interests[i].ID < interests[j].ID })
	return interests, nil
}

func (m *MemStore) AddUserInterest(ctx context.Context, userID, interestID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Adding an existing pair is a no-op, matching the unique constraint and
	// ON CONFLICT DO NOTHING in the relational backend.
	for _, existing := range m.userInterests {
		if existing.UserID == userID && existing.InterestID == interestID {
			return nil
		}
	}

	ui := &UserInterest{ID: m.nextUserInterestID, UserID: userID, InterestID: interestID}
	m.nextUserInterestID++
	m.userInterests[ui.ID] = ui
	return nil
}

func (m *MemStore) RemoveUserInterest(ctx context.Context, userID, interestID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ui := range m.userInterests {
		if ui.UserID == userID && ui.InterestID == interestID {
			delete(m.userInterests, id)
			return nil
		}
	}
	return nil
}

// Activity methods

func (m *MemStore) GetActivity(ctx context.Context, id int64) (*Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activity, ok := m.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	a := *activity
	return &a, nil
}

func (m *MemStore) GetAllActivities(ctx context.Context) ([]*Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	activities := make([]*Activity, 0, len(m.activities))
	for _, activity := range m.activities {
		a := *activity
		activities = append(activities, &a)
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].ID < activities[j].ID })
	return activities, nil
}

func (m *MemStore) CreateActivity(ctx context.Context, activity *Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	activity.ID = m.nextActivityID
	m.nextActivityID++

	a := *activity
	m.activities[activity.ID] = &a
	return nil
}

// User activity methods

func (m *MemStore) GetUserActivities(ctx context.Context, userID int64) ([]*Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var activities []*Activity
	for _, ua := range m.userActivities {
		if ua.UserID != userID {
			continue
		}
		if activity, ok := m.activities[ua.ActivityID]; ok {
			a := *activity
			activities = append(activities, &a)
		}
	}
	sort.Slice(activities, func(i, j int) bool { return activities[i].ID < activities[j].ID })
	return activities, nil
}

func (m *MemStore) AddUserActivity(ctx context.Context, userID, activityID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.userActivities {
		if existing.UserID == userID && existing.ActivityID == activityID {
			return nil
		}
	}

	ua := &UserActivity{ID: m.nextUserActivityID, UserID: userID, ActivityID: activityID}
	m.nextUserActivityID++
	m.userActivities[ua.ID] = ua
	return nil
}

func (m *MemStore) RemoveUserActivity(ctx context.Context, userID, activityID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, ua := range m.userActivities {
		if ua.UserID == userID && ua.ActivityID == activityID {
			delete(m.userActivities, id)
			return nil
		}
	}
	return nil
}

// Check-in methods

func (m *MemStore) GetCheckin(ctx context.Context, id int64) (*Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checkin, ok := m.checkins[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *checkin
	return &c, nil
}

func (m *MemStore) GetUserCheckins(ctx context.Context, userID int64) ([]*Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var checkins []*Checkin
	for _, checkin := range m.checkins {
		if checkin.UserID == userID {
			c := *checkin
			checkins = append(checkins, &c)
		}
	}
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].ID < checkins[j].ID })
	return checkins, nil
}

func (m *MemStore) GetAllCheckins(ctx context.Context) ([]*Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	checkins := make([]*Checkin, 0, len(m.checkins))
	for _, checkin := range m.checkins {
		c := *checkin
		checkins = append(checkins, &c)
	}
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].ID < checkins[j].ID })
	return checkins, nil
}

func (m *MemStore) GetCheckinsByLocation(ctx context.Context, locationID int64) ([]*Checkin, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var checkins []*Checkin
	for _, checkin := range m.checkins {
		if checkin.LocationID == locationID {
			c := *checkin
			checkins = append(checkins, &c)
		}
	}
	sort.Slice(checkins, func(i, j int) bool { return checkins[i].ID < checkins[j].ID })
	return checkins, nil
}

func (m *MemStore) CreateCheckin(ctx context.Context, checkin *Checkin, interestIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	checkin.ID = m.nextCheckinID
	m.nextCheckinID++

	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now()
	}
	checkin.IsActive = true

	c := *checkin
	m.checkins[checkin.ID] = &c

	// Tag rows land inside the same critical section as the check-in row.
	for _, interestID := range interestIDs {
		ci := &CheckinInterest{ID: m.nextCheckinInterestID, CheckinID: checkin.ID, InterestID: interestID}
		m.nextCheckinInterestID++
		m.checkinInterests[ci.ID] = ci
	}
	return nil
}

func (m *MemStore) DeactivateCheckin(ctx context.Context, id int64) (*Checkin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	checkin, ok := m.checkins[id]
	if !ok {
		return nil, ErrNotFound
	}
	checkin.IsActive = false
	c := *checkin
	return &c, nil
}

func (m *MemStore) GetCheckinInterests(ctx context.Context, checkinID int64) ([]*Interest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var interests []*Interest
	for _, ci := range m.checkinInterests {
		if ci.CheckinID != checkinID {
			continue
		}
		if interest, ok := m.interests[ci.InterestID]; ok {
			i := *interest
			interests = append(interests, &i)
		}
	}
	sort.Slice(interests, func(i, j int) bool { return interests[i].ID < interests[j].ID })
	return interests, nil
}

// Message methods

func (m *MemStore) GetMessage(ctx context.Context, id int64) (*Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	message, ok := m.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	msg := *message
	return &msg, nil
}

func (m *MemStore) GetUserMessages(ctx context.Context, userID int64) ([]*Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var messages []*Message
	for _, message := range m.messages {
		if message.SenderID == userID || message.ReceiverID == userID {
			msg := *message
			messages = append(messages, &msg)
		}
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}

func (m *MemStore) CreateMessage(ctx context.Context, message *Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	message.ID = m.nextMessageID
	m.nextMessageID++

	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	message.IsRead = false

	msg := *message
	m.messages[message.ID] = &msg
	return nil
}

func (m *MemStore) MarkMessageRead(ctx context.Context, id int64) (*Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	message, ok := m.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	message.IsRead = true
	msg := *message
	return &msg, nil
}

// Connection request methods

func (m *MemStore) GetConnectionRequest(ctx context.Context, id int64) (*ConnectionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	request, ok := m.connectionRequests[id]
	if !ok {
		return nil, ErrNotFound
	}
	r := *request
	return &r, nil
}

func (m *MemStore) GetSentConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var requests []*ConnectionRequest
	for _, request := range m.connectionRequests {
		if request.SenderID == userID {
			r := *request
			requests = append(requests, &r)
		}
	}
	sortRequestsNewestFirst(requests)
	return requests, nil
}

func (m *MemStore) GetReceivedConnectionRequests(ctx context.Context, userID int64) ([]*ConnectionRequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var requests []*ConnectionRequest
	for _, request := range m.connectionRequests {
		if request.ReceiverID == userID {
			r := *request
			requests = append(requests, &r)
		}
	}
	sortRequestsNewestFirst(requests)
	return requests, nil
}

func (m *MemStore) HasPendingConnectionRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, request := range m.connectionRequests {
		if request.SenderID == senderID && request.ReceiverID == receiverID && request.Status == RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) CreateConnectionRequest(ctx context.Context, request *ConnectionRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	request.ID = m.nextConnectionRequestID
	m.nextConnectionRequestID++

	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	request.UpdatedAt = request.CreatedAt

	r := *request
	m.connectionRequests[request.ID] = &r
	return nil
}

func (m *MemStore) UpdateConnectionRequestStatus(ctx context.Context, id int64, status string) (*ConnectionRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	request, ok := m.connectionRequests[id]
	if !ok {
		return nil, ErrNotFound
	}
	request.Status = status
	request.UpdatedAt = time.Now()
	r := *request
	return &r, nil
}

func sortRequestsNewestFirst(requests []*ConnectionRequest) {
	sort.Slice(requests, func(i, j int) bool {
		if requests[i].CreatedAt.Equal(requests[j].CreatedAt) {
			return requests[i].ID > requests[j].ID
		}
		return requests[i].CreatedAt.After(requests[j].CreatedAt)
	})
}
