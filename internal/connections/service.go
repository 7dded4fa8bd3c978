// internal/connections/service.go
// Wave state machine: pending is the only non-terminal state and the only
// one a response may move from.

package connections

import (
	"context"
	"errors"
	"fmt"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrWaveNotFound      = errors.New("wave not found")
	ErrCannotWaveSelf    = errors.New("cannot wave at yourself")
	ErrDuplicatePending  = errors.New("a pending wave to this user already exists")
	ErrInvalidTransition = errors.New("wave has already been resolved")
	ErrInvalidAction     = errors.New("action must be accepted or declined")
	ErrNotReceiver       = errors.New("only the receiver can respond to a wave")
)

// Service interface
type Service interface {
	SendWave(ctx context.Context, senderID int64, req *WaveRequest) (*Wave, error)
	Respond(ctx context.Context, waveID, receiverID int64, action string) (*Wave, error)
	ListSent(ctx context.Context, userID int64) ([]*Wave, error)
	ListReceived(ctx context.Context, userID int64) ([]*Wave, error)
}

type service struct {
	store store.Store
}

// NewService creates a new connections service
func NewService(st store.Store) Service {
	return &service{store: st}
}

// SendWave creates a pending connection request. Only the exact ordered
// (sender, receiver) pair is checked for an existing pending wave; the
// reverse direction may wave independently.
func (s *service) SendWave(ctx context.Context, senderID int64, req *WaveRequest) (*Wave, error) {
	if senderID == req.ReceiverID {
		return nil, ErrCannotWaveSelf
	}

	if _, err := s.store.GetUser(ctx, senderID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}
	if _, err := s.store.GetUser(ctx, req.ReceiverID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load receiver: %w", err)
	}

	pending, err := s.store.HasPendingConnectionRequest(ctx, senderID, req.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending waves: %w", err)
	}
	if pending {
		return nil, ErrDuplicatePending
	}

	request := &store.ConnectionRequest{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Message:    req.Message,
		Status:     store.RequestPending,
	}
	if err := s.store.CreateConnectionRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to create wave: %w", err)
	}

	recordWave(store.RequestPending)
	return s.toWave(ctx, request)
}

// Respond accepts or declines a pending wave. Accepting has no side
// effects beyond the status change; messaging is never gated on waves.
func (s *service) Respond(ctx context.Context, waveID, receiverID int64, action string) (*Wave, error) {
	// The state machine guards its own inputs; handler validation is not
	// the only line of defense.
	if action != store.RequestAccepted && action != store.RequestDeclined {
		return nil, ErrInvalidAction
	}

	request, err := s.store.GetConnectionRequest(ctx, waveID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWaveNotFound
		}
		return nil, fmt.Errorf("failed to load wave: %w", err)
	}

	if request.ReceiverID != receiverID {
		return nil, ErrNotReceiver
	}
	if request.Status != store.RequestPending {
		return nil, ErrInvalidTransition
	}

	updated, err := s.store.UpdateConnectionRequestStatus(ctx, waveID, action)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrWaveNotFound
		}
		return nil, fmt.Errorf("failed to update wave: %w", err)
	}

	recordWave(action)
	return s.toWave(ctx, updated)
}

// ListSent returns the user's outgoing waves, newest first.
func (s *service) ListSent(ctx context.Context, userID int64) ([]*Wave, error) {
	requests, err := s.store.GetSentConnectionRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sent waves: %w", err)
	}
	return s.toWaves(ctx, requests)
}

// ListReceived returns the user's incoming waves, newest first.
func (s *service) ListReceived(ctx context.Context, userID int64) ([]*Wave, error) {
	requests, err := s.store.GetReceivedConnectionRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load received waves: %w", err)
	}
	return s.toWaves(ctx, requests)
}

func (s *service) toWaves(ctx context.Context, requests []*store.ConnectionRequest) ([]*Wave, error) {
	waves := make([]*Wave, 0, len(requests))
	for _, request := range requests {
		wave, err := s.toWave(ctx, request)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		waves = append(waves, wave)
	}
	return waves, nil
}

func (s *service) toWave(ctx context.Context, request *store.ConnectionRequest) (*Wave, error) {
	sender, err := s.store.GetUser(ctx, request.SenderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.store.GetUser(ctx, request.ReceiverID)
	if err != nil {
		return nil, err
	}

	return &Wave{
		ID:        request.ID,
		Sender:    sender.Info(),
		Receiver:  receiver.Info(),
		Message:   request.Message,
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
		UpdatedAt: request.UpdatedAt,
	}, nil
}
