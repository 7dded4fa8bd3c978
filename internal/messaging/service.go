// internal/messaging/service.go
// Direct messages: immutable content, one-way read flag, conversations as
// unordered user pairs.

package messaging

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/imadgeboyega/spotlink-backend/internal/store"
)

// Common errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyContent    = errors.New("message content is empty")
)

// Notifier pushes events to connected clients. Delivery is best effort and
// never fails a request.
type Notifier interface {
	NotifyMessage(message *store.Message)
	NotifyRead(message *store.Message)
}

// Service interface
type Service interface {
	Send(ctx context.Context, senderID int64, req *SendRequest) (*store.Message, error)
	MarkRead(ctx context.Context, messageID int64) (*store.Message, error)
	ListConversation(ctx context.Context, userID, partnerID int64) ([]*store.Message, error)
	ListConversationSummaries(ctx context.Context, userID int64) ([]*ConversationSummary, error)
}

type service struct {
	store    store.Store
	notifier Notifier // optional
}

// NewService creates a new messaging service
func NewService(st store.Store, notifier Notifier) Service {
	return &service{
		store:    st,
		notifier: notifier,
	}
}

// Send delivers a message. Content that is blank after trimming is rejected;
// accepted content is stored verbatim and never edited afterwards.
func (s *service) Send(ctx context.Context, senderID int64, req *SendRequest) (*store.Message, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrEmptyContent
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

	message := &store.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Content:    req.Content,
	}
	if err := s.store.CreateMessage(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	recordMessageSent()
	if s.notifier != nil {
		s.notifier.NotifyMessage(message)
	}
	return message, nil
}

// MarkRead flips the read flag. Marking an already-read message again is a
// no-op success.
func (s *service) MarkRead(ctx context.Context, messageID int64) (*store.Message, error) {
	message, err := s.store.MarkMessageRead(ctx, messageID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to mark message read: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyRead(message)
	}
	return message, nil
}

// ListConversation returns both directions of the pair in chronological
// order. Messages created in the same instant keep their insertion order.
func (s *service) ListConversation(ctx context.Context, userID, partnerID int64) ([]*store.Message, error) {
	messages, err := s.store.GetUserMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	thread := make([]*store.Message, 0, len(messages))
	for _, m := range messages {
		if (m.SenderID == userID && m.ReceiverID == partnerID) ||
			(m.SenderID == partnerID && m.ReceiverID == userID) {
			thread = append(thread, m)
		}
	}

	sort.SliceStable(thread, func(i, j int) bool {
		return thread[i].CreatedAt.Before(thread[j].CreatedAt)
	})
	return thread, nil
}

// ListConversationSummaries returns one row per partner, ordered by the
// latest message in each conversation, newest first.
func (s *service) ListConversationSummaries(ctx context.Context, userID int64) ([]*ConversationSummary, error) {
	messages, err := s.store.GetUserMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	latest := make(map[int64]*store.Message)
	unread := make(map[int64]int)
	for _, m := range messages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.ReceiverID
		}

		if last, ok := latest[partnerID]; !ok || !m.CreatedAt.Before(last.CreatedAt) {
			latest[partnerID] = m
		}
		if m.ReceiverID == userID && !m.IsRead {
			unread[partnerID]++
		}
	}

	summaries := make([]*ConversationSummary, 0, len(latest))
	for partnerID, last := range latest {
		partner, err := s.store.GetUser(ctx, partnerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to load partner: %w", err)
		}
		summaries = append(summaries, &ConversationSummary{
			Partner:     partner.Info(),
			LastMessage: last,
			UnreadCount: unread[partnerID],
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].LastMessage.CreatedAt.Equal(summaries[j].LastMessage.CreatedAt) {
			return summaries[i].LastMessage.ID > summaries[j].LastMessage.ID
		}
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries, nil
}
