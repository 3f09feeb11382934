package messages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/sanitize"
	"github.com/kindred-app/kindred/internal/users"
)

// inboxLimit caps how many messages a single inbox read returns.
const inboxLimit = 100

// MessageService defines the business logic contract for direct messages.
type MessageService interface {
	Send(ctx context.Context, sender *users.User, toUserID, body string) (*Message, error)
	Inbox(ctx context.Context, userID string) ([]Message, error)
	ClearInbox(ctx context.Context, userID string) (int64, error)
}

// messageService implements MessageService.
type messageService struct {
	repo  MessageRepository
	users users.UserService
}

// NewMessageService creates a new message service with the given dependencies.
func NewMessageService(repo MessageRepository, userSvc users.UserService) MessageService {
	return &messageService{
		repo:  repo,
		users: userSvc,
	}
}

// Send stores a message from the authenticated sender to the recipient.
// The recipient must exist, and the body is sanitized before storage; a
// body that is empty once markup is stripped is rejected.
func (s *messageService) Send(ctx context.Context, sender *users.User, toUserID, body string) (*Message, error) {
	recipient, err := s.users.GetByID(ctx, toUserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewFieldError(http.StatusBadRequest, "user", "User not found. Check the recipient id.")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding recipient: %w", err))
	}

	cleaned := sanitize.Text(body)
	if cleaned == "" {
		return nil, apperror.NewFieldError(http.StatusBadRequest, "msg", "Message field is required")
	}

	message := &Message{
		ID:         uuid.NewString(),
		FromUserID: sender.ID,
		FromName:   sender.Name,
		ToUserID:   recipient.ID,
		Body:       cleaned,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, message); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("storing message: %w", err))
	}

	slog.Info("message sent",
		slog.String("from_user_id", sender.ID),
		slog.String("to_user_id", recipient.ID),
	)

	return message, nil
}

// Inbox returns the newest messages sent to the given user.
func (s *messageService) Inbox(ctx context.Context, userID string) ([]Message, error) {
	msgs, err := s.repo.ListForRecipient(ctx, userID, inboxLimit)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reading inbox: %w", err))
	}
	return msgs, nil
}

// ClearInbox deletes every message in the given user's inbox and returns
// the number removed.
func (s *messageService) ClearInbox(ctx context.Context, userID string) (int64, error) {
	n, err := s.repo.DeleteForRecipient(ctx, userID)
	if err != nil {
		return 0, apperror.NewInternal(fmt.Errorf("clearing inbox: %w", err))
	}

	slog.Info("inbox cleared",
		slog.String("user_id", userID),
		slog.Int64("deleted", n),
	)

	return n, nil
}
