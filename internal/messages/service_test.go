package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/kindred-app/kindred/internal/apperror"
	"github.com/kindred-app/kindred/internal/users"
)

// --- Mock Repository ---

// mockMessageRepo implements MessageRepository for testing.
type mockMessageRepo struct {
	createFn             func(ctx context.Context, message *Message) error
	listForRecipientFn   func(ctx context.Context, toUserID string, limit int) ([]Message, error)
	deleteForRecipientFn func(ctx context.Context, toUserID string) (int64, error)
}

func (m *mockMessageRepo) Create(ctx context.Context, message *Message) error {
	if m.createFn != nil {
		return m.createFn(ctx, message)
	}
	return nil
}

func (m *mockMessageRepo) ListForRecipient(ctx context.Context, toUserID string, limit int) ([]Message, error) {
	if m.listForRecipientFn != nil {
		return m.listForRecipientFn(ctx, toUserID, limit)
	}
	return nil, nil
}

func (m *mockMessageRepo) DeleteForRecipient(ctx context.Context, toUserID string) (int64, error) {
	if m.deleteForRecipientFn != nil {
		return m.deleteForRecipientFn(ctx, toUserID)
	}
	return 0, nil
}

// --- Mock User Service ---

// mockUserService implements users.UserService; only GetByID matters here.
type mockUserService struct {
	getByIDFn func(ctx context.Context, id string) (*users.User, error)
}

func (m *mockUserService) Register(ctx context.Context, input users.RegisterInput) (*users.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) Login(ctx context.Context, input users.LoginInput) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockUserService) GetByID(ctx context.Context, id string) (*users.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserService) GetByHandle(ctx context.Context, handle string) (*users.User, error) {
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserService) Search(ctx context.Context, name string) ([]users.User, error) {
	return nil, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return nil
}

// recipientService returns a user service that resolves any recipient ID.
func recipientService() *mockUserService {
	return &mockUserService{
		getByIDFn: func(ctx context.Context, id string) (*users.User, error) {
			return &users.User{ID: id, Name: "Bob"}, nil
		},
	}
}

var sender = &users.User{ID: "sender-1", Name: "Alice"}

// --- Send ---

func TestSend_Success(t *testing.T) {
	var stored *Message
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, message *Message) error {
			stored = message
			return nil
		},
	}
	service := NewMessageService(repo, recipientService())

	msg, err := service.Send(context.Background(), sender, "recipient-1", "hey there")
	if err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if stored == nil {
		t.Fatal("expected repo.Create to be called")
	}

	if msg.ID == "" {
		t.Error("expected a generated message ID")
	}
	if msg.FromUserID != "sender-1" || msg.FromName != "Alice" {
		t.Errorf("sender identity not taken from authenticated user: %+v", msg)
	}
	if msg.ToUserID != "recipient-1" {
		t.Errorf("expected recipient recipient-1, got %q", msg.ToUserID)
	}
	if msg.Body != "hey there" {
		t.Errorf("unexpected body %q", msg.Body)
	}
}

func TestSend_StripsMarkup(t *testing.T) {
	var stored *Message
	repo := &mockMessageRepo{
		createFn: func(ctx context.Context, message *Message) error {
			stored = message
			return nil
		},
	}
	service := NewMessageService(repo, recipientService())

	if _, err := service.Send(context.Background(), sender, "recipient-1", "<script>alert('x')</script>hi"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if stored.Body != "hi" {
		t.Errorf("expected markup stripped before storage, got %q", stored.Body)
	}
}

// A body that is empty once markup is stripped must be rejected, not stored
// as an empty message.
func TestSend_MarkupOnlyBody(t *testing.T) {
	service := NewMessageService(&mockMessageRepo{}, recipientService())

	_, err := service.Send(context.Background(), sender, "recipient-1", "<b></b>")
	if err == nil {
		t.Fatal("expected error for markup-only body")
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || appErr.Code != 400 || appErr.Fields["msg"] == "" {
		t.Errorf("expected 400 msg field error, got %v", err)
	}
}

func TestSend_UnknownRecipient(t *testing.T) {
	service := NewMessageService(&mockMessageRepo{}, &mockUserService{})

	_, err := service.Send(context.Background(), sender, "ghost", "hey")
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != 400 {
		t.Errorf("expected status 400, got %d", appErr.Code)
	}
	if appErr.Fields["user"] != "User not found. Check the recipient id." {
		t.Errorf("unexpected field error: %v", appErr.Fields)
	}
}

// --- Inbox ---

func TestInbox(t *testing.T) {
	repo := &mockMessageRepo{
		listForRecipientFn: func(ctx context.Context, toUserID string, limit int) ([]Message, error) {
			if toUserID != "user-1" {
				t.Errorf("expected inbox read for user-1, got %q", toUserID)
			}
			if limit != inboxLimit {
				t.Errorf("expected limit %d, got %d", inboxLimit, limit)
			}
			return []Message{{ID: "m1", Body: "hi"}}, nil
		},
	}
	service := NewMessageService(repo, &mockUserService{})

	msgs, err := service.Inbox(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Inbox failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != "m1" {
		t.Errorf("unexpected inbox contents: %v", msgs)
	}
}

// --- ClearInbox ---

func TestClearInbox(t *testing.T) {
	repo := &mockMessageRepo{
		deleteForRecipientFn: func(ctx context.Context, toUserID string) (int64, error) {
			return 3, nil
		},
	}
	service := NewMessageService(repo, &mockUserService{})

	n, err := service.ClearInbox(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ClearInbox failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 deleted, got %d", n)
	}
}

// Clearing an already-empty inbox succeeds with a zero count.
func TestClearInbox_Empty(t *testing.T) {
	service := NewMessageService(&mockMessageRepo{}, &mockUserService{})

	n, err := service.ClearInbox(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ClearInbox failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 deleted, got %d", n)
	}
}
