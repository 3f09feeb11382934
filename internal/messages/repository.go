package messages

import (
	"context"
	"database/sql"
	"fmt"
)

// MessageRepository defines the data access contract for messages.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type MessageRepository interface {
	Create(ctx context.Context, message *Message) error
	ListForRecipient(ctx context.Context, toUserID string, limit int) ([]Message, error)
	DeleteForRecipient(ctx context.Context, toUserID string) (int64, error)
}

// messageRepository implements MessageRepository with hand-written MariaDB queries.
type messageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new message repository backed by the given DB pool.
func NewMessageRepository(db *sql.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts a new message row.
func (r *messageRepository) Create(ctx context.Context, message *Message) error {
	query := `INSERT INTO messages (id, from_user_id, from_user_name, to_user_id, body, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.FromUserID,
		message.FromName,
		message.ToUserID,
		message.Body,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	return nil
}

// ListForRecipient returns the newest messages sent to a user.
func (r *messageRepository) ListForRecipient(ctx context.Context, toUserID string, limit int) ([]Message, error) {
	query := `SELECT id, from_user_id, from_user_name, to_user_id, body, created_at
	          FROM messages WHERE to_user_id = ? ORDER BY created_at DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, toUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.FromUserID, &m.FromName, &m.ToUserID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		msgs = append(msgs, m)
	}

	return msgs, rows.Err()
}

// DeleteForRecipient removes every message sent to a user and returns how
// many were removed. Deleting an empty inbox is fine -- zero is a valid count.
func (r *messageRepository) DeleteForRecipient(ctx context.Context, toUserID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE to_user_id = ?`, toUserID)
	if err != nil {
		return 0, fmt.Errorf("deleting messages: %w", err)
	}

	n, _ := result.RowsAffected()
	return n, nil
}
