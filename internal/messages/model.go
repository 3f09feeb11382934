// Package messages handles direct messages between users: sending,
// listing the caller's inbox, and clearing it. The sender identity on a
// stored message always comes from the authenticated request context,
// never from the request body.
package messages

import (
	"time"
)

// Message is a direct message from one user to another.
type Message struct {
	ID         string    `json:"id"`
	FromUserID string    `json:"from_user_id"`
	FromName   string    `json:"from_user_name"`
	ToUserID   string    `json:"to_user_id"`
	Body       string    `json:"msg"`
	CreatedAt  time.Time `json:"created_at"`
}

// SendRequest holds the data submitted to POST /api/messages/:id.
type SendRequest struct {
	Body string `json:"msg"`
}
