package repository

import (
	"context"
	"time"

	"github.com/Yassinemathlouthi/skillswap/internal/database"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Body        string
	ReadAt      *time.Time
	CreatedAt   time.Time
}

// ConversationSummary is the latest message exchanged with one peer plus
// the count of messages from that peer not yet read.
type ConversationSummary struct {
	PeerID      uuid.UUID
	PeerHandle  string
	LastBody    string
	LastAt      time.Time
	UnreadCount int
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) error
	ListConversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]Message, error)
	ListConversationSummaries(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error)
	MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m Message) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, sender_id, recipient_id, body) VALUES ($1, $2, $3, $4)`,
		m.ID, m.SenderID, m.RecipientID, m.Body,
	)
	return err
}

// ListConversation returns the newest messages between two users, most
// recent first.
func (r *PostgresMessageRepository) ListConversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]Message, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, body, read_at, created_at
		 FROM messages
		 WHERE (sender_id = $1 AND recipient_id = $2)
		    OR (sender_id = $2 AND recipient_id = $1)
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, peerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.ReadAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListConversationSummaries collapses the user's messages to one row per
// peer via DISTINCT ON, newest conversation first.
func (r *PostgresMessageRepository) ListConversationSummaries(ctx context.Context, userID uuid.UUID) ([]ConversationSummary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.peer_id, u.handle, c.body, c.created_at,
			(SELECT COUNT(*) FROM messages um
			 WHERE um.sender_id = c.peer_id AND um.recipient_id = $1 AND um.read_at IS NULL) AS unread_count
		 FROM (
			SELECT DISTINCT ON (peer_id) peer_id, body, created_at
			FROM (
				SELECT CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END AS peer_id,
					body, created_at
				FROM messages
				WHERE sender_id = $1 OR recipient_id = $1
			) p
			ORDER BY peer_id, created_at DESC
		 ) c
		 JOIN users u ON u.id = c.peer_id
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ConversationSummary, 0)
	for rows.Next() {
		var s ConversationSummary
		if err := rows.Scan(&s.PeerID, &s.PeerHandle, &s.LastBody, &s.LastAt, &s.UnreadCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead marks all unread messages from peer to user as read and
// returns how many were updated.
func (r *PostgresMessageRepository) MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET read_at = now()
		 WHERE recipient_id = $1 AND sender_id = $2 AND read_at IS NULL`,
		userID, peerID,
	)
}

func (r *PostgresMessageRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages WHERE recipient_id = $1 AND read_at IS NULL`,
		userID,
	)

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
