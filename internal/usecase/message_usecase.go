package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/repository"
)

var (
	ErrEmptyMessage          = errors.New("message body is empty")
	ErrCannotMessageYourself = errors.New("cannot message yourself")
)

const maxMessageLength = 4000

type MessageUsecase interface {
	Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (repository.Message, error)
	Conversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]repository.Message, error)
	Conversations(ctx context.Context, userID uuid.UUID) ([]repository.ConversationSummary, error)
	MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

type Message struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	notifier Notifier
}

func NewMessageUsecase(messages repository.MessageRepository, users repository.UserRepository, notifier Notifier) *Message {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Message{messages: messages, users: users, notifier: notifier}
}

func (m *Message) Send(ctx context.Context, senderID, recipientID uuid.UUID, body string) (repository.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return repository.Message{}, ErrEmptyMessage
	}
	if len(body) > maxMessageLength {
		return repository.Message{}, ErrInvalidInput
	}
	if recipientID == uuid.Nil {
		return repository.Message{}, ErrInvalidInput
	}
	if recipientID == senderID {
		return repository.Message{}, ErrCannotMessageYourself
	}

	if _, err := m.users.GetByID(ctx, recipientID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return repository.Message{}, ErrUserNotFound
		}
		return repository.Message{}, ErrInternal
	}

	msg := repository.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
	}
	if err := m.messages.Create(ctx, msg); err != nil {
		return repository.Message{}, ErrInternal
	}

	m.notifier.Notify(recipientID, EventMessageReceived, msg)
	return msg, nil
}

func (m *Message) Conversation(ctx context.Context, userID, peerID uuid.UUID, limit int) ([]repository.Message, error) {
	if peerID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	msgs, err := m.messages.ListConversation(ctx, userID, peerID, limit)
	if err != nil {
		return nil, ErrInternal
	}
	return msgs, nil
}

func (m *Message) Conversations(ctx context.Context, userID uuid.UUID) ([]repository.ConversationSummary, error) {
	summaries, err := m.messages.ListConversationSummaries(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return summaries, nil
}

func (m *Message) MarkRead(ctx context.Context, userID, peerID uuid.UUID) (int64, error) {
	if peerID == uuid.Nil {
		return 0, ErrInvalidInput
	}
	n, err := m.messages.MarkRead(ctx, userID, peerID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}

func (m *Message) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	n, err := m.messages.CountUnread(ctx, userID)
	if err != nil {
		return 0, ErrInternal
	}
	return n, nil
}
