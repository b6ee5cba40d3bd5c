package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/dto"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
	"github.com/Yassinemathlouthi/skillswap/internal/repository"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

type MessageHandler struct {
	uc usecase.MessageUsecase
}

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Body        string    `json:"body"`
}

func NewMessageHandler(uc usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

func (h *MessageHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Send)
	r.Get("/conversations", h.Conversations)
	r.Get("/unread", h.Unread)
	r.Get("/with/:peerId", h.Conversation)
	r.Post("/with/:peerId/read", h.MarkRead)
}

func (h *MessageHandler) Send(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.uc.Send(c.Context(), userID, req.RecipientID, req.Body)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, messageResponse(msg))
}

func (h *MessageHandler) Conversations(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	summaries, err := h.uc.Conversations(c.Context(), userID)
	if err != nil {
		return mapMessageUsecaseError(err)
	}

	res := make([]dto.ConversationResponse, 0, len(summaries))
	for _, s := range summaries {
		res = append(res, dto.ConversationResponse{
			PeerID:      s.PeerID,
			PeerHandle:  s.PeerHandle,
			LastBody:    s.LastBody,
			LastAt:      s.LastAt,
			UnreadCount: s.UnreadCount,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MessageHandler) Conversation(c fiber.Ctx) error {
	userID, peerID, appErr := messageParams(c)
	if appErr != nil {
		return appErr
	}

	msgs, err := h.uc.Conversation(c.Context(), userID, peerID, limitQuery(c))
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	// Viewing a thread clears its unread marker.
	_, _ = h.uc.MarkRead(c.Context(), userID, peerID)

	res := make([]dto.MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		res = append(res, messageResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *MessageHandler) MarkRead(c fiber.Ctx) error {
	userID, peerID, appErr := messageParams(c)
	if appErr != nil {
		return appErr
	}

	n, err := h.uc.MarkRead(c.Context(), userID, peerID)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"marked_read": n})
}

func (h *MessageHandler) Unread(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	n, err := h.uc.UnreadCount(c.Context(), userID)
	if err != nil {
		return mapMessageUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"unread_count": n})
}

func messageParams(c fiber.Ctx) (uuid.UUID, uuid.UUID, error) {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	peerID, err := uuid.Parse(c.Params("peerId"))
	if err != nil {
		return uuid.Nil, uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return userID, peerID, nil
}

func messageResponse(m repository.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Body:        m.Body,
		ReadAt:      m.ReadAt,
		CreatedAt:   m.CreatedAt,
	}
}

func mapMessageUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrEmptyMessage):
		return middleware.NewAppError(fiber.StatusBadRequest, "Message body is empty", nil, err)
	case errors.Is(err, usecase.ErrCannotMessageYourself):
		return middleware.NewAppError(fiber.StatusBadRequest, "Cannot message yourself", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
