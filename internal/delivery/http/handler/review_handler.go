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

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

type createReviewRequest struct {
	SessionID uuid.UUID `json:"session_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.Create)
	r.Get("/user/:userId", h.ListByUser)
}

func (h *ReviewHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createReviewRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	rev, err := h.uc.Create(c.Context(), userID, usecase.CreateReviewInput{
		SessionID: req.SessionID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, reviewResponse(rev))
}

func (h *ReviewHandler) ListByUser(c fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	reviews, err := h.uc.ListByUser(c.Context(), targetID, limitQuery(c))
	if err != nil {
		return mapReviewUsecaseError(err)
	}
	summary, err := h.uc.Summary(c.Context(), targetID)
	if err != nil {
		return mapReviewUsecaseError(err)
	}

	items := make([]dto.ReviewResponse, 0, len(reviews))
	for _, rev := range reviews {
		items = append(items, reviewResponse(rev))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"summary": dto.ReviewSummaryResponse{
			AverageRating: summary.AverageRating,
			ReviewCount:   summary.ReviewCount,
		},
		"reviews": items,
	})
}

func reviewResponse(rev repository.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        rev.ID,
		SessionID: rev.SessionID,
		AuthorID:  rev.AuthorID,
		TargetID:  rev.TargetID,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt,
	}
}

func mapReviewUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRating):
		return middleware.NewAppError(fiber.StatusBadRequest, "Rating must be between 1 and 5", nil, err)
	case errors.Is(err, usecase.ErrReviewExists):
		return middleware.NewAppError(fiber.StatusConflict, "Session already reviewed", nil, err)
	case errors.Is(err, usecase.ErrSessionNotCompleted):
		return middleware.NewAppError(fiber.StatusConflict, "Session not completed", nil, err)
	case errors.Is(err, usecase.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
