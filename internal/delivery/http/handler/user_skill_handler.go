package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

// UserSkillHandler manages the authenticated user's offered and wanted
// skill lists.
type UserSkillHandler struct {
	uc usecase.UserSkillUsecase
}

type addSkillLinkRequest struct {
	SkillID uuid.UUID `json:"skill_id"`
}

func NewUserSkillHandler(uc usecase.UserSkillUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	offered := r.Group("/me/skills/offered")
	offered.Get("/", h.listKind(usecase.LinkOffer))
	offered.Post("/", h.addKind(usecase.LinkOffer))
	offered.Delete("/:skillId", h.removeKind(usecase.LinkOffer))

	wanted := r.Group("/me/skills/wanted")
	wanted.Get("/", h.listKind(usecase.LinkWant))
	wanted.Post("/", h.addKind(usecase.LinkWant))
	wanted.Delete("/:skillId", h.removeKind(usecase.LinkWant))
}

func (h *UserSkillHandler) listKind(kind usecase.LinkKind) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		links, err := h.uc.ListLinks(c.Context(), userID, kind)
		if err != nil {
			return mapSkillUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, skillLinkResponses(links))
	}
}

func (h *UserSkillHandler) addKind(kind usecase.LinkKind) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		var req addSkillLinkRequest
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}

		if err := h.uc.AddLink(c.Context(), userID, req.SkillID, kind); err != nil {
			return mapSkillUsecaseError(err)
		}
		return response.Success(c, fiber.StatusCreated, response.MessageCreated, nil)
	}
}

func (h *UserSkillHandler) removeKind(kind usecase.LinkKind) fiber.Handler {
	return func(c fiber.Ctx) error {
		userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
		if !ok {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		skillID, err := uuid.Parse(c.Params("skillId"))
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}

		if err := h.uc.RemoveLink(c.Context(), userID, skillID, kind); err != nil {
			return mapSkillUsecaseError(err)
		}
		return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
	}
}
