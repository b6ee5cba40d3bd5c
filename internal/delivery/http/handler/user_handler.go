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

type UserHandler struct {
	uc usecase.UserUsecase
}

type updateBioRequest struct {
	Bio string `json:"bio"`
}

type updateLocationRequest struct {
	Query     string   `json:"query"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Me)
	r.Patch("/me/bio", h.UpdateBio)
	r.Put("/me/location", h.UpdateLocation)
	r.Get("/:handle", h.ByHandle)
}

func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	profile, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(profile))
}

func (h *UserHandler) ByHandle(c fiber.Ctx) error {
	profile, err := h.uc.GetProfileByHandle(c.Context(), c.Params("handle"))
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(profile))
}

func (h *UserHandler) UpdateBio(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateBioRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.UpdateBio(c.Context(), userID, req.Bio); err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *UserHandler) UpdateLocation(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req updateLocationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	profile, err := h.uc.UpdateLocation(c.Context(), userID, usecase.UpdateLocationInput{
		Query:     req.Query,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profileResponse(profile))
}

func profileResponse(p usecase.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:            p.ID,
		Handle:        p.Handle,
		Bio:           p.Bio,
		Location:      p.Location,
		Latitude:      p.Latitude,
		Longitude:     p.Longitude,
		OfferedSkills: skillLinkResponses(p.OfferedSkills),
		WantedSkills:  skillLinkResponses(p.WantedSkills),
		AverageRating: p.AverageRating,
		ReviewCount:   p.ReviewCount,
	}
}

func skillLinkResponses(links []repository.SkillLink) []dto.SkillLinkResponse {
	out := make([]dto.SkillLinkResponse, 0, len(links))
	for _, l := range links {
		out = append(out, dto.SkillLinkResponse{SkillID: l.SkillID, SkillName: l.SkillName})
	}
	return out
}

func mapUserUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidCoordinate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid coordinates", nil, err)
	case errors.Is(err, usecase.ErrLocationNotFound):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "Location not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
