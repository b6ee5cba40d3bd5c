package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/dto"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

type NearbyHandler struct {
	uc usecase.NearbyUsecase
}

func NewNearbyHandler(uc usecase.NearbyUsecase) *NearbyHandler {
	return &NearbyHandler{uc: uc}
}

func (h *NearbyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Nearby)
}

// Nearby accepts lat, lon, radius_km, skill_ids (comma separated), and
// limit as query parameters. Without lat/lon the caller's stored location
// is used.
func (h *NearbyHandler) Nearby(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	in := usecase.NearbyInput{Limit: limitQuery(c)}

	if raw := c.Query("lat"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid latitude", nil, err)
		}
		in.Latitude = &v
	}
	if raw := c.Query("lon"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid longitude", nil, err)
		}
		in.Longitude = &v
	}
	if raw := c.Query("radius_km"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid radius", nil, err)
		}
		in.RadiusKm = v
	}
	if raw := c.Query("skill_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				return middleware.NewAppError(fiber.StatusBadRequest, "Invalid skill id", nil, err)
			}
			in.SkillIDs = append(in.SkillIDs, id)
		}
	}

	users, err := h.uc.FindNearby(c.Context(), userID, in)
	if err != nil {
		return mapNearbyUsecaseError(err)
	}

	res := make([]dto.NearbyUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.NearbyUserResponse{
			UserID:     u.UserID,
			Handle:     u.Handle,
			Location:   u.Location,
			Latitude:   u.Latitude,
			Longitude:  u.Longitude,
			DistanceKm: u.DistanceKm,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func mapNearbyUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrNoLocation):
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "No location set", nil, err)
	case errors.Is(err, usecase.ErrInvalidCoordinate):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid coordinates", nil, err)
	case errors.Is(err, usecase.ErrInvalidRadius):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid radius", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
