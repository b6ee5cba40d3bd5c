package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/dto"
	"github.com/Yassinemathlouthi/skillswap/internal/delivery/http/middleware"
	"github.com/Yassinemathlouthi/skillswap/internal/domain/matching"
	"github.com/Yassinemathlouthi/skillswap/internal/pkg/response"
	"github.com/Yassinemathlouthi/skillswap/internal/usecase"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.Overview)
	r.Get("/teachers", h.Teachers)
	r.Get("/students", h.Students)
	r.Get("/perfect", h.Perfect)
}

// Overview bundles all three match lists in one response.
func (h *MatchHandler) Overview(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	limit := limitQuery(c)

	teachers, err := h.uc.FindTeachers(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	students, err := h.uc.FindStudents(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	perfect, err := h.uc.FindPerfectMatches(c.Context(), userID, limit)
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	perfectRes := make([]dto.PerfectMatchResponse, 0, len(perfect))
	for _, m := range perfect {
		perfectRes = append(perfectRes, perfectMatchResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"teachers": matchResponses(teachers),
		"students": matchResponses(students),
		"perfect":  perfectRes,
	})
}

func (h *MatchHandler) Teachers(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.uc.FindTeachers(c.Context(), userID, limitQuery(c))
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponses(matches))
}

func (h *MatchHandler) Students(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.uc.FindStudents(c.Context(), userID, limitQuery(c))
	if err != nil {
		return mapMatchUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, matchResponses(matches))
}

func (h *MatchHandler) Perfect(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.uc.FindPerfectMatches(c.Context(), userID, limitQuery(c))
	if err != nil {
		return mapMatchUsecaseError(err)
	}

	res := make([]dto.PerfectMatchResponse, 0, len(matches))
	for _, m := range matches {
		res = append(res, perfectMatchResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func perfectMatchResponse(m matching.PerfectMatch) dto.PerfectMatchResponse {
	return dto.PerfectMatchResponse{
		UserID:          m.UserID,
		Handle:          m.Handle,
		YouTeachCount:   m.YouTeachCount,
		TheyTeachCount:  m.TheyTeachCount,
		TotalScore:      m.TotalScore(),
		YouTeachSkills:  matchSkillResponses(m.YouTeachSkills),
		TheyTeachSkills: matchSkillResponses(m.TheyTeachSkills),
	}
}

func matchResponses(matches []matching.Match) []dto.MatchResponse {
	out := make([]dto.MatchResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, dto.MatchResponse{
			UserID:         m.UserID,
			Handle:         m.Handle,
			MatchCount:     m.MatchCount,
			MatchingSkills: matchSkillResponses(m.MatchingSkills),
		})
	}
	return out
}

func matchSkillResponses(skills []matching.Skill) []dto.SkillResponse {
	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillResponse{ID: s.ID, Name: s.Name})
	}
	return out
}

func limitQuery(c fiber.Ctx) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func mapMatchUsecaseError(err error) error {
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
