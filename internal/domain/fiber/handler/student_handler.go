package handler

import (
	"time"

	"github.com/fadilmartias/internhub/internal/middleware"
	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/usecase"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/gofiber/fiber/v2"
)

type StudentHandler struct {
	market *usecase.MarketplaceUsecase
	ai     *usecase.AIUsecase
}

func NewStudentHandler(market *usecase.MarketplaceUsecase, ai *usecase.AIUsecase) *StudentHandler {
	return &StudentHandler{market: market, ai: ai}
}

func (h *StudentHandler) RegisterRoutes(app *fiber.App) {
	app.Put("/profiles", h.SaveProfile)
	app.Get("/profiles/:email", h.GetProfile)
	app.Get("/students/:email/applications", h.Applications)
	app.Get("/students/:email/recommendations", middleware.RateLimiter(10, time.Minute), h.Recommendations)
}

func (h *StudentHandler) SaveProfile(c *fiber.Ctx) error {
	var profile model.StudentProfile
	if err := c.BodyParser(&profile); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	saved, err := h.market.SaveProfile(c.UserContext(), profile)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Your information has been updated successfully",
		Data:    saved,
	})
}

func (h *StudentHandler) GetProfile(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	profile, err := h.market.GetProfile(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}

func (h *StudentHandler) Applications(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	apps, err := h.market.ListApplicationsByStudent(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applications",
		Data:    apps,
	})
}

func (h *StudentHandler) Recommendations(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	recs, err := h.ai.RecommendInternships(c.UserContext(), email)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get recommendations",
		Data:    recs,
	})
}
