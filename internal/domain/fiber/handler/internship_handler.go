package handler

import (
	"net/url"
	"time"

	"github.com/fadilmartias/internhub/internal/dto"
	"github.com/fadilmartias/internhub/internal/middleware"
	"github.com/fadilmartias/internhub/internal/model"
	"github.com/fadilmartias/internhub/internal/response"
	"github.com/fadilmartias/internhub/internal/usecase"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/gofiber/fiber/v2"
)

type InternshipHandler struct {
	market *usecase.MarketplaceUsecase
	ai     *usecase.AIUsecase
}

func NewInternshipHandler(market *usecase.MarketplaceUsecase, ai *usecase.AIUsecase) *InternshipHandler {
	return &InternshipHandler{market: market, ai: ai}
}

func (h *InternshipHandler) RegisterRoutes(app *fiber.App) {
	aiLimit := middleware.RateLimiter(10, time.Minute)

	g := app.Group("/internships")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Get("/:id/applicants", h.Applicants)
	g.Get("/:id/applicants/ranking", aiLimit, h.RankApplicants)
	g.Get("/:id/applicants/analysis", aiLimit, h.AnalyzeApplicants)
	g.Post("/:id/applications", h.Apply)
	g.Get("/:id/applications/:email", h.HasApplied)
	g.Post("/:id/matches", aiLimit, h.MatchStudents)
	g.Put("/:id/interviews/:email", h.SaveInterview)
	g.Get("/:id/interviews/:email", h.GetInterview)
}

func (h *InternshipHandler) List(c *fiber.Ctx) error {
	var q dto.ListInternshipsQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters", err)
	}

	var (
		internships []model.Internship
		err         error
	)
	if q.Company != "" {
		internships, err = h.market.ListInternshipsByCompany(c.UserContext(), q.Company)
	} else {
		internships, err = h.market.ListInternships(c.UserContext())
	}
	if err != nil {
		return respondError(c, err)
	}

	page, pagination := paginate(internships, q.Page, q.PageSize)
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get internships",
		Data:       page,
		Pagination: pagination,
	})
}

func (h *InternshipHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInternshipDTO
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	internship, err := h.market.AddInternship(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Internship posted",
		Data:    internship,
	})
}

func (h *InternshipHandler) Get(c *fiber.Ctx) error {
	internship, err := h.market.GetInternship(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get internship",
		Data:    internship,
	})
}

func (h *InternshipHandler) Applicants(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := h.market.GetInternship(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	applicants, err := h.market.ListApplicants(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get applicants",
		Data:    applicants,
	})
}

func (h *InternshipHandler) Apply(c *fiber.Ctx) error {
	var profile model.StudentProfile
	if err := c.BodyParser(&profile); err != nil {
		return badRequest(c, "invalid request body", err)
	}
	if err := h.market.Apply(c.UserContext(), c.Params("id"), profile); err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Application submitted",
	})
}

func (h *InternshipHandler) HasApplied(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	applied, err := h.market.HasApplied(c.UserContext(), c.Params("id"), email)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success check application",
		Data:    dto.ApplyStatusDTO{Applied: applied},
	})
}

func (h *InternshipHandler) SaveInterview(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	var req dto.SaveInterviewResultDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	result, err := h.market.SaveInterviewResult(c.UserContext(), c.Params("id"), email, req.ConversationHistory, req.Summary)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Interview result saved",
		Data:    result,
	})
}

func (h *InternshipHandler) GetInterview(c *fiber.Ctx) error {
	email, err := emailParam(c)
	if err != nil {
		return badRequest(c, "invalid email", err)
	}
	result, err := h.market.GetInterviewResult(c.UserContext(), c.Params("id"), email)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get interview result",
		Data:    result,
	})
}

func (h *InternshipHandler) RankApplicants(c *fiber.Ctx) error {
	ranked, err := h.ai.RankApplicants(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Applicants have been sorted by their match score",
		Data:    ranked,
	})
}

func (h *InternshipHandler) AnalyzeApplicants(c *fiber.Ctx) error {
	analysis, err := h.ai.AnalyzeApplicantPool(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze applicant pool",
		Data:    analysis,
	})
}

func (h *InternshipHandler) MatchStudents(c *fiber.Ctx) error {
	matches, err := h.ai.MatchStudents(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success match students",
		Data:    matches,
	})
}

func emailParam(c *fiber.Ctx) (string, error) {
	return url.PathUnescape(c.Params("email"))
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func paginate[T any](items []T, page, pageSize int) ([]T, *response.Pagination) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize

	// pages past the end are empty without computing an offset
	from := total
	if page <= totalPages {
		from = (page - 1) * pageSize
	}
	to := from + pageSize
	if to > total {
		to = total
	}

	p := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    to < total,
		From:       from + 1,
		To:         to,
	}
	if from == to {
		p.From = 0
	}
	return items[from:to], p
}
