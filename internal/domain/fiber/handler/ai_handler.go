package handler

import (
	"io"
	"time"

	"github.com/fadilmartias/internhub/internal/dto"
	"github.com/fadilmartias/internhub/internal/middleware"
	"github.com/fadilmartias/internhub/internal/usecase"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/gofiber/fiber/v2"
)

type AIHandler struct {
	ai     *usecase.AIUsecase
	resume *usecase.ResumeUsecase
}

func NewAIHandler(ai *usecase.AIUsecase, resume *usecase.ResumeUsecase) *AIHandler {
	return &AIHandler{ai: ai, resume: resume}
}

func (h *AIHandler) RegisterRoutes(app *fiber.App) {
	g := app.Group("/ai", middleware.RateLimiter(10, time.Minute))
	g.Post("/resume/analyze", h.AnalyzeResume)
	g.Post("/resume/optimize", h.OptimizeResume)
	g.Post("/cover-letter", h.CoverLetter)
	g.Post("/interview/coach", h.InterviewCoach)
	g.Post("/interview/summary", h.InterviewSummary)
	g.Post("/career-path", h.CareerPath)
	g.Post("/hiring-manager", h.HiringManager)
}

// AnalyzeResume accepts a multipart "resume" file or a JSON data URI.
func (h *AIHandler) AnalyzeResume(c *fiber.Ctx) error {
	if file, err := c.FormFile("resume"); err == nil {
		if file.Size > usecase.MaxResumeSize {
			return respondError(c, usecase.ErrResumeTooLarge)
		}
		f, err := file.Open()
		if err != nil {
			return badRequest(c, "cannot read resume file", err)
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return badRequest(c, "cannot read resume file", err)
		}

		out, err := h.resume.Analyze(c.UserContext(), usecase.ResumeUpload{
			Filename: file.Filename,
			MIMEType: file.Header.Get("Content-Type"),
			Data:     data,
		})
		if err != nil {
			return respondError(c, err)
		}
		return util.SuccessResponse(c, util.SuccessResponseFormat{
			Message: "Your profile has been pre-filled with your resume details",
			Data:    out,
		})
	}

	var req dto.AnalyzeResumeDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.resume.AnalyzeDataURI(c.UserContext(), req.ResumeDataURI)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Your profile has been pre-filled with your resume details",
		Data:    out,
	})
}

func (h *AIHandler) OptimizeResume(c *fiber.Ctx) error {
	var req dto.JobReviewDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.ai.OptimizeResume(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success optimize resume",
		Data:    out,
	})
}

func (h *AIHandler) CoverLetter(c *fiber.Ctx) error {
	var req dto.CoverLetterDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.ai.GenerateCoverLetter(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success generate cover letter",
		Data:    out,
	})
}

func (h *AIHandler) InterviewCoach(c *fiber.Ctx) error {
	var req dto.InterviewCoachDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.ai.InterviewCoach(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get coach response",
		Data:    out,
	})
}

func (h *AIHandler) InterviewSummary(c *fiber.Ctx) error {
	var req dto.InterviewSummaryDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	result, err := h.ai.SummarizeInterview(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "The employer can now view your interview results",
		Data:    result,
	})
}

func (h *AIHandler) CareerPath(c *fiber.Ctx) error {
	var req dto.CareerPathDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.ai.CareerPath(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success simulate career path",
		Data:    out,
	})
}

func (h *AIHandler) HiringManager(c *fiber.Ctx) error {
	var req dto.JobReviewDTO
	if done, err := parseBody(c, &req); done {
		return err
	}
	out, err := h.ai.HiringManager(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success simulate hiring manager review",
		Data:    out,
	})
}
