package handler

import (
	"errors"
	"log"

	"github.com/fadilmartias/internhub/internal/flow"
	"github.com/fadilmartias/internhub/internal/usecase"
	"github.com/fadilmartias/internhub/internal/util"
	"github.com/gofiber/fiber/v2"
)

// respondError maps usecase and flow errors onto the error envelope.
func respondError(c *fiber.Ctx, err error) error {
	var formErr *util.FormError
	if errors.As(err, &formErr) {
		return util.FormErrorResponse(c, formErr)
	}

	var flowErr *flow.Error
	if errors.As(err, &flowErr) {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: flowErr.Message,
		}, err)
	}

	code := fiber.StatusInternalServerError
	message := "internal server error"
	switch {
	case errors.Is(err, usecase.ErrInternshipNotFound),
		errors.Is(err, usecase.ErrProfileNotFound),
		errors.Is(err, usecase.ErrInterviewResultNotFound):
		code, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, usecase.ErrAlreadyApplied):
		code, message = fiber.StatusConflict, err.Error()
	case errors.Is(err, usecase.ErrResumeTooLarge):
		code, message = fiber.StatusRequestEntityTooLarge, err.Error()
	case errors.Is(err, usecase.ErrInvalidProfile),
		errors.Is(err, usecase.ErrResumeEmpty),
		errors.Is(err, usecase.ErrResumeType),
		errors.Is(err, usecase.ErrResumeNoText),
		errors.Is(err, util.ErrInvalidDataURI):
		code, message = fiber.StatusBadRequest, err.Error()
	default:
		log.Printf("[http] %s %s: %v", c.Method(), c.Path(), err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: message,
	}, err)
}

// parseBody decodes and validates a JSON body. When done is true the
// response has already been written and the handler should return err.
func parseBody(c *fiber.Ctx, out any) (done bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return true, badRequest(c, "invalid request body", err)
	}
	if err := util.ValidateStruct(out); err != nil {
		return true, respondError(c, err)
	}
	return false, nil
}
