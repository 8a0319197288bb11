package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	if apiError, ok := err.(Error); ok {
		return c.Status(apiError.Code).JSON(apiError)
	}
	if valError, ok := err.(ValidationError); ok {
		return c.Status(valError.Status).JSON(valError)
	}

	var fiberErr *fiber.Error
	apiError := NewError(fiber.StatusInternalServerError, err.Error())
	if errors.As(err, &fiberErr) {
		apiError.Code = fiberErr.Code
	}
	curTime := time.Now()
	fmt.Printf("%s Request failed with code %d and message: %s\n", &curTime, apiError.Code, apiError.Message)
	return c.Status(apiError.Code).JSON(apiError)
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// Error implements the error interface
func (e Error) Error() string {
	return e.Message
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrBadInput(msg string) Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: msg,
	}
}

// ErrUnavailable covers any downstream failure: storage, embedding
// model or language model.
func ErrUnavailable(msg string) Error {
	return Error{
		Code:    fiber.StatusServiceUnavailable,
		Message: msg,
	}
}
