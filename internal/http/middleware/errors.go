package middleware

import (
	"errors"
	"net/http"

	"github.com/embark-app/embark/internal/apperr"
	"github.com/embark-app/embark/internal/domain/items"
	"github.com/embark-app/embark/internal/http/utils"
	"github.com/gofiber/fiber/v2"
)

var kindStatus = map[apperr.Kind]int{
	apperr.KindNotFound:          http.StatusNotFound,
	apperr.KindValidation:        http.StatusBadRequest,
	apperr.KindLimitExceeded:     http.StatusBadRequest,
	apperr.KindAlreadyCompleted:  http.StatusBadRequest,
	apperr.KindAlreadyOwned:      http.StatusBadRequest,
	apperr.KindDeadlineExpired:   http.StatusBadRequest,
	apperr.KindInsufficientFunds: http.StatusBadRequest,
	apperr.KindTransient:         http.StatusInternalServerError,
}

// CustomErrorHandler renders domain errors as JSON with a status derived
// from their kind. Store failures never expose their cause.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return utils.SendError(c, fe.Code, http.StatusText(fe.Code), fe.Message, nil)
	}

	if errors.Is(err, items.ErrImagesDisabled) {
		return utils.SendServiceUnavailable(c, err.Error())
	}

	var ae *apperr.Error
	if !errors.As(err, &ae) {
		return utils.SendError(c, http.StatusInternalServerError, string(apperr.KindTransient), "Internal Server Error", nil)
	}

	status, ok := kindStatus[ae.Kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	message := ae.Message
	if ae.Kind == apperr.KindTransient || message == "" {
		message = http.StatusText(status)
	}

	var details map[string]string
	if ae.Entity != "" {
		details = map[string]string{"entity": ae.Entity}
	}
	return utils.SendError(c, status, string(ae.Kind), message, details)
}

// SecurityHeaders adds the standard hardening headers for a JSON API.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		return c.Next()
	}
}
