package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	apierrors "github.com/paulaandreaia-bit/Dashboard-transformacion/internal/errors"
)

// QueryParamValidator validates query parameters
type QueryParamValidator struct {
	validator    *validator.Validate
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewQueryParamValidator creates a new query parameter validator
func NewQueryParamValidator(logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *QueryParamValidator {
	return &QueryParamValidator{
		validator:    validator.New(),
		logger:       logger.With(slog.String("component", "query_validator")),
		errorHandler: errorHandler,
	}
}

// ValidateInt validates an integer query parameter. On failure the problem
// response is written and false is returned.
func (v *QueryParamValidator) ValidateInt(w http.ResponseWriter, r *http.Request, param string, min, max int, defaultValue int) (int, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(param))
	if value == "" {
		return defaultValue, true
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		v.reject(w, r, param, value, fmt.Sprintf("%s must be a valid integer", param))
		return 0, false
	}

	if err := v.validator.Var(intValue, fmt.Sprintf("min=%d,max=%d", min, max)); err != nil {
		v.reject(w, r, param, value, fmt.Sprintf("%s must be between %d and %d", param, min, max))
		return 0, false
	}

	return intValue, true
}

// ValidateEnum validates a value against an allowed set. An empty value
// yields defaultValue.
func (v *QueryParamValidator) ValidateEnum(w http.ResponseWriter, r *http.Request, param, value string, allowed []string, defaultValue string) (string, bool) {
	if value == "" {
		return defaultValue, true
	}

	if err := v.validator.Var(value, "oneof="+strings.Join(allowed, " ")); err != nil {
		v.reject(w, r, param, value, fmt.Sprintf("%s must be one of: %s", param, strings.Join(allowed, ", ")))
		return "", false
	}

	return value, true
}

func (v *QueryParamValidator) reject(w http.ResponseWriter, r *http.Request, param, value, msg string) {
	v.logger.DebugContext(r.Context(), "query parameter rejected",
		slog.String("param", param),
		slog.String("value", value),
	)
	v.errorHandler.HandleError(w, r, apierrors.ErrValidation(param, msg))
}
