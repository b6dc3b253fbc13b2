package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rookgm/gopherstore/internal/logger"
	"github.com/rookgm/gopherstore/internal/models"
	"go.uber.org/zap"
)

var validate = newValidator()

// newValidator creates validator reporting json field names
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON writes v with status code
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Debug("write response", zap.Error(err))
	}
}

// writeMessage writes error body with explicit status
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Message: msg})
}

// writeError maps service error to status code and writes error body
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		gwErr   *models.GatewayError
		saveErr *models.OrderSaveError
	)

	switch {
	case errors.Is(err, models.ErrUnauthorized):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, models.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, models.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden")
	case errors.As(err, &saveErr):
		logger.Log.Error("order save failed",
			zap.String("path", r.URL.Path),
			zap.String("order", saveErr.OrderID),
			zap.String("transaction", saveErr.TransactionID),
			zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Order save failed")
	case errors.As(err, &gwErr):
		if gwErr.Unknown {
			writeMessage(w, http.StatusGatewayTimeout, "payment status unknown, check your orders before retrying")
			return
		}
		if gwErr.Declined {
			writeMessage(w, http.StatusPaymentRequired, gwErr.Error())
			return
		}
		if gwErr.RetryAfter > 0 {
			w.Header().Set("Retry-After", strconv.Itoa(int(gwErr.RetryAfter.Seconds())))
		}
		writeMessage(w, http.StatusBadGateway, "payment gateway unavailable")
	case errors.Is(err, models.ErrCheckoutInProgress):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrConflictData):
		writeMessage(w, http.StatusConflict, "already exists")
	case errors.Is(err, models.ErrValidation):
		writeMessage(w, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, models.ErrDataNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	default:
		logger.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}

// validationMessage strips category prefix from validation errors
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, models.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}

// decodeJSON decodes request body into v and validates it
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body", models.ErrValidation)
	}

	if err := validate.Struct(v); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) && len(vErrs) > 0 {
			return fmt.Errorf("%w: %s", models.ErrValidation, fieldMessage(vErrs[0]))
		}
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return field + " must be at least " + fe.Param() + " characters"
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}
