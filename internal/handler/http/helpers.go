package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/vasiliy-maslov/storefront/internal/catalog"
	"github.com/vasiliy-maslov/storefront/internal/order"
)

var errScriptsDisabled = errors.New("custom scripts are disabled")

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// respondWithError отправляет JSON ошибку
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

// respondWithJSON отправляет JSON ответ
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func mapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, catalog.ErrDuplicateProductID), errors.Is(err, order.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, errScriptsDisabled):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// newValidator returns a validator that reports JSON field names and checks
// decimal amounts with decimal_gte without going through float64.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := validate.RegisterValidation("decimal_gte", validateDecimalGTE); err != nil {
		log.Fatal().Err(err).Msg("Failed to register decimal_gte validation")
	}

	return validate
}

// validateDecimalGTE compares the decimal form of the field with the tag
// parameter, e.g. decimal_gte=0.
func validateDecimalGTE(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}
	value, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	limit, err := decimal.NewFromString(fl.Param())
	if err != nil {
		return false
	}
	return value.GreaterThanOrEqual(limit)
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "oneof":
			details[field] = "must be one of: " + fe.Param()
		case "gte", "decimal_gte":
			details[field] = "must be greater than or equal to " + fe.Param()
		case "delivery_city":
			details[field] = "must be one of the delivery cities"
		case "url", "http_url":
			details[field] = "must be a valid URL"
		case "fqdn":
			details[field] = "must be a valid host name"
		case "max":
			details[field] = "must be at most " + fe.Param() + " characters long"
		default:
			details[field] = "failed on the '" + fe.Tag() + "' rule"
		}
	}
	return details
}

// decodeAndValidate reads a JSON body into dst and validates it. On failure
// the response has already been written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst interface{}) bool {
	return decodeJSON(w, r, dst) && validateRequest(w, validate, dst)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		log.Warn().Err(err).Msg("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func validateRequest(w http.ResponseWriter, validate *validator.Validate, dst interface{}) bool {
	err := validate.Struct(dst)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: formatValidationErrors(validationErrors),
		})
	} else {
		log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
	}
	return false
}
