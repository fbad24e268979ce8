package rest

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/query"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// Параметры запроса, которые не являются полями формы поиска
var nonCriteriaParams = map[string]struct{}{
	"sort":    {},
	"page":    {},
	"perPage": {},
}

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// writeUseCaseError: ошибки валидации -> 400 со списком полей, остальное -> 500
func writeUseCaseError(w http.ResponseWriter, err error, internalMessage string) {
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		WriteJSONError(w, http.StatusInternalServerError, internalMessage)
		return
	}

	response := ErrorResponse{
		Error:  "Invalid search criteria",
		Fields: make([]FieldErrorResponse, len(verrs)),
	}
	for i, ve := range verrs {
		response.Fields[i] = FieldErrorResponse{
			Field:   ve.Field,
			Kind:    string(ve.Kind),
			Value:   ve.Value,
			Message: ve.Message,
		}
	}
	RespondWithJSON(w, http.StatusBadRequest, response)
}

// criteriaFromQuery переносит query-параметры в RawInput как есть,
// разбор и проверка значений - дело query.ValidateCriteria
func criteriaFromQuery(values url.Values) query.RawInput {
	raw := make(query.RawInput, len(values))
	for key, vals := range values {
		if _, skip := nonCriteriaParams[key]; skip || len(vals) == 0 {
			continue
		}
		raw[key] = vals[0]
	}
	return raw
}

// parsePagination: некорректные page/perPage заменяются значениями по умолчанию,
// perPage больше максимума обрезается до maxPerPage.
// Atoi при переполнении отдает MaxInt, такая страница просто окажется пустой.
func parsePagination(values url.Values) (page, perPage int) {
	perPage, _ = strconv.Atoi(values.Get("perPage"))
	switch {
	case perPage < 1:
		perPage = defaultPerPage
	case perPage > maxPerPage:
		perPage = maxPerPage
	}

	page, _ = strconv.Atoi(values.Get("page"))
	if page < 1 {
		page = 1
	}
	// (page-1)*perPage не должно переполнять int
	if page > math.MaxInt/perPage {
		page = math.MaxInt / perPage
	}
	return page, perPage
}
