package rest

import (
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"
)

type FilterHandler struct {
	getFilterOptionsUC usecases_port.GetFilterOptionsUseCase
}

func NewFilterHandler(getFilterOptionsUC usecases_port.GetFilterOptionsUseCase) *FilterHandler {
	return &FilterHandler{getFilterOptionsUC: getFilterOptionsUC}
}

// GetFilterOptions обрабатывает GET /api/v1/filters/options.
// Принимает те же параметры, что и поиск.
func (h *FilterHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getFilterOptionsUC.Execute(r.Context(), criteriaFromQuery(r.URL.Query()))
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Failed to get filter options", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err, "Failed to get filter options")
		return
	}

	RespondWithJSON(w, http.StatusOK, toFilterOptionsResponse(options))
}
