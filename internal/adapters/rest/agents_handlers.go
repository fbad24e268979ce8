package rest

import (
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"
	"catalog-service/internal/core/query"
)

type AgentsHandler struct {
	findAgentsUC      usecases_port.FindAgentsUseCase
	getAgentOptionsUC usecases_port.GetAgentFilterOptionsUseCase
	images            port.ImageURLResolverPort
}

func NewAgentsHandler(findAgentsUC usecases_port.FindAgentsUseCase,
	getAgentOptionsUC usecases_port.GetAgentFilterOptionsUseCase,
	images port.ImageURLResolverPort) *AgentsHandler {
	return &AgentsHandler{
		findAgentsUC:      findAgentsUC,
		getAgentOptionsUC: getAgentOptionsUC,
		images:            images,
	}
}

// FindAgents обрабатывает GET /api/v1/agents?location=&specialty=&search=&experience=
func (h *AgentsHandler) FindAgents(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	raw := make(query.RawInput, len(values))
	for key := range values {
		raw[key] = values.Get(key)
	}

	result, err := h.findAgentsUC.Execute(r.Context(), raw)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Failed to find agents", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err, "Failed to retrieve agents")
		return
	}

	response := AgentsResponse{
		Agents:     make([]AgentResponse, len(result.Agents)),
		Considered: result.Considered,
		Matched:    result.Matched,
	}
	for i, a := range result.Agents {
		response.Agents[i] = toAgentResponse(a, h.images)
	}
	RespondWithJSON(w, http.StatusOK, response)
}

// GetAgentFilterOptions обрабатывает GET /api/v1/agents/filters/options
func (h *AgentsHandler) GetAgentFilterOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.getAgentOptionsUC.Execute(r.Context())
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Error("Failed to get agent filter options", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to get agent filter options")
		return
	}

	RespondWithJSON(w, http.StatusOK, AgentFilterOptionsResponse{
		Locations:   options.Locations,
		Specialties: options.Specialties,
		Count:       options.Count,
	})
}
