package rest

import "net/http"

// CatalogStats - счетчики каталога для /health
type CatalogStats interface {
	Len() int
	Version() uint64
}

// DirectoryStats - размер справочника агентов
type DirectoryStats interface {
	Len() int
}

type HealthHandler struct {
	catalog CatalogStats
	agents  DirectoryStats
}

func NewHealthHandler(catalog CatalogStats, agents DirectoryStats) *HealthHandler {
	return &HealthHandler{catalog: catalog, agents: agents}
}

// Health: catalog_version растет с каждым примененным изменением,
// по нему видно, что события из очереди доходят до выдачи
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:         "ok",
		CatalogVersion: h.catalog.Version(),
		Listings:       h.catalog.Len(),
		Agents:         h.agents.Len(),
	})
}
