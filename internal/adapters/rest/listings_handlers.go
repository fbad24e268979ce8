package rest

import (
	"errors"
	"net/http"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type ListingsHandler struct {
	findListingsUC   usecases_port.FindListingsUseCase
	getListingByIDUC usecases_port.GetListingByIDUseCase
	images           port.ImageURLResolverPort
}

func NewListingsHandler(findListingsUC usecases_port.FindListingsUseCase,
	getListingByIDUC usecases_port.GetListingByIDUseCase,
	images port.ImageURLResolverPort) *ListingsHandler {
	return &ListingsHandler{
		findListingsUC:   findListingsUC,
		getListingByIDUC: getListingByIDUC,
		images:           images,
	}
}

// FindListings обрабатывает GET /api/v1/listings
func (h *ListingsHandler) FindListings(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())
	values := r.URL.Query()

	page, perPage := parsePagination(values)
	req := usecases_port.FindListingsRequest{
		Criteria: criteriaFromQuery(values),
		Sort:     values.Get("sort"),
		Limit:    perPage,
		Offset:   (page - 1) * perPage,
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler":  "FindListings",
		"page":     page,
		"per_page": perPage,
	})
	handlerLogger.Debug("Processing request to find listings", nil)

	result, err := h.findListingsUC.Execute(r.Context(), req)
	if err != nil {
		handlerLogger.Warn("Use case failed", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err, "Failed to retrieve listings")
		return
	}

	response := PaginatedListingsResponse{
		Listings:   make([]ListingCardResponse, len(result.Listings)),
		Considered: result.Considered,
		Matched:    result.Matched,
		Page:       result.CurrentPage,
		PerPage:    result.ItemsPerPage,
	}
	for i, l := range result.Listings {
		response.Listings[i] = toCardResponse(l, h.images, port.ImageSizeCard)
	}

	RespondWithJSON(w, http.StatusOK, response)
}

// GetListingDetails обрабатывает GET /api/v1/listings/{listingID}
func (h *ListingsHandler) GetListingDetails(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")

	handlerLogger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":    "GetListingDetails",
		"listing_id": listingID,
	})

	listing, err := h.getListingByIDUC.Execute(r.Context(), listingID)
	if errors.Is(err, domain.ErrListingNotFound) {
		WriteJSONError(w, http.StatusNotFound, "Listing not found")
		return
	}
	if err != nil {
		handlerLogger.Error("Use case failed", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Failed to retrieve listing")
		return
	}

	RespondWithJSON(w, http.StatusOK, toDetailsResponse(*listing, h.images))
}
