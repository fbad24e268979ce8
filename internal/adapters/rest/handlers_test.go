package rest

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"catalog-service/internal/adapters/imageurl"
	"catalog-service/internal/adapters/memory"
	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port/usecases_port"
	"catalog-service/internal/core/query"
	"catalog-service/internal/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	catalog := memory.NewCatalog()
	require.NoError(t, catalog.ReplaceAll(context.Background(), []domain.Listing{
		{ID: "1", Title: "Modern Family Home", Location: "Beverly Hills, CA", Price: 450000, Beds: 3, Baths: 2, Sqft: 1200,
			PropertyType: domain.PropertyTypeHouse, ListingType: domain.ListingTypeSale, Status: domain.ListingStatusActive,
			ImageURL: "https://images.unsplash.com/photo-1?ixlib=rb-4.0.3", CreatedAt: base},
		{ID: "2", Title: "Luxury Villa", Location: "Miami, FL", Price: 1200000, Beds: 5, Baths: 4, Sqft: 3500,
			PropertyType: domain.PropertyTypeVilla, ListingType: domain.ListingTypeSale, Status: domain.ListingStatusActive,
			CreatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Beach Condo", Location: "Miami Beach, FL", Price: 4200, Beds: 2, Baths: 1.5, Sqft: 900,
			PropertyType: domain.PropertyTypeCondo, ListingType: domain.ListingTypeRent, Status: domain.ListingStatusActive,
			CreatedAt: base.Add(2 * time.Hour)},
	}))

	agents := memory.NewAgentDirectory()
	require.NoError(t, agents.ReplaceAll(context.Background(), []domain.Agent{
		{ID: "1", FullName: "Sarah Johnson", Title: "Senior Real Estate Agent", Location: "Beverly Hills", ExperienceYears: 8,
			ProfileImage: "https://images.unsplash.com/photo-9?ixlib=rb-4.0.3", Specialties: []string{"Luxury Homes", "Waterfront Properties"}},
		{ID: "2", FullName: "Michael Rodriguez", Title: "Luxury Property Specialist", Location: "Los Angeles", ExperienceYears: 12,
			Specialties: []string{"Residential", "Commercial"}},
		{ID: "4", FullName: "David Thompson", Title: "Commercial Property Expert", Location: "Beverly Hills", ExperienceYears: 15,
			Specialties: []string{"Commercial", "Office Space"}},
	}))

	engine := query.NewEngine(nil)
	images := imageurl.NewResolver(75)
	listings := NewListingsHandler(
		usecase.NewFindListingsUseCase(catalog, engine),
		usecase.NewGetListingByIDUseCase(catalog),
		images,
	)
	filters := NewFilterHandler(usecase.NewGetFilterOptionsUseCase(catalog, engine))
	agentsHandler := NewAgentsHandler(
		usecase.NewFindAgentsUseCase(agents),
		usecase.NewGetAgentFilterOptionsUseCase(agents),
		images,
	)

	return newRouter([]string{"*"}, listings, filters, agentsHandler, NewHealthHandler(catalog, agents), contextkeys.NoopLogger())
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestFindListingsHandler(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/listings?location=miami&sort=price-ascending")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"))

	var resp PaginatedListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Listings, 2)
	assert.Equal(t, "3", resp.Listings[0].ID)
	assert.Equal(t, "2", resp.Listings[1].ID)
	assert.Equal(t, 3, resp.Considered)
	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.PerPage)
}

func TestFindListingsHandlerAliasesAndPaging(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/listings?type=sale&sort=recency-descending&page=2&perPage=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Listings, 1)
	assert.Equal(t, "1", resp.Listings[0].ID)
	assert.Equal(t, 2, resp.Matched)
	assert.Equal(t, 2, resp.Page)
	assert.Equal(t, "https://images.unsplash.com/photo-1?q=75&w=400&h=300&auto=compress,format&fit=crop", resp.Listings[0].Image)
}

func TestFindListingsHandlerClampsPerPage(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/listings?perPage=500")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PaginatedListingsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.PerPage)
	assert.Len(t, resp.Listings, 3)
}

func TestFindListingsHandlerHugePageIsEmpty(t *testing.T) {
	router := newTestRouter(t)

	for _, page := range []string{"9223372036854775807", "99999999999999999999999"} {
		rec := doGet(t, router, "/api/v1/listings?page="+page)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp PaginatedListingsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Empty(t, resp.Listings, "page %s", page)
		assert.Greater(t, resp.Page, 1, "page %s", page)
		assert.Equal(t, 3, resp.Matched)
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query       string
		wantPage    int
		wantPerPage int
	}{
		{"", 1, 20},
		{"page=3&perPage=10", 3, 10},
		{"page=0&perPage=0", 1, 20},
		{"page=-2&perPage=-5", 1, 20},
		{"page=abc&perPage=xyz", 1, 20},
		{"perPage=100", 1, 100},
		{"perPage=101", 1, 100},
		{"page=9223372036854775807&perPage=20", math.MaxInt / 20, 20},
		{"page=9223372036854775807&perPage=1", math.MaxInt, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			page, perPage := parsePagination(values)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantPerPage, perPage)
			assert.GreaterOrEqual(t, (page-1)*perPage, 0)
		})
	}
}

func TestFindListingsHandlerValidationErrors(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/listings?priceRange=500000-300000&minBeds=two&sort=cheapest")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Fields, 3)
	kinds := map[string]string{}
	for _, f := range resp.Fields {
		kinds[f.Field] = f.Kind
	}
	assert.Equal(t, "InvalidRange", kinds["priceRange"])
	assert.Equal(t, "MalformedInput", kinds["minBeds"])
	assert.Equal(t, "InvalidEnum", kinds["sort"])
}

func TestGetListingDetailsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/api/v1/listings/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListingDetailsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Modern Family Home", resp.Title)
	assert.Contains(t, resp.Image, "w=1920&h=1080")
	assert.Contains(t, resp.GalleryImage, "w=800&h=600")

	rec = doGet(t, router, "/api/v1/listings/404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFilterOptionsHandler(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/filters/options?listingType=sale")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FilterOptionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 2, resp.Count)
	require.NotNil(t, resp.Price)
	assert.Equal(t, 450000.0, resp.Price.Min)
	assert.Equal(t, 1200000.0, resp.Price.Max)
	assert.Equal(t, []string{"house", "villa"}, resp.PropertyTypes)
	assert.Equal(t, []int{3, 5}, resp.Beds)
}

func TestGetFilterOptionsHandlerInvalidCriteria(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/filters/options?propertyType=castle")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	catalog := memory.NewCatalog()
	agents := memory.NewAgentDirectory()
	h := NewHealthHandler(catalog, agents)
	router := newRouter([]string{"*"}, NewListingsHandler(nil, nil, imageurl.NewResolver(75)), NewFilterHandler(nil),
		NewAgentsHandler(nil, nil, imageurl.NewResolver(75)), h, contextkeys.NoopLogger())

	rec := doGet(t, router, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","catalog_version":0,"listings":0,"agents":0}`, rec.Body.String())

	ctx := context.Background()
	require.NoError(t, catalog.Upsert(ctx, domain.Listing{ID: "1", Title: "Loft"}))
	require.NoError(t, catalog.Upsert(ctx, domain.Listing{ID: "2", Title: "Villa"}))
	require.NoError(t, catalog.Delete(ctx, "1", time.Now()))
	require.NoError(t, agents.ReplaceAll(ctx, []domain.Agent{{ID: "1", FullName: "Sarah Johnson"}}))

	rec = doGet(t, router, "/health")
	assert.JSONEq(t, `{"status":"ok","catalog_version":3,"listings":1,"agents":1}`, rec.Body.String())
}

func TestFindAgentsHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doGet(t, router, "/api/v1/agents?location=Beverly%20Hills&specialty=Commercial")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AgentsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Agents, 1)
	assert.Equal(t, "David Thompson", resp.Agents[0].FullName)
	assert.Equal(t, []string{"Commercial", "Office Space"}, resp.Agents[0].Specialties)
	assert.Equal(t, 3, resp.Considered)
	assert.Equal(t, 1, resp.Matched)

	rec = doGet(t, router, "/api/v1/agents")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Agents, 3)
	assert.Equal(t, "1", resp.Agents[0].ID)
	assert.Equal(t, "https://images.unsplash.com/photo-9?q=75&w=300&h=300&auto=compress,format&fit=crop", resp.Agents[0].ProfileImage)

	// локация сравнивается точно
	rec = doGet(t, router, "/api/v1/agents?location=beverly")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Agents)
}

func TestFindAgentsHandlerInvalidExperience(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/agents?experience=10-5")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "experience", resp.Fields[0].Field)
	assert.Equal(t, "InvalidRange", resp.Fields[0].Kind)
}

func TestGetAgentFilterOptionsHandler(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/v1/agents/filters/options")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"locations": ["Beverly Hills", "Los Angeles"],
		"specialties": ["Commercial", "Luxury Homes", "Office Space", "Residential", "Waterfront Properties"],
		"count": 3
	}`, rec.Body.String())
}

type failingFindUseCase struct{}

func (failingFindUseCase) Execute(context.Context, usecases_port.FindListingsRequest) (*domain.PaginatedResult, error) {
	return nil, errors.New("catalog unavailable")
}

func TestFindListingsHandlerInternalError(t *testing.T) {
	h := NewListingsHandler(failingFindUseCase{}, nil, imageurl.NewResolver(75))
	router := newRouter([]string{"*"}, h, NewFilterHandler(nil), NewAgentsHandler(nil, nil, imageurl.NewResolver(75)),
		NewHealthHandler(memory.NewCatalog(), memory.NewAgentDirectory()), contextkeys.NoopLogger())

	rec := doGet(t, router, "/api/v1/listings")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to retrieve listings"}`, rec.Body.String())
}

func TestCriteriaFromQuerySkipsPagingParams(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?beds=2&page=3&perPage=10&sort=none&location=Austin", nil)

	raw := criteriaFromQuery(req.URL.Query())

	assert.Equal(t, query.RawInput{"beds": "2", "location": "Austin"}, raw)
}
