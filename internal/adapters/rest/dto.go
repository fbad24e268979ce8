package rest

import (
	"time"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
)

type ErrorResponse struct {
	Error  string               `json:"error"`
	Fields []FieldErrorResponse `json:"fields,omitempty"`
}

type FieldErrorResponse struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// ListingCardResponse - карточка в выдаче поиска
type ListingCardResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	ListingType  string  `json:"type"`
	PropertyType string  `json:"property_type"`
	Beds         int     `json:"beds"`
	Baths        float64 `json:"baths"`
	Sqft         int     `json:"sqft"`
	Image        string  `json:"image,omitempty"`
	Status       string  `json:"status"`
}

// PaginatedListingsResponse - ответ GET /listings
type PaginatedListingsResponse struct {
	Listings   []ListingCardResponse `json:"listings"`
	Considered int                   `json:"considered"`
	Matched    int                   `json:"matched"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"per_page"`
}

// ListingDetailsResponse - страница объекта
type ListingDetailsResponse struct {
	ListingCardResponse
	Description  string    `json:"description"`
	OwnerID      string    `json:"owner_id,omitempty"`
	GalleryImage string    `json:"gallery_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PriceRangeResponse struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type FilterOptionsResponse struct {
	Price         *PriceRangeResponse `json:"price"`
	PropertyTypes []string            `json:"property_types"`
	ListingTypes  []string            `json:"listing_types"`
	Beds          []int               `json:"beds"`
	Baths         []float64           `json:"baths"`
	Count         int                 `json:"count"`
}

func toCardResponse(l domain.Listing, images port.ImageURLResolverPort, size port.ImageSize) ListingCardResponse {
	return ListingCardResponse{
		ID:           l.ID,
		Title:        l.Title,
		Price:        l.Price,
		Location:     l.Location,
		ListingType:  string(l.ListingType),
		PropertyType: string(l.PropertyType),
		Beds:         l.Beds,
		Baths:        l.Baths,
		Sqft:         l.Sqft,
		Image:        images.URLFor(l.ImageURL, size),
		Status:       string(l.Status),
	}
}

func toDetailsResponse(l domain.Listing, images port.ImageURLResolverPort) ListingDetailsResponse {
	return ListingDetailsResponse{
		ListingCardResponse: toCardResponse(l, images, port.ImageSizeHero),
		Description:         l.Description,
		OwnerID:             l.OwnerID,
		GalleryImage:        images.URLFor(l.ImageURL, port.ImageSizeGallery),
		CreatedAt:           l.CreatedAt,
		UpdatedAt:           l.UpdatedAt,
	}
}

func toFilterOptionsResponse(opts *domain.FilterOptionsResult) FilterOptionsResponse {
	response := FilterOptionsResponse{
		PropertyTypes: make([]string, len(opts.PropertyTypes)),
		ListingTypes:  make([]string, len(opts.ListingTypes)),
		Beds:          opts.Beds,
		Baths:         opts.Baths,
		Count:         opts.Count,
	}
	if opts.Price != nil {
		response.Price = &PriceRangeResponse{Min: opts.Price.Min, Max: opts.Price.Max}
	}
	for i, pt := range opts.PropertyTypes {
		response.PropertyTypes[i] = string(pt)
	}
	for i, lt := range opts.ListingTypes {
		response.ListingTypes[i] = string(lt)
	}
	return response
}

// AgentResponse - карточка агента
type AgentResponse struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Title           string   `json:"title"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Telegram        string   `json:"telegram,omitempty"`
	Location        string   `json:"location"`
	ExperienceYears int      `json:"experience_years"`
	Rating          float64  `json:"rating"`
	ProfileImage    string   `json:"profile_image,omitempty"`
	Specialties     []string `json:"specialties"`
	Bio             string   `json:"bio,omitempty"`
}

// AgentsResponse - ответ GET /agents
type AgentsResponse struct {
	Agents     []AgentResponse `json:"agents"`
	Considered int             `json:"considered"`
	Matched    int             `json:"matched"`
}

type AgentFilterOptionsResponse struct {
	Locations   []string `json:"locations"`
	Specialties []string `json:"specialties"`
	Count       int      `json:"count"`
}

// HealthResponse - ответ /health
type HealthResponse struct {
	Status         string `json:"status"`
	CatalogVersion uint64 `json:"catalog_version"`
	Listings       int    `json:"listings"`
	Agents         int    `json:"agents"`
}

func toAgentResponse(a domain.Agent, images port.ImageURLResolverPort) AgentResponse {
	specialties := a.Specialties
	if specialties == nil {
		specialties = []string{}
	}
	return AgentResponse{
		ID:              a.ID,
		FullName:        a.FullName,
		Title:           a.Title,
		Email:           a.Email,
		Phone:           a.Phone,
		Telegram:        a.Telegram,
		Location:        a.Location,
		ExperienceYears: a.ExperienceYears,
		Rating:          a.Rating,
		ProfileImage:    images.URLFor(a.ProfileImage, port.ImageSizeProfile),
		Specialties:     specialties,
		Bio:             a.Bio,
	}
}
