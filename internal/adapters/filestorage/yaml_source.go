package filestorage

import (
	"context"
	"fmt"
	"os"
	"time"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"gopkg.in/yaml.v3"
)

// catalogFile - формат YAML-файла каталога
type catalogFile struct {
	// Дополнительные категории объектов сверх встроенных
	PropertyTypes []string        `yaml:"property_types"`
	Listings      []listingRecord `yaml:"listings"`
}

type listingRecord struct {
	ID           string    `yaml:"id"`
	Title        string    `yaml:"title"`
	Description  string    `yaml:"description"`
	Price        float64   `yaml:"price"`
	Location     string    `yaml:"location"`
	Type         string    `yaml:"type"`
	PropertyType string    `yaml:"property_type"`
	Beds         int       `yaml:"beds"`
	Baths        float64   `yaml:"baths"`
	Sqft         int       `yaml:"sqft"`
	Image        string    `yaml:"image"`
	Status       string    `yaml:"status"`
	OwnerID      string    `yaml:"owner_id"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

// YAMLSource читает каталог из YAML-файла при каждом вызове All.
// Некорректные записи пропускаются с предупреждением в лог.
type YAMLSource struct {
	path   string
	logger port.LoggerPort
}

func NewYAMLSource(path string, logger port.LoggerPort) (*YAMLSource, error) {
	if path == "" {
		return nil, fmt.Errorf("catalog file path is required")
	}
	return &YAMLSource{
		path:   path,
		logger: logger.WithFields(port.Fields{"component": "yaml_listing_source", "path": path}),
	}, nil
}

func (s *YAMLSource) All(ctx context.Context) ([]domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	for _, t := range file.PropertyTypes {
		domain.RegisterPropertyType(domain.PropertyType(t))
	}

	listings := make([]domain.Listing, 0, len(file.Listings))
	seen := make(map[string]struct{}, len(file.Listings))
	for i, rec := range file.Listings {
		l, err := domain.NewListing(rec.toDomain())
		if err != nil {
			s.logger.Warn("Skipping invalid catalog record", port.Fields{"index": i, "error": err.Error()})
			continue
		}
		if _, dup := seen[l.ID]; dup {
			s.logger.Warn("Skipping duplicate listing id", port.Fields{"index": i, "listing_id": l.ID})
			continue
		}
		seen[l.ID] = struct{}{}
		listings = append(listings, l)
	}

	s.logger.Debug("Catalog file loaded", port.Fields{"records": len(file.Listings), "valid": len(listings)})
	return listings, nil
}

func (s *YAMLSource) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("listing %q: %w", id, domain.ErrListingNotFound)
}

func (r listingRecord) toDomain() domain.Listing {
	return domain.Listing{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Location:     r.Location,
		ListingType:  domain.ListingType(r.Type),
		PropertyType: domain.PropertyType(r.PropertyType),
		Beds:         r.Beds,
		Baths:        r.Baths,
		Sqft:         r.Sqft,
		ImageURL:     r.Image,
		Status:       domain.ListingStatus(r.Status),
		OwnerID:      r.OwnerID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}
