package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/port"
)

// LoadCatalogUseCase заполняет снимок каталога из начального источника
type LoadCatalogUseCase struct {
	seed  port.ListingSourcePort
	store port.ListingStorePort
}

func NewLoadCatalogUseCase(seed port.ListingSourcePort, store port.ListingStorePort) *LoadCatalogUseCase {
	return &LoadCatalogUseCase{seed: seed, store: store}
}

func (uc *LoadCatalogUseCase) Execute(ctx context.Context) (int, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "LoadCatalog"})
	ucLogger.Info("Use case started", nil)

	listings, err := uc.seed.All(ctx)
	if err != nil {
		ucLogger.Error("Seed source returned an error", err, nil)
		return 0, fmt.Errorf("failed to read seed catalog: %w", err)
	}

	if err := uc.store.ReplaceAll(ctx, listings); err != nil {
		ucLogger.Error("Failed to replace catalog snapshot", err, nil)
		return 0, fmt.Errorf("failed to replace catalog snapshot: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"listings": len(listings)})
	return len(listings), nil
}
