package usecases_port

import "context"

type LoadCatalogUseCase interface {
	Execute(ctx context.Context) (int, error)
}
