package usecases_port

import (
	"context"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/query"
)

type FindAgentsUseCase interface {
	Execute(ctx context.Context, raw query.RawInput) (*domain.AgentMatchResult, error)
}

type GetAgentFilterOptionsUseCase interface {
	Execute(ctx context.Context) (*domain.AgentFilterOptions, error)
}

type LoadAgentsUseCase interface {
	Execute(ctx context.Context) (int, error)
}
