package port

import (
	"context"

	"catalog-service/internal/core/domain"
)

// AgentSourcePort отдает справочник агентов в порядке показа
type AgentSourcePort interface {
	All(ctx context.Context) ([]domain.Agent, error)
}

// AgentStorePort - справочник, который загружается целиком при старте
type AgentStorePort interface {
	ReplaceAll(ctx context.Context, agents []domain.Agent) error
}
