package memory

import (
	"context"
	"slices"
	"sync"

	"catalog-service/internal/core/domain"
)

// AgentDirectory хранит справочник агентов в порядке загрузки
type AgentDirectory struct {
	mu     sync.RWMutex
	agents []domain.Agent
}

func NewAgentDirectory() *AgentDirectory {
	return &AgentDirectory{}
}

func (d *AgentDirectory) All(_ context.Context) ([]domain.Agent, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.agents), nil
}

func (d *AgentDirectory) ReplaceAll(_ context.Context, agents []domain.Agent) error {
	cloned := slices.Clone(agents)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.agents = cloned
	return nil
}

func (d *AgentDirectory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.agents)
}
