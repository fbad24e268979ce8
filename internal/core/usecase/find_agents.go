package usecase

import (
	"context"
	"fmt"

	"catalog-service/internal/contextkeys"
	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"
	"catalog-service/internal/core/query"
)

// FindAgentsUseCase фильтрует справочник агентов
type FindAgentsUseCase struct {
	source port.AgentSourcePort
}

func NewFindAgentsUseCase(source port.AgentSourcePort) *FindAgentsUseCase {
	return &FindAgentsUseCase{source: source}
}

func (uc *FindAgentsUseCase) Execute(ctx context.Context, raw query.RawInput) (*domain.AgentMatchResult, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "FindAgents",
		"criteria": raw,
	})
	ucLogger.Info("Use case started", nil)

	criteria, verrs := query.ValidateAgentCriteria(raw)
	if len(verrs) > 0 {
		ucLogger.Warn("Invalid agent filters", port.Fields{"errors": len(verrs)})
		return nil, verrs
	}

	agents, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Agent source returned an error", err, nil)
		return nil, fmt.Errorf("failed to read agent directory: %w", err)
	}

	result := query.FilterAgents(agents, criteria)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"considered": result.Considered,
		"matched":    result.Matched,
	})
	return &result, nil
}

// GetAgentFilterOptionsUseCase - варианты селектов по всему справочнику
type GetAgentFilterOptionsUseCase struct {
	source port.AgentSourcePort
}

func NewGetAgentFilterOptionsUseCase(source port.AgentSourcePort) *GetAgentFilterOptionsUseCase {
	return &GetAgentFilterOptionsUseCase{source: source}
}

func (uc *GetAgentFilterOptionsUseCase) Execute(ctx context.Context) (*domain.AgentFilterOptions, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "GetAgentFilterOptions"})

	agents, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Agent source returned an error", err, nil)
		return nil, fmt.Errorf("failed to read agent directory: %w", err)
	}

	options := query.AgentOptions(agents)
	ucLogger.Debug("Agent filter options collected", port.Fields{
		"locations":   len(options.Locations),
		"specialties": len(options.Specialties),
	})
	return &options, nil
}

// LoadAgentsUseCase заполняет справочник агентов при старте
type LoadAgentsUseCase struct {
	source port.AgentSourcePort
	store  port.AgentStorePort
}

func NewLoadAgentsUseCase(source port.AgentSourcePort, store port.AgentStorePort) *LoadAgentsUseCase {
	return &LoadAgentsUseCase{source: source, store: store}
}

func (uc *LoadAgentsUseCase) Execute(ctx context.Context) (int, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "LoadAgents"})
	ucLogger.Info("Use case started", nil)

	agents, err := uc.source.All(ctx)
	if err != nil {
		ucLogger.Error("Agent source returned an error", err, nil)
		return 0, fmt.Errorf("failed to read agent directory: %w", err)
	}
	if err := uc.store.ReplaceAll(ctx, agents); err != nil {
		return 0, fmt.Errorf("failed to replace agent directory: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"agents": len(agents)})
	return len(agents), nil
}
