package filestorage

import (
	"context"
	"fmt"
	"os"

	"catalog-service/internal/core/domain"
	"catalog-service/internal/core/port"

	"gopkg.in/yaml.v3"
)

type agentsFile struct {
	Agents []agentRecord `yaml:"agents"`
}

type agentRecord struct {
	ID           string   `yaml:"id"`
	FullName     string   `yaml:"full_name"`
	Title        string   `yaml:"title"`
	Email        string   `yaml:"email"`
	Phone        string   `yaml:"phone"`
	Telegram     string   `yaml:"telegram"`
	Location     string   `yaml:"location"`
	Experience   int      `yaml:"experience_years"`
	Rating       float64  `yaml:"rating"`
	ProfileImage string   `yaml:"profile_image"`
	Specialties  []string `yaml:"specialties"`
	Bio          string   `yaml:"bio"`
}

// YAMLAgentSource читает справочник агентов из YAML-файла
type YAMLAgentSource struct {
	path   string
	logger port.LoggerPort
}

func NewYAMLAgentSource(path string, logger port.LoggerPort) (*YAMLAgentSource, error) {
	if path == "" {
		return nil, fmt.Errorf("agents file path is required")
	}
	return &YAMLAgentSource{
		path:   path,
		logger: logger.WithFields(port.Fields{"component": "yaml_agent_source", "path": path}),
	}, nil
}

// All: отсутствие файла возвращается как ошибка с fs.ErrNotExist внутри
func (s *YAMLAgentSource) All(ctx context.Context) ([]domain.Agent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read agents file: %w", err)
	}

	var file agentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse agents file: %w", err)
	}

	agents := make([]domain.Agent, 0, len(file.Agents))
	seen := make(map[string]struct{}, len(file.Agents))
	for i, rec := range file.Agents {
		a, err := domain.NewAgent(rec.toDomain())
		if err != nil {
			s.logger.Warn("Skipping invalid agent record", port.Fields{"index": i, "error": err.Error()})
			continue
		}
		if _, dup := seen[a.ID]; dup {
			s.logger.Warn("Skipping duplicate agent id", port.Fields{"index": i, "agent_id": a.ID})
			continue
		}
		seen[a.ID] = struct{}{}
		agents = append(agents, a)
	}

	s.logger.Debug("Agents file loaded", port.Fields{"records": len(file.Agents), "valid": len(agents)})
	return agents, nil
}

func (r agentRecord) toDomain() domain.Agent {
	return domain.Agent{
		ID:              r.ID,
		FullName:        r.FullName,
		Title:           r.Title,
		Email:           r.Email,
		Phone:           r.Phone,
		Telegram:        r.Telegram,
		Location:        r.Location,
		ExperienceYears: r.Experience,
		Rating:          r.Rating,
		ProfileImage:    r.ProfileImage,
		Specialties:     r.Specialties,
		Bio:             r.Bio,
	}
}
