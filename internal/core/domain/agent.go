package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// Agent - риелтор из справочника агентов
type Agent struct {
	ID              string
	FullName        string
	Title           string
	Email           string
	Phone           string
	Telegram        string
	Location        string
	ExperienceYears int
	Rating          float64 // от 0 до 5
	ProfileImage    string
	Specialties     []string
	Bio             string
}

// HasSpecialty - точное совпадение с одной из специализаций
func (a Agent) HasSpecialty(s string) bool {
	return slices.Contains(a.Specialties, s)
}

// NewAgent проверяет запись справочника. Специализации очищаются
// от пустых значений и повторов с сохранением порядка.
func NewAgent(a Agent) (Agent, error) {
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return Agent{}, fmt.Errorf("agent id is required")
	}
	a.FullName = strings.TrimSpace(a.FullName)
	if a.FullName == "" {
		return Agent{}, fmt.Errorf("agent %s: full name is required", a.ID)
	}
	if a.ExperienceYears < 0 {
		return Agent{}, fmt.Errorf("agent %s: experience must be non-negative, got %d", a.ID, a.ExperienceYears)
	}
	if math.IsNaN(a.Rating) || a.Rating < 0 || a.Rating > 5 {
		return Agent{}, fmt.Errorf("agent %s: rating must be within 0..5, got %v", a.ID, a.Rating)
	}
	a.Location = strings.TrimSpace(a.Location)

	specialties := make([]string, 0, len(a.Specialties))
	for _, s := range a.Specialties {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(specialties, s) {
			continue
		}
		specialties = append(specialties, s)
	}
	a.Specialties = specialties

	return a, nil
}

// AgentCriteria - провалидированные фильтры справочника агентов.
// Пустая строка или nil означают отсутствие ограничения.
type AgentCriteria struct {
	Search        string // подстрока имени или должности без учета регистра
	Location      string // точное совпадение
	Specialty     string // точное совпадение с одной из специализаций
	ExperienceMin *int
	ExperienceMax *int
}

// AgentMatchResult - агенты, прошедшие фильтры, в порядке справочника
type AgentMatchResult struct {
	Agents     []Agent
	Considered int
	Matched    int
}

// AgentFilterOptions - варианты для селектов справочника
type AgentFilterOptions struct {
	Locations   []string
	Specialties []string
	Count       int
}
