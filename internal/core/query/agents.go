package query

import (
	"math"
	"sort"
	"strings"

	"catalog-service/internal/core/domain"
)

// Ключи фильтров справочника агентов
const (
	FieldAgentSearch     = "search"
	FieldAgentLocation   = "location"
	FieldAgentSpecialty  = "specialty"
	FieldAgentExperience = "experience"
)

// AgentPredicate - правило для агента
type AgentPredicate = Rule[domain.Agent]

// ValidateAgentCriteria разбирает фильтры справочника. Стаж задается
// диапазоном лет в том же формате, что и цена: "0-5", "5-10", "10+".
func ValidateAgentCriteria(raw RawInput) (domain.AgentCriteria, domain.ValidationErrors) {
	var (
		criteria domain.AgentCriteria
		errs     domain.ValidationErrors
	)

	if text, ok := textValue(raw[FieldAgentSearch]); ok {
		criteria.Search = text
	}
	if text, ok := textValue(raw[FieldAgentLocation]); ok {
		criteria.Location = text
	}
	if text, ok := textValue(raw[FieldAgentSpecialty]); ok {
		criteria.Specialty = text
	}

	if text, ok := textValue(raw[FieldAgentExperience]); ok {
		min, max, err := parseRange(FieldAgentExperience, "experience", text)
		switch {
		case err != nil:
			errs = append(errs, *err)
		case !wholeYears(min) || !wholeYears(max):
			errs = append(errs, domain.ValidationError{
				Field:   FieldAgentExperience,
				Kind:    domain.ErrorKindMalformedInput,
				Value:   text,
				Message: "experience must be a whole number of years",
			})
		default:
			criteria.ExperienceMin = yearsPtr(min)
			criteria.ExperienceMax = yearsPtr(max)
		}
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return domain.AgentCriteria{}, errs
	}
	return criteria, nil
}

func wholeYears(v *float64) bool {
	return v == nil || (*v == math.Trunc(*v) && *v <= math.MaxInt32)
}

func yearsPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	years := int(*v)
	return &years
}

// CompileAgentCriteria строит правила только для заданных фильтров
func CompileAgentCriteria(c domain.AgentCriteria) []AgentPredicate {
	predicates := make([]AgentPredicate, 0, 5)

	if c.Search != "" {
		needle := foldCase(c.Search)
		predicates = append(predicates, AgentPredicate{
			Name: "search",
			Test: func(a domain.Agent) bool {
				return strings.Contains(foldCase(a.FullName), needle) || strings.Contains(foldCase(a.Title), needle)
			},
		})
	}
	if c.Location != "" {
		location := c.Location
		predicates = append(predicates, AgentPredicate{
			Name: "location",
			Test: func(a domain.Agent) bool { return a.Location == location },
		})
	}
	if c.Specialty != "" {
		specialty := c.Specialty
		predicates = append(predicates, AgentPredicate{
			Name: "specialty",
			Test: func(a domain.Agent) bool { return a.HasSpecialty(specialty) },
		})
	}
	if c.ExperienceMin != nil {
		years := *c.ExperienceMin
		predicates = append(predicates, AgentPredicate{
			Name: "experience_min",
			Test: func(a domain.Agent) bool { return a.ExperienceYears >= years },
		})
	}
	if c.ExperienceMax != nil {
		years := *c.ExperienceMax
		predicates = append(predicates, AgentPredicate{
			Name: "experience_max",
			Test: func(a domain.Agent) bool { return a.ExperienceYears <= years },
		})
	}

	return predicates
}

// MatchAgents сохраняет порядок справочника и не меняет входной срез
func MatchAgents(agents []domain.Agent, predicates []AgentPredicate) domain.AgentMatchResult {
	matched := keep(agents, predicates)
	return domain.AgentMatchResult{
		Agents:     matched,
		Considered: len(agents),
		Matched:    len(matched),
	}
}

// FilterAgents - валидированные критерии сразу в результат
func FilterAgents(agents []domain.Agent, criteria domain.AgentCriteria) domain.AgentMatchResult {
	return MatchAgents(agents, CompileAgentCriteria(criteria))
}

// AgentOptions собирает различающиеся города и специализации по алфавиту
func AgentOptions(agents []domain.Agent) domain.AgentFilterOptions {
	locations := map[string]struct{}{}
	specialties := map[string]struct{}{}
	for _, a := range agents {
		if a.Location != "" {
			locations[a.Location] = struct{}{}
		}
		for _, s := range a.Specialties {
			specialties[s] = struct{}{}
		}
	}

	return domain.AgentFilterOptions{
		Locations:   sortedStrings(locations),
		Specialties: sortedStrings(specialties),
		Count:       len(agents),
	}
}

func sortedStrings(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
