package query

import "catalog-service/internal/core/domain"

// Matcher применяет предикаты к набору объектов. Реализация может
// использовать индексы, но обязана вернуть тот же результат, что LinearMatcher.
type Matcher interface {
	Match(listings []domain.Listing, predicates []Predicate) domain.MatchResult
}

// LinearMatcher - полный проход O(n*p)
type LinearMatcher struct{}

func (LinearMatcher) Match(listings []domain.Listing, predicates []Predicate) domain.MatchResult {
	return Match(listings, predicates)
}

// Match оставляет объекты, прошедшие все предикаты, в исходном порядке.
// Входной срез не изменяется.
func Match(listings []domain.Listing, predicates []Predicate) domain.MatchResult {
	matched := keep(listings, predicates)
	return domain.MatchResult{
		Listings:   matched,
		Considered: len(listings),
		Matched:    len(matched),
	}
}

// keep - общий проход для объявлений и агентов
func keep[T any](items []T, rules []Rule[T]) []T {
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if matchesAll(item, rules) {
			kept = append(kept, item)
		}
	}
	return kept
}

func matchesAll[T any](item T, rules []Rule[T]) bool {
	for _, r := range rules {
		if !r.Test(item) {
			return false
		}
	}
	return true
}
