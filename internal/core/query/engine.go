// Package query отвечает на вопрос "какие объекты подходят под критерии
// и в каком порядке" для набора объектов в памяти. Пакет не хранит
// состояния между вызовами и безопасен для конкурентного использования.
package query

import "catalog-service/internal/core/domain"

// Engine связывает компилятор предикатов, Matcher и сортировку
type Engine struct {
	matcher Matcher
}

// NewEngine: nil означает LinearMatcher
func NewEngine(matcher Matcher) *Engine {
	if matcher == nil {
		matcher = LinearMatcher{}
	}
	return &Engine{matcher: matcher}
}

// FilterAndSort ожидает уже провалидированные Criteria и никогда не падает.
// Противоречивые границы дают пустой результат.
func (e *Engine) FilterAndSort(listings []domain.Listing, criteria domain.Criteria, ordering domain.SortOrdering) domain.MatchResult {
	result := e.matcher.Match(listings, Compile(criteria))
	return Sort(result, ordering)
}

// FilterAndSort - то же самое с LinearMatcher
func FilterAndSort(listings []domain.Listing, criteria domain.Criteria, ordering domain.SortOrdering) domain.MatchResult {
	return Sort(Match(listings, Compile(criteria)), ordering)
}
