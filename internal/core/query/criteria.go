package query

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"catalog-service/internal/core/domain"
)

// RawInput - значения полей формы поиска в том виде, в каком их прислал UI
type RawInput map[string]any

// Ключи полей формы
const (
	FieldLocation     = "location"
	FieldPriceRange   = "priceRange"
	FieldPriceMin     = "priceMin"
	FieldPriceMax     = "priceMax"
	FieldPropertyType = "propertyType"
	FieldListingType  = "listingType"
	FieldMinBeds      = "minBeds"
	FieldMinBaths     = "minBaths"
	FieldMinSqft      = "minSqft"
	FieldSort         = "sort"
)

// Имена полей, которые использовали формы страниц покупки и аренды
var fieldAliases = map[string]string{
	"beds":  FieldMinBeds,
	"baths": FieldMinBaths,
	"type":  FieldListingType,
}

// ValidateCriteria превращает сырые значения формы в Criteria.
// Пустые значения означают отсутствие ограничения. Ошибки собираются
// по всем полям и возвращаются вместе, отсортированными по имени поля.
func ValidateCriteria(raw RawInput) (domain.Criteria, domain.ValidationErrors) {
	in := normalizeKeys(raw)

	var (
		criteria domain.Criteria
		errs     domain.ValidationErrors
	)

	if loc, ok := textValue(in[FieldLocation]); ok {
		criteria.LocationQuery = loc
	}

	// Диапазон цены строкой: "min-max", "min+" или "min"
	if text, ok := textValue(in[FieldPriceRange]); ok {
		min, max, err := ParsePriceRange(text)
		if err != nil {
			errs = append(errs, *err)
		} else {
			criteria.PriceMin = min
			criteria.PriceMax = max
		}
	}

	// Явные границы перекрывают соответствующую часть priceRange
	if v, present, err := nonNegativeNumber(FieldPriceMin, in[FieldPriceMin]); err != nil {
		errs = append(errs, *err)
	} else if present {
		criteria.PriceMin = &v
	}
	if v, present, err := nonNegativeNumber(FieldPriceMax, in[FieldPriceMax]); err != nil {
		errs = append(errs, *err)
	} else if present {
		criteria.PriceMax = &v
	}
	if criteria.PriceMin != nil && criteria.PriceMax != nil && *criteria.PriceMin > *criteria.PriceMax {
		field := FieldPriceMin
		if !hasValue(in[FieldPriceMin]) {
			field = FieldPriceMax
		}
		errs = append(errs, domain.ValidationError{
			Field:   field,
			Kind:    domain.ErrorKindInvalidRange,
			Value:   fmt.Sprintf("%s-%s", formatNumber(*criteria.PriceMin), formatNumber(*criteria.PriceMax)),
			Message: "minimum price exceeds maximum price",
		})
	}

	if text, ok := textValue(in[FieldPropertyType]); ok {
		pt := domain.PropertyType(strings.ToLower(text))
		if !pt.IsKnown() {
			errs = append(errs, domain.ValidationError{
				Field:   FieldPropertyType,
				Kind:    domain.ErrorKindInvalidEnum,
				Value:   text,
				Message: "unknown property type",
			})
		} else {
			criteria.PropertyType = pt
		}
	}

	if text, ok := textValue(in[FieldListingType]); ok {
		lt := domain.ListingType(strings.ToLower(text))
		if !lt.IsKnown() {
			errs = append(errs, domain.ValidationError{
				Field:   FieldListingType,
				Kind:    domain.ErrorKindInvalidEnum,
				Value:   text,
				Message: "listing type must be one of: sale, rent",
			})
		} else {
			criteria.ListingType = lt
		}
	}

	if v, present, err := nonNegativeNumber(FieldMinBeds, in[FieldMinBeds]); err != nil {
		errs = append(errs, *err)
	} else if present {
		if v != math.Trunc(v) || v > math.MaxInt32 {
			errs = append(errs, domain.ValidationError{
				Field:   FieldMinBeds,
				Kind:    domain.ErrorKindMalformedInput,
				Value:   formatNumber(v),
				Message: "bedroom count must be a whole number",
			})
		} else {
			beds := int(v)
			criteria.MinBeds = &beds
		}
	}

	if v, present, err := nonNegativeNumber(FieldMinBaths, in[FieldMinBaths]); err != nil {
		errs = append(errs, *err)
	} else if present {
		criteria.MinBaths = &v
	}

	if v, present, err := nonNegativeNumber(FieldMinSqft, in[FieldMinSqft]); err != nil {
		errs = append(errs, *err)
	} else if present {
		criteria.MinSqft = &v
	}

	if len(errs) > 0 {
		sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
		return domain.Criteria{}, errs
	}
	return criteria, nil
}

// ParsePriceRange разбирает "min-max", "min+", "min-" и "min"
// (последние три - открытый сверху диапазон). Обе границы включительные.
func ParsePriceRange(text string) (*float64, *float64, *domain.ValidationError) {
	return parseRange(FieldPriceRange, "price", text)
}

// parseRange - общий разбор строкового диапазона для цены и стажа
func parseRange(field, subject, text string) (*float64, *float64, *domain.ValidationError) {
	text = strings.TrimSpace(text)
	invalid := func(msg string) *domain.ValidationError {
		return &domain.ValidationError{
			Field:   field,
			Kind:    domain.ErrorKindInvalidRange,
			Value:   text,
			Message: msg,
		}
	}

	if strings.HasSuffix(text, "+") {
		min, ok := parseBound(strings.TrimSuffix(text, "+"))
		if !ok {
			return nil, nil, invalid(`expected "min+" with a non-negative number`)
		}
		return &min, nil, nil
	}

	parts := strings.Split(text, "-")
	switch len(parts) {
	case 1:
		min, ok := parseBound(parts[0])
		if !ok {
			return nil, nil, invalid(`expected "min-max" or "min+"`)
		}
		return &min, nil, nil
	case 2:
		min, okMin := parseBound(parts[0])
		// пустой максимум: "100-" значит то же, что "100+"
		if okMin && strings.TrimSpace(parts[1]) == "" {
			return &min, nil, nil
		}
		max, okMax := parseBound(parts[1])
		if !okMin || !okMax {
			return nil, nil, invalid(`expected "min-max" with non-negative numbers`)
		}
		if min > max {
			return nil, nil, invalid(fmt.Sprintf("minimum %s exceeds maximum %s", subject, subject))
		}
		return &min, &max, nil
	default:
		return nil, nil, invalid(`expected "min-max" or "min+"`)
	}
}

// ParseSortOrdering: пустая строка - без сортировки
func ParseSortOrdering(raw string) (domain.SortOrdering, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch domain.SortOrdering(value) {
	case "", domain.SortNone:
		return domain.SortNone, nil
	case domain.SortPriceAscending, domain.SortPriceDescending, domain.SortRecencyDescending:
		return domain.SortOrdering(value), nil
	}
	return "", domain.ValidationErrors{{
		Field:   FieldSort,
		Kind:    domain.ErrorKindInvalidEnum,
		Value:   raw,
		Message: "sort must be one of: none, price-ascending, price-descending, recency-descending",
	}}
}

func normalizeKeys(raw RawInput) RawInput {
	out := make(RawInput, len(raw))
	for k, v := range raw {
		if canonical, ok := fieldAliases[k]; ok {
			// каноническое имя важнее алиаса
			if _, exists := raw[canonical]; exists {
				continue
			}
			k = canonical
		}
		out[k] = v
	}
	return out
}

func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

func hasValue(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// textValue возвращает обрезанную строку; false - если значения нет
func textValue(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// nonNegativeNumber читает число из строки или числового типа Go.
// present=false, если поле пустое.
func nonNegativeNumber(field string, v any) (float64, bool, *domain.ValidationError) {
	if !hasValue(v) {
		return 0, false, nil
	}

	var (
		f  float64
		ok = true
	)
	switch t := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		f, ok = parsed, err == nil
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case float32:
		f = float64(t)
	case float64:
		f = t
	default:
		ok = false
	}

	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, &domain.ValidationError{
			Field:   field,
			Kind:    domain.ErrorKindMalformedInput,
			Value:   fmt.Sprint(v),
			Message: "expected a number",
		}
	}
	if f < 0 {
		return 0, false, &domain.ValidationError{
			Field:   field,
			Kind:    domain.ErrorKindMalformedInput,
			Value:   fmt.Sprint(v),
			Message: "expected a non-negative number",
		}
	}
	return f, true, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
