package facet

import (
	"encoding/json"
	"strings"

	"real-estate-marketplace/internal/core/domain"

	"golang.org/x/text/cases"
)

// matcher не потокобезопасен: cases.Caser хранит состояние.
type matcher struct {
	caser cases.Caser
}

func newMatcher() *matcher {
	return &matcher{caser: cases.Fold()}
}

func (m *matcher) fold(v any) string {
	return m.caser.String(toString(v))
}

func (m *matcher) equalFold(a, b any) bool {
	return m.fold(a) == m.fold(b)
}

// Matches проверяет значение свойства объявления против значения фильтра.
// Фильтр неизвестной формы ничего не ограничивает.
func Matches(itemValue, filterValue any, dt domain.DataType) bool {
	return newMatcher().matches(itemValue, filterValue, dt)
}

func (m *matcher) matches(itemValue, filterValue any, dt domain.DataType) bool {
	if isEmptyFilter(filterValue) {
		return true
	}
	// отсутствующее значение не проходит ни один непустой фильтр
	if itemValue == nil {
		return false
	}

	if list, ok := asList(filterValue); ok {
		for _, e := range list {
			if m.matchElement(itemValue, e, dt) {
				return true
			}
		}
		return false
	}

	switch fv := filterValue.(type) {
	case map[string]any:
		return m.matchRange(itemValue, fv, dt)
	case bool:
		if dt != domain.DataTypeBoolean {
			return true
		}
		return truthy(itemValue) == fv
	case string, float64, float32, int, int64, json.Number:
		return m.matchScalar(itemValue, fv, dt)
	default:
		return true
	}
}

// matchElement - сравнение с одним элементом списочного фильтра.
func (m *matcher) matchElement(itemValue, e any, dt domain.DataType) bool {
	switch dt {
	case domain.DataTypeNumber:
		a, okA := toNumber(itemValue)
		b, okB := toNumber(e)
		return okA && okB && a == b
	case domain.DataTypeMultipleChoice:
		return m.containsFold(itemValue, e)
	default:
		return m.equalFold(itemValue, e)
	}
}

// matchRange - {min, max} применяется только к NUMBER, границы включительные.
func (m *matcher) matchRange(itemValue any, fv map[string]any, dt domain.DataType) bool {
	if dt != domain.DataTypeNumber {
		return true
	}
	lo, hasLo := rangeBound(fv["min"])
	hi, hasHi := rangeBound(fv["max"])
	if !hasLo && !hasHi {
		return true
	}
	n, ok := toNumber(itemValue)
	if !ok {
		return false
	}
	if hasLo && n < lo {
		return false
	}
	if hasHi && n > hi {
		return false
	}
	return true
}

func rangeBound(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
		return 0, false
	}
	return toNumber(v)
}

func (m *matcher) matchScalar(itemValue, fv any, dt domain.DataType) bool {
	switch dt {
	case domain.DataTypeNumber:
		a, okA := toNumber(itemValue)
		b, okB := toNumber(fv)
		return okA && okB && a == b
	case domain.DataTypeText:
		return strings.Contains(m.fold(itemValue), m.fold(fv))
	case domain.DataTypeDate:
		a, okA := toTimestamp(itemValue)
		b, okB := toTimestamp(fv)
		return okA && okB && a == b
	case domain.DataTypeMultipleChoice:
		return m.containsFold(itemValue, fv)
	default:
		return m.equalFold(itemValue, fv)
	}
}

// containsFold: для списочного значения свойства ищет элемент, иначе сравнивает как строку.
func (m *matcher) containsFold(itemValue, want any) bool {
	items, ok := asList(itemValue)
	if !ok {
		return m.equalFold(itemValue, want)
	}
	for _, it := range items {
		if m.equalFold(it, want) {
			return true
		}
	}
	return false
}
