package facet

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Значения фильтров и свойств приходят из JSON без схемы, поэтому
// все приведения типов собраны здесь и ведут себя одинаково для фильтрации и сортировки.

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// toNumber разбирает ведущий числовой префикс строкового представления значения.
// "12.5 м²" -> 12.5, "abc" -> false.
func toNumber(v any) (float64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), !math.IsNaN(float64(x))
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case bool:
		return 0, false
	}

	s := strings.TrimSpace(toString(v))
	switch {
	case strings.HasPrefix(s, "Infinity"), strings.HasPrefix(s, "+Infinity"):
		return math.Inf(1), true
	case strings.HasPrefix(s, "-Infinity"):
		return math.Inf(-1), true
	}
	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// toString - строковое представление значения; списки склеиваются через запятую.
func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []string:
		return strings.Join(x, ",")
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = toString(e)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	default:
		return ""
	}
}

// asList возвращает элементы, если значение является списком.
func asList(v any) ([]any, bool) {
	switch x := v.(type) {
	case []any:
		return x, true
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out, true
	case []float64:
		out := make([]any, len(x))
		for i, f := range x {
			out[i] = f
		}
		return out, true
	case []int:
		out := make([]any, len(x))
		for i, n := range x {
			out[i] = n
		}
		return out, true
	}
	return nil, false
}

// isEmptyFilter: nil, пустая строка или пустой список не ограничивают выборку.
func isEmptyFilter(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	if list, ok := asList(v); ok {
		return len(list) == 0
	}
	return false
}

// truthy повторяет правила истинности значений из JSON-клиента:
// пустая строка, 0 и nil ложны, любая непустая строка истинна.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// toTimestamp возвращает время в миллисекундах Unix.
// Числа считаются уже миллисекундами, строки без зоны трактуются как UTC.
func toTimestamp(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case time.Time:
		if x.IsZero() {
			return 0, false
		}
		return x.UnixMilli(), true
	case float64, int, int64, json.Number:
		f, ok := toNumber(x)
		if !ok || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	}

	s := strings.TrimSpace(toString(v))
	if s == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// normalizeIDs приводит значение встроенного фильтра к списку непустых строковых ID.
// Одиночное значение считается списком из одного элемента.
func normalizeIDs(v any) []string {
	var raw []any
	if list, ok := asList(v); ok {
		raw = list
	} else {
		switch v.(type) {
		case string, float64, int, int64, json.Number:
			raw = []any{v}
		default:
			return nil
		}
	}

	ids := make([]string, 0, len(raw))
	for _, e := range raw {
		s := strings.TrimSpace(toString(e))
		if s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}

// containsID сравнивает ID численно: "3", "03" и "3.0" совпадают с 3.
func containsID(ids []string, id int) bool {
	want := float64(id)
	for _, s := range ids {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v == want {
			return true
		}
	}
	return false
}
