package dynform

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"real-estate-marketplace/internal/core/domain"
)

// ValidateField возвращает сообщения об ошибках для одного поля, nil если поле корректно.
// Пустое необязательное поле не проверяется дальше.
func ValidateField(prop domain.DynamicProperty, value any) []string {
	label := prop.PropertyName
	if label == "" {
		label = prop.PropertyKey
	}

	if isBlank(value) {
		if prop.IsRequired {
			return []string{fmt.Sprintf("%s مطلوب", label)}
		}
		return nil
	}

	switch prop.DataType {
	case domain.DataTypeNumber:
		if !isFiniteNumber(value) {
			return []string{fmt.Sprintf("%s يجب أن يكون رقماً صالحاً", label)}
		}

	case domain.DataTypeSingleChoice:
		if len(prop.AllowedValues) == 0 {
			return nil
		}
		if s := stringify(value); !slices.Contains(prop.AllowedValues, s) {
			return []string{fmt.Sprintf("القيمة \"%s\" غير مسموحة في %s", s, label)}
		}

	case domain.DataTypeMultipleChoice:
		if len(prop.AllowedValues) == 0 {
			return nil
		}
		var errs []string
		for _, v := range asStrings(value) {
			if !slices.Contains(prop.AllowedValues, v) {
				errs = append(errs, fmt.Sprintf("القيمة \"%s\" غير مسموحة في %s", v, label))
			}
		}
		return errs
	}

	return nil
}

// ValidateForm проверяет все поля; в ответ попадают только поля с ошибками.
func ValidateForm(props []domain.DynamicProperty, values map[string]any) map[string][]string {
	errs := make(map[string][]string)
	for _, p := range props {
		if msgs := ValidateField(p, values[p.PropertyKey]); len(msgs) > 0 {
			errs[p.PropertyKey] = msgs
		}
	}
	return errs
}

// IsFormValid - форма валидна, когда валидно каждое обязательное поле.
func IsFormValid(props []domain.DynamicProperty, values map[string]any) bool {
	for _, p := range props {
		if !p.IsRequired {
			continue
		}
		if len(ValidateField(p, values[p.PropertyKey])) > 0 {
			return false
		}
	}
	return true
}

func isBlank(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	return false
}

func isFiniteNumber(v any) bool {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		return true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return false
		}
		f = parsed
	default:
		return false
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func asStrings(v any) []string {
	switch x := v.(type) {
	case []string:
		return x
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			out[i] = stringify(e)
		}
		return out
	default:
		return []string{stringify(v)}
	}
}
