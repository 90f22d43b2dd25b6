package facet

import (
	"cmp"
	"slices"
	"strings"

	"real-estate-marketplace/internal/core/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort возвращает отсортированную копию. Сортировка стабильная,
// неизвестное поле оставляет исходный порядок.
func Sort(listings []domain.Listing, opt domain.SortOption, defs []domain.DynamicProperty) []domain.Listing {
	out := slices.Clone(listings)
	desc := opt.Direction == domain.SortDesc

	switch {
	case opt.Field == domain.SortFieldPrice:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return compareFloats(a.Price, b.Price, desc)
		})

	case opt.Field == domain.SortFieldCreatedAt:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return compareFloats(float64(createdAtMillis(a)), float64(createdAtMillis(b)), desc)
		})

	case strings.HasPrefix(opt.Field, domain.PropertyFilterPrefix):
		key := strings.TrimPrefix(opt.Field, domain.PropertyFilterPrefix)
		if key == "" {
			return out
		}
		sortByProperty(out, key, sortDataType(key, out, defs), desc)
	}

	return out
}

func sortByProperty(out []domain.Listing, key string, dt domain.DataType, desc bool) {
	value := func(l domain.Listing) any {
		if pv, ok := l.Properties[key]; ok {
			return pv.Value
		}
		return nil
	}

	switch dt {
	case domain.DataTypeNumber:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return compareFloats(numberOrZero(value(a)), numberOrZero(value(b)), desc)
		})
	case domain.DataTypeDate:
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			return compareFloats(float64(timestampOrZero(value(a))), float64(timestampOrZero(value(b))), desc)
		})
	default:
		// collate.Collator не потокобезопасен, создаем на каждый вызов
		col := collate.New(language.Arabic)
		slices.SortStableFunc(out, func(a, b domain.Listing) int {
			if desc {
				return col.CompareString(toString(value(b)), toString(value(a)))
			}
			return col.CompareString(toString(value(a)), toString(value(b)))
		})
	}
}

// sortDataType: определение свойства, затем метаданные первого объявления, где они есть.
func sortDataType(key string, listings []domain.Listing, defs []domain.DynamicProperty) domain.DataType {
	idx := indexDefinitions(defs)
	if dt, ok := idx[key]; ok && dt != "" {
		return dt
	}
	for _, l := range listings {
		if pv, ok := l.Properties[key]; ok && pv.Property != nil && pv.Property.DataType != "" {
			return pv.Property.DataType
		}
	}
	return domain.DataTypeText
}

func compareFloats(a, b float64, desc bool) int {
	if desc {
		return cmp.Compare(b, a)
	}
	return cmp.Compare(a, b)
}

func numberOrZero(v any) float64 {
	if n, ok := toNumber(v); ok {
		return n
	}
	return 0
}

func timestampOrZero(v any) int64 {
	if ts, ok := toTimestamp(v); ok {
		return ts
	}
	return 0
}

func createdAtMillis(l domain.Listing) int64 {
	if l.CreatedAt.IsZero() {
		return 0
	}
	return l.CreatedAt.UnixMilli()
}
