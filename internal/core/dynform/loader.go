package dynform

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

const loadFailedMessage = "تعذر تحميل خصائص العقار"

// State - снимок состояния загрузчика для отдачи клиенту.
type State struct {
	FinalTypeID           *int
	// PropertiesFinalTypeID - finalType, которому принадлежат Properties; после неудачной
	// загрузки нового типа отличается от FinalTypeID
	PropertiesFinalTypeID *int
	Properties            []domain.DynamicProperty
	Groups                []PropertyGroup
	Values                map[string]any
	Loading               bool
	Error                 string
}

// Loader держит схему свойств формы для выбранного finalType.
// Смена finalType отменяет незавершенную загрузку; ответ устаревшего запроса отбрасывается.
// Смена типа очищает введенные значения. Если повторная загрузка не удалась, остаются
// ранее загруженные свойства с пометкой их типа, если не удалась самая первая - список пуст.
type Loader struct {
	source port.PropertySchemaPort

	mu          sync.Mutex
	finalTypeID *int
	loadedID    int
	loaded      bool
	loading     bool
	errMsg      string
	properties  []domain.DynamicProperty
	values      map[string]any
	generation  uint64
	cancel      context.CancelFunc
}

func NewLoader(source port.PropertySchemaPort) *Loader {
	return &Loader{
		source: source,
		values: make(map[string]any),
	}
}

// SetFinalType выбирает finalType и синхронно загружает его свойства.
// nil сбрасывает форму без обращения к бэкенду.
func (l *Loader) SetFinalType(ctx context.Context, finalTypeID *int) error {
	return l.BeginSetFinalType(ctx, finalTypeID)()
}

// BeginSetFinalType применяет выбор сразу и возвращает функцию загрузки свойств.
func (l *Loader) BeginSetFinalType(ctx context.Context, finalTypeID *int) func() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.unchangedLocked(finalTypeID) {
		return func() error { return nil }
	}

	l.generation++
	gen := l.generation
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}

	if finalTypeID == nil {
		l.finalTypeID = nil
		l.loadedID = 0
		l.loaded = false
		l.loading = false
		l.errMsg = ""
		l.properties = nil
		l.values = make(map[string]any)
		return func() error { return nil }
	}

	id := *finalTypeID
	if l.finalTypeID == nil || *l.finalTypeID != id {
		// значения прежнего типа к новой схеме не относятся
		l.values = make(map[string]any)
	}
	l.finalTypeID = &id
	l.loading = true
	l.errMsg = ""
	fetchCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	return func() error {
		props, err := l.source.GetPropertiesByFinalType(fetchCtx, id)
		cancel()

		l.mu.Lock()
		defer l.mu.Unlock()

		if gen != l.generation {
			return domain.ErrSelectionSuperseded
		}
		l.cancel = nil
		l.loading = false

		if err != nil {
			l.errMsg = loadFailedMessage
			if !l.loaded {
				l.properties = nil
				l.values = make(map[string]any)
			}
			return fmt.Errorf("failed to load properties for final type %d: %w", id, err)
		}

		l.properties = props
		l.values = DefaultValues(props)
		l.loaded = true
		l.loadedID = id
		return nil
	}
}

func (l *Loader) unchangedLocked(finalTypeID *int) bool {
	if finalTypeID == nil {
		return l.finalTypeID == nil
	}
	if l.finalTypeID == nil || *l.finalTypeID != *finalTypeID {
		return false
	}
	return l.loading || (l.loadedID == *finalTypeID && l.errMsg == "")
}

// SetValue записывает значение поля формы.
func (l *Loader) SetValue(key string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.values[key] = value
}

func (l *Loader) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := State{
		Properties: slices.Clone(l.properties),
		Groups:     GroupProperties(l.properties),
		Values:     maps.Clone(l.values),
		Loading:    l.loading,
		Error:      l.errMsg,
	}
	if l.finalTypeID != nil {
		id := *l.finalTypeID
		st.FinalTypeID = &id
	}
	if l.loaded {
		id := l.loadedID
		st.PropertiesFinalTypeID = &id
	}
	return st
}

// Validate проверяет текущие значения формы.
// Пока схема выбранного типа не загружена, форма невалидна.
func (l *Loader) Validate() (errs map[string][]string, valid bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	errs = ValidateForm(l.properties, l.values)
	if l.finalTypeID != nil && (l.loading || !l.loaded || l.loadedID != *l.finalTypeID) {
		return errs, false
	}
	return errs, IsFormValid(l.properties, l.values)
}
