package cascade

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"
)

// State - снимок каскада для отдачи клиенту.
type State struct {
	Cities                 []domain.City
	Neighborhoods          []domain.Neighborhood
	FinalCities            []domain.FinalCity
	SelectedCityID         *int
	SelectedNeighborhoodID *int
	SelectedFinalCityID    *int
	LoadingNeighborhoods   bool
	LoadingFinalCities     bool
	Error                  string
}

// level - один уровень каскада с собственным счетчиком поколений.
// Ответ применяется, только если поколение не изменилось с момента запроса.
type level struct {
	generation uint64
	cancel     context.CancelFunc
	loading    bool
}

func (lv *level) restart(parent context.Context) (context.Context, uint64) {
	lv.invalidate()
	ctx, cancel := context.WithCancel(parent)
	lv.cancel = cancel
	lv.loading = true
	return ctx, lv.generation
}

func (lv *level) invalidate() {
	lv.generation++
	if lv.cancel != nil {
		lv.cancel()
		lv.cancel = nil
	}
	lv.loading = false
}

func (lv *level) finish(gen uint64) bool {
	if gen != lv.generation {
		return false
	}
	lv.cancel = nil
	lv.loading = false
	return true
}

// Resolver ведет выбор город → район → конечный город.
// Выбор на верхнем уровне сбрасывает все нижние и отменяет их незавершенные загрузки.
type Resolver struct {
	source port.LocationSourcePort

	mu            sync.Mutex
	cities        []domain.City
	neighborhoods []domain.Neighborhood
	finalCities   []domain.FinalCity

	cityID         *int
	neighborhoodID *int
	finalCityID    *int

	neighborhoodLevel level
	finalCityLevel    level
	errMsg            string
}

func NewResolver(source port.LocationSourcePort) *Resolver {
	return &Resolver{source: source}
}

// LoadCities загружает список городов верхнего уровня.
func (r *Resolver) LoadCities(ctx context.Context) error {
	cities, err := r.source.GetCities(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.errMsg = "تعذر تحميل المدن"
		return fmt.Errorf("failed to load cities: %w", err)
	}
	r.cities = cities
	r.errMsg = ""
	return nil
}

// SelectCity выбирает город и загружает его районы. nil только сбрасывает нижние уровни.
func (r *Resolver) SelectCity(ctx context.Context, cityID *int) error {
	return r.BeginSelectCity(ctx, cityID)()
}

// BeginSelectCity применяет выбор сразу, а загрузку районов возвращает отдельной функцией.
// Так вызывающий может сохранить порядок выборов и при этом не ждать сеть.
func (r *Resolver) BeginSelectCity(ctx context.Context, cityID *int) func() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cityID = copyID(cityID)
	r.neighborhoodID = nil
	r.finalCityID = nil
	r.neighborhoods = nil
	r.finalCities = nil
	r.errMsg = ""
	r.finalCityLevel.invalidate()

	if cityID == nil {
		r.neighborhoodLevel.invalidate()
		return func() error { return nil }
	}

	id := *cityID
	fetchCtx, gen := r.neighborhoodLevel.restart(ctx)
	return func() error {
		neighborhoods, err := r.source.GetNeighborhoods(fetchCtx, id)

		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.neighborhoodLevel.finish(gen) {
			return domain.ErrSelectionSuperseded
		}
		if err != nil {
			r.errMsg = "تعذر تحميل الأحياء"
			return fmt.Errorf("failed to load neighborhoods for city %d: %w", id, err)
		}
		r.neighborhoods = neighborhoods
		return nil
	}
}

// SelectNeighborhood выбирает район и загружает конечные города.
func (r *Resolver) SelectNeighborhood(ctx context.Context, neighborhoodID *int) error {
	return r.BeginSelectNeighborhood(ctx, neighborhoodID)()
}

func (r *Resolver) BeginSelectNeighborhood(ctx context.Context, neighborhoodID *int) func() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.neighborhoodID = copyID(neighborhoodID)
	r.finalCityID = nil
	r.finalCities = nil
	r.errMsg = ""

	if neighborhoodID == nil {
		r.finalCityLevel.invalidate()
		return func() error { return nil }
	}

	id := *neighborhoodID
	fetchCtx, gen := r.finalCityLevel.restart(ctx)
	return func() error {
		finalCities, err := r.source.GetFinalCities(fetchCtx, id)

		r.mu.Lock()
		defer r.mu.Unlock()
		if !r.finalCityLevel.finish(gen) {
			return domain.ErrSelectionSuperseded
		}
		if err != nil {
			r.errMsg = "تعذر تحميل المدن النهائية"
			return fmt.Errorf("failed to load final cities for neighborhood %d: %w", id, err)
		}
		r.finalCities = finalCities
		return nil
	}
}

// SelectFinalCity - последний уровень, загрузки нет.
func (r *Resolver) SelectFinalCity(finalCityID *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalCityID = copyID(finalCityID)
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()

	return State{
		Cities:                 slices.Clone(r.cities),
		Neighborhoods:          slices.Clone(r.neighborhoods),
		FinalCities:            slices.Clone(r.finalCities),
		SelectedCityID:         copyID(r.cityID),
		SelectedNeighborhoodID: copyID(r.neighborhoodID),
		SelectedFinalCityID:    copyID(r.finalCityID),
		LoadingNeighborhoods:   r.neighborhoodLevel.loading,
		LoadingFinalCities:     r.finalCityLevel.loading,
		Error:                  r.errMsg,
	}
}

// Close отменяет все незавершенные загрузки.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.neighborhoodLevel.invalidate()
	r.finalCityLevel.invalidate()
}

func copyID(id *int) *int {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
