package cascade

import (
	"context"
	"errors"
	"sync"
	"testing"

	"real-estate-marketplace/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLocations: запросы для ID из blockNeighborhoods/blockFinalCities ждут отмены контекста.
type fakeLocations struct {
	mu                 sync.Mutex
	blockNeighborhoods map[int]bool
	blockFinalCities   map[int]bool
	failNeighborhoods  map[int]error
	started            chan string
	calls              int
}

func newFakeLocations() *fakeLocations {
	return &fakeLocations{
		blockNeighborhoods: make(map[int]bool),
		blockFinalCities:   make(map[int]bool),
		failNeighborhoods:  make(map[int]error),
		started:            make(chan string, 10),
	}
}

func (f *fakeLocations) GetCities(ctx context.Context) ([]domain.City, error) {
	return []domain.City{{ID: 1, Name: "دمشق"}, {ID: 2, Name: "حلب"}}, nil
}

func (f *fakeLocations) GetNeighborhoods(ctx context.Context, cityID int) ([]domain.Neighborhood, error) {
	f.mu.Lock()
	f.calls++
	block, err := f.blockNeighborhoods[cityID], f.failNeighborhoods[cityID]
	f.mu.Unlock()

	f.started <- "neighborhoods"
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}
	return []domain.Neighborhood{{ID: cityID*10 + 1, CityID: cityID}, {ID: cityID*10 + 2, CityID: cityID}}, nil
}

func (f *fakeLocations) GetFinalCities(ctx context.Context, neighborhoodID int) ([]domain.FinalCity, error) {
	f.mu.Lock()
	f.calls++
	block := f.blockFinalCities[neighborhoodID]
	f.mu.Unlock()

	f.started <- "finalCities"
	if block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []domain.FinalCity{{ID: neighborhoodID*10 + 1, NeighborhoodID: neighborhoodID}}, nil
}

func intPtr(v int) *int { return &v }

func TestResolver_FullCascade(t *testing.T) {
	r := NewResolver(newFakeLocations())
	ctx := context.Background()

	require.NoError(t, r.LoadCities(ctx))
	require.NoError(t, r.SelectCity(ctx, intPtr(1)))
	require.NoError(t, r.SelectNeighborhood(ctx, intPtr(11)))
	r.SelectFinalCity(intPtr(111))

	st := r.State()
	assert.Len(t, st.Cities, 2)
	assert.Len(t, st.Neighborhoods, 2)
	assert.Len(t, st.FinalCities, 1)
	assert.Equal(t, 1, *st.SelectedCityID)
	assert.Equal(t, 11, *st.SelectedNeighborhoodID)
	assert.Equal(t, 111, *st.SelectedFinalCityID)
}

func TestResolver_CityChangeResetsLowerLevels(t *testing.T) {
	r := NewResolver(newFakeLocations())
	ctx := context.Background()

	require.NoError(t, r.SelectCity(ctx, intPtr(1)))
	require.NoError(t, r.SelectNeighborhood(ctx, intPtr(11)))
	r.SelectFinalCity(intPtr(111))

	require.NoError(t, r.SelectCity(ctx, intPtr(2)))

	st := r.State()
	assert.Nil(t, st.SelectedNeighborhoodID)
	assert.Nil(t, st.SelectedFinalCityID)
	assert.Empty(t, st.FinalCities)
	require.Len(t, st.Neighborhoods, 2)
	assert.Equal(t, 2, st.Neighborhoods[0].CityID)
}

func TestResolver_NilSelectionClearsWithoutFetch(t *testing.T) {
	src := newFakeLocations()
	r := NewResolver(src)
	ctx := context.Background()

	require.NoError(t, r.SelectCity(ctx, intPtr(1)))
	require.NoError(t, r.SelectCity(ctx, nil))

	st := r.State()
	assert.Nil(t, st.SelectedCityID)
	assert.Empty(t, st.Neighborhoods)
	assert.Equal(t, 1, src.calls)

	require.NoError(t, r.SelectNeighborhood(ctx, nil))
	assert.Equal(t, 1, src.calls)
}

func TestResolver_StaleNeighborhoodsAreDropped(t *testing.T) {
	src := newFakeLocations()
	src.blockNeighborhoods[1] = true
	r := NewResolver(src)
	ctx := context.Background()

	firstErr := make(chan error, 1)
	go func() { firstErr <- r.SelectCity(ctx, intPtr(1)) }()
	<-src.started
	assert.True(t, r.State().LoadingNeighborhoods)

	require.NoError(t, r.SelectCity(ctx, intPtr(2)))
	assert.ErrorIs(t, <-firstErr, domain.ErrSelectionSuperseded)

	st := r.State()
	assert.Equal(t, 2, *st.SelectedCityID)
	for _, n := range st.Neighborhoods {
		assert.Equal(t, 2, n.CityID)
	}
	assert.False(t, st.LoadingNeighborhoods)
}

func TestResolver_CityChangeDropsInFlightFinalCities(t *testing.T) {
	src := newFakeLocations()
	src.blockFinalCities[11] = true
	r := NewResolver(src)
	ctx := context.Background()

	require.NoError(t, r.SelectCity(ctx, intPtr(1)))
	<-src.started

	finalErr := make(chan error, 1)
	go func() { finalErr <- r.SelectNeighborhood(ctx, intPtr(11)) }()
	assert.Equal(t, "finalCities", <-src.started)

	require.NoError(t, r.SelectCity(ctx, intPtr(2)))
	assert.ErrorIs(t, <-finalErr, domain.ErrSelectionSuperseded)

	st := r.State()
	assert.Nil(t, st.SelectedNeighborhoodID)
	assert.Empty(t, st.FinalCities)
	assert.False(t, st.LoadingFinalCities)
}

func TestResolver_FetchErrorIsReported(t *testing.T) {
	src := newFakeLocations()
	src.failNeighborhoods[3] = errors.New("backend down")
	r := NewResolver(src)

	err := r.SelectCity(context.Background(), intPtr(3))
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSelectionSuperseded)
	assert.NotEmpty(t, r.State().Error)
	assert.Empty(t, r.State().Neighborhoods)
}

func TestResolver_BeginAppliesSelectionsInCallOrder(t *testing.T) {
	r := NewResolver(newFakeLocations())
	ctx := context.Background()

	first := r.BeginSelectCity(ctx, intPtr(1))
	second := r.BeginSelectCity(ctx, intPtr(2))

	st := r.State()
	require.NotNil(t, st.SelectedCityID)
	assert.Equal(t, 2, *st.SelectedCityID)
	assert.True(t, st.LoadingNeighborhoods)

	require.NoError(t, second())
	assert.ErrorIs(t, first(), domain.ErrSelectionSuperseded)

	st = r.State()
	require.Len(t, st.Neighborhoods, 2)
	assert.Equal(t, 2, st.Neighborhoods[0].CityID)
	assert.False(t, st.LoadingNeighborhoods)
}
