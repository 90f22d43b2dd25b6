package favorites

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/domain"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
)

const subscriberBuffer = 16

type subscriber struct {
	userID uuid.UUID
	ch     chan domain.FavoritesEvent
}

// Store - избранное пользователей с публикацией изменений подписчикам.
// Подписчики одного пользователя получают события в порядке изменений;
// медленный подписчик теряет события, но не блокирует Toggle.
type Store struct {
	repo      port.FavoritesRepositoryPort
	publisher port.FavoritesEventPublisherPort

	// mu сериализует изменения, чтобы IDs в событиях шли в порядке изменений
	mu sync.Mutex

	subsMu sync.RWMutex
	subs   map[uint64]subscriber
	nextID uint64
}

// NewStore - publisher может быть nil, тогда события остаются внутри процесса.
func NewStore(repo port.FavoritesRepositoryPort, publisher port.FavoritesEventPublisherPort) *Store {
	return &Store{
		repo:      repo,
		publisher: publisher,
		subs:      make(map[uint64]subscriber),
	}
}

// Get возвращает ID избранных объявлений пользователя.
func (s *Store) Get(ctx context.Context, userID uuid.UUID) ([]int, error) {
	ids, err := s.repo.FindIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// Toggle добавляет объявление в избранное или убирает его оттуда.
func (s *Store) Toggle(ctx context.Context, userID uuid.UUID, listingID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.repo.Contains(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	action := domain.FavoritesAdded
	if exists {
		action = domain.FavoritesRemoved
		err = s.repo.Remove(ctx, userID, listingID)
	} else {
		err = s.repo.Add(ctx, userID, listingID)
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	s.emitLocked(ctx, userID, listingID, action)
	return !exists, nil
}

// Clear удаляет все избранное пользователя.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.ClearByUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	s.emitLocked(ctx, userID, 0, domain.FavoritesCleared)
	return nil
}

// Subscribe подписывает на изменения избранного пользователя.
// Возвращенную функцию нужно вызвать для отписки, она закрывает канал.
func (s *Store) Subscribe(userID uuid.UUID) (<-chan domain.FavoritesEvent, func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	ch := make(chan domain.FavoritesEvent, subscriberBuffer)
	s.subs[id] = subscriber{userID: userID, ch: ch}
	s.subsMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, id)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, unsubscribe
}

func (s *Store) emitLocked(ctx context.Context, userID uuid.UUID, listingID int, action domain.FavoritesAction) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "FavoritesStore",
		"user_id":    userID,
		"listing_id": listingID,
		"action":     action,
	})

	ids, err := s.repo.FindIDsByUser(ctx, userID)
	if err != nil {
		logger.Error("Failed to read favorites after change, event will carry no snapshot", err, nil)
	}
	event := domain.FavoritesEvent{UserID: userID, ListingID: listingID, Action: action, IDs: ids}

	s.subsMu.RLock()
	for _, sub := range s.subs {
		if sub.userID != userID {
			continue
		}
		select {
		case sub.ch <- withIDs(event):
		default:
			logger.Warn("Favorites subscriber is too slow, event dropped", nil)
		}
	}
	s.subsMu.RUnlock()

	if s.publisher != nil {
		if err := s.publisher.PublishFavoritesChanged(ctx, event); err != nil {
			// изменение уже сохранено, ошибку шины только логируем
			logger.Error("Failed to publish favorites event", err, nil)
		}
	}
}

// withIDs копирует срез, чтобы подписчики не делили одну память.
func withIDs(e domain.FavoritesEvent) domain.FavoritesEvent {
	e.IDs = slices.Clone(e.IDs)
	return e
}
