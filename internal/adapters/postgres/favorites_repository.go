package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"real-estate-marketplace/internal/contextkeys"
	"real-estate-marketplace/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FavoritesSchema - DDL таблицы избранного, применяется при старте.
var FavoritesSchema = []string{
	`CREATE TABLE IF NOT EXISTS user_favorites (
		user_id    UUID        NOT NULL,
		listing_id INTEGER     NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, listing_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_user_favorites_user_created ON user_favorites (user_id, created_at DESC)`,
}

// PostgresFavoritesRepository - реализация порта для PostgreSQL.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

func (r *PostgresFavoritesRepository) logger(ctx context.Context, method string, userID uuid.UUID) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    method,
		"user_id":   userID,
	})
}

// Add добавляет запись в user_favorites. Повторное добавление не ошибка.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID uuid.UUID, listingID int) error {
	repoLogger := r.logger(ctx, "Add", userID).WithFields(port.Fields{"listing_id": listingID})
	query := `INSERT INTO user_favorites (user_id, listing_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, userID, listingID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			repoLogger.Warn("Favorite already exists, operation considered successful.", nil)
			return nil
		}
		repoLogger.Error("Failed to add favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID uuid.UUID, listingID int) error {
	repoLogger := r.logger(ctx, "Remove", userID).WithFields(port.Fields{"listing_id": listingID})
	query := `DELETE FROM user_favorites WHERE user_id = $1 AND listing_id = $2`

	cmdTag, err := r.pool.Exec(ctx, query, userID, listingID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, port.Fields{"query": query})
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
	}
	return nil
}

func (r *PostgresFavoritesRepository) Contains(ctx context.Context, userID uuid.UUID, listingID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_favorites WHERE user_id = $1 AND listing_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, listingID).Scan(&exists); err != nil {
		r.logger(ctx, "Contains", userID).Error("Failed to check favorite", err, port.Fields{"query": query})
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *PostgresFavoritesRepository) FindIDsByUser(ctx context.Context, userID uuid.UUID) ([]int, error) {
	repoLogger := r.logger(ctx, "FindIDsByUser", userID)
	query := `SELECT listing_id FROM user_favorites WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		repoLogger.Error("Failed to query favorite IDs", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query favorite IDs: %w", err)
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			repoLogger.Error("Failed to scan favorite ID row", err, nil)
			return nil, fmt.Errorf("failed to scan favorite ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorite IDs iteration", err, nil)
		return nil, fmt.Errorf("error during favorite IDs iteration: %w", err)
	}
	return ids, nil
}

func (r *PostgresFavoritesRepository) ClearByUser(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM user_favorites WHERE user_id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		r.logger(ctx, "ClearByUser", userID).Error("Failed to clear favorites", err, port.Fields{"query": query})
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	r.logger(ctx, "ClearByUser", userID).Debug("Favorites cleared", port.Fields{"removed": cmdTag.RowsAffected()})
	return nil
}
