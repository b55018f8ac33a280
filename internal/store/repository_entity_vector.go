package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-study-keeper/internal/logger"
	"github.com/MKhiriev/go-study-keeper/models"
)

type entityVectorRepository struct {
	*DB
	logger *logger.Logger
}

// NewEntityVectorRepository constructs an [EntityVectorRepository] backed by
// the provided database connection and logger.
func NewEntityVectorRepository(db *DB, logger *logger.Logger) EntityVectorRepository {
	return &entityVectorRepository{
		DB:     db,
		logger: logger,
	}
}

func (e *entityVectorRepository) GetVector(ctx context.Context, ref models.EntityRef) (models.VersionVector, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectVectorQuery(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var raw string
	err = e.DB.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVectorNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityVectorRepository.GetVector").
			Str("entity", ref.String()).
			Msg("failed to query entity vector")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var vector models.VersionVector
	if err = json.Unmarshal([]byte(raw), &vector); err != nil {
		log.Err(err).
			Str("func", "entityVectorRepository.GetVector").
			Str("entity", ref.String()).
			Msg("failed to decode stored vector")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return vector, nil
}

func (e *entityVectorRepository) SaveVector(ctx context.Context, ref models.EntityRef, vector models.VersionVector) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := buildUpsertVectorQuery(ref, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = e.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "entityVectorRepository.SaveVector").
			Str("entity", ref.String()).
			Msg("failed to upsert entity vector")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
