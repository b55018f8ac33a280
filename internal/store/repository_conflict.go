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

// conflictRow is the flat database representation of a
// [models.ConflictRecord]. The local operation, remote snapshot, and
// resolution are stored as JSON text; resolution and resolved_at stay NULL
// while the record is open.
type conflictRow struct {
	ItemID         string
	EntityType     string
	EntityID       string
	LocalOperation string
	RemoteSnapshot string
	DetectedAt     time.Time
	Resolution     sql.NullString
	ResolvedAt     sql.NullTime
}

func conflictToRow(rec models.ConflictRecord) (conflictRow, error) {
	local, err := json.Marshal(rec.Local)
	if err != nil {
		return conflictRow{}, fmt.Errorf("marshal local operation: %w", err)
	}
	remote, err := json.Marshal(rec.Remote)
	if err != nil {
		return conflictRow{}, fmt.Errorf("marshal remote snapshot: %w", err)
	}

	return conflictRow{
		ItemID:         rec.ItemID,
		EntityType:     string(rec.Ref.Type),
		EntityID:       rec.Ref.ID,
		LocalOperation: string(local),
		RemoteSnapshot: string(remote),
		DetectedAt:     rec.DetectedAt,
	}, nil
}

func rowToConflict(row conflictRow) (models.ConflictRecord, error) {
	rec := models.ConflictRecord{
		ItemID: row.ItemID,
		Ref: models.EntityRef{
			Type: models.EntityType(row.EntityType),
			ID:   row.EntityID,
		},
		DetectedAt: row.DetectedAt,
		Resolution: models.Resolution{Kind: models.ResolutionManualPending},
	}

	if err := json.Unmarshal([]byte(row.LocalOperation), &rec.Local); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("unmarshal local operation: %w", err)
	}
	if err := json.Unmarshal([]byte(row.RemoteSnapshot), &rec.Remote); err != nil {
		return models.ConflictRecord{}, fmt.Errorf("unmarshal remote snapshot: %w", err)
	}
	if row.Resolution.Valid {
		if err := json.Unmarshal([]byte(row.Resolution.String), &rec.Resolution); err != nil {
			return models.ConflictRecord{}, fmt.Errorf("unmarshal resolution: %w", err)
		}
	}

	return rec, nil
}

type conflictRepository struct {
	*DB
	logger *logger.Logger
}

// NewConflictRepository constructs a [ConflictRepository] backed by the
// provided database connection and logger.
func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *conflictRepository) SaveConflict(ctx context.Context, rec models.ConflictRecord) error {
	log := logger.FromContext(ctx)

	row, err := conflictToRow(rec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := buildInsertConflictQuery(row)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.SaveConflict").
			Str("item_id", rec.ItemID).
			Str("entity", rec.Ref.String()).
			Msg("failed to insert conflict record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *conflictRepository) GetConflict(ctx context.Context, itemID string) (models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectConflictQuery(itemID)
	if err != nil {
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := c.DB.QueryRowContext(ctx, query, args...)
	rec, err := scanConflict(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ConflictRecord{}, ErrConflictNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.GetConflict").
			Str("item_id", itemID).
			Msg("failed to scan conflict row")
		return models.ConflictRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

func (c *conflictRepository) ListOpen(ctx context.Context) ([]models.ConflictRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOpenConflictsQuery()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.ListOpen").
			Msg("failed to execute open conflicts query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ConflictRecord, 0, 8)

	for rows.Next() {
		rec, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "conflictRepository.ListOpen").
				Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "conflictRepository.ListOpen").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

func (c *conflictRepository) Resolve(ctx context.Context, itemID string, resolution models.Resolution) error {
	log := logger.FromContext(ctx)

	raw, err := json.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := buildResolveConflictQuery(itemID, string(raw), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := c.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Resolve").
			Str("item_id", itemID).
			Str("resolution", string(resolution.Kind)).
			Msg("failed to resolve conflict record")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		return ErrConflictNotFound
	}

	return nil
}

func (c *conflictRepository) CountOpen(ctx context.Context) (int, error) {
	query, args, err := buildCountOpenConflictsQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = c.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func scanConflict(scanner rowScanner) (models.ConflictRecord, error) {
	var row conflictRow

	err := scanner.Scan(
		&row.ItemID,
		&row.EntityType,
		&row.EntityID,
		&row.LocalOperation,
		&row.RemoteSnapshot,
		&row.DetectedAt,
		&row.Resolution,
		&row.ResolvedAt,
	)
	if err != nil {
		return models.ConflictRecord{}, err
	}

	return rowToConflict(row)
}
