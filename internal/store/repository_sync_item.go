// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

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

// syncItemRow is the flat database representation of a [models.SyncItem].
// Version vectors are stored as JSON text; the payload column is NULL for
// tombstone deletes.
type syncItemRow struct {
	ID            string
	EntityType    string
	EntityID      string
	Kind          string
	Payload       sql.NullString
	Priority      int
	CreatedAt     time.Time
	Vector        string
	Node          string
	Status        string
	RetryCount    int
	NextAttemptAt sql.NullTime
	UpdatedAt     time.Time
}

func itemToRow(item models.SyncItem) (syncItemRow, error) {
	vector, err := json.Marshal(item.Operation.Vector)
	if err != nil {
		return syncItemRow{}, fmt.Errorf("marshal vector: %w", err)
	}

	row := syncItemRow{
		ID:         item.ID,
		EntityType: string(item.Operation.Ref.Type),
		EntityID:   item.Operation.Ref.ID,
		Kind:       string(item.Operation.Kind),
		Priority:   int(item.Operation.Priority),
		CreatedAt:  item.Operation.CreatedAt,
		Vector:     string(vector),
		Node:       item.Operation.Node,
		Status:     string(item.Status),
		RetryCount: item.RetryCount,
		UpdatedAt:  item.UpdatedAt,
	}

	if len(item.Operation.Payload) > 0 {
		row.Payload = sql.NullString{String: string(item.Operation.Payload), Valid: true}
	}
	if !item.NextAttemptAt.IsZero() {
		row.NextAttemptAt = sql.NullTime{Time: item.NextAttemptAt, Valid: true}
	}

	return row, nil
}

func rowToItem(row syncItemRow) (models.SyncItem, error) {
	var vector models.VersionVector
	if row.Vector != "" {
		if err := json.Unmarshal([]byte(row.Vector), &vector); err != nil {
			return models.SyncItem{}, fmt.Errorf("unmarshal vector: %w", err)
		}
	}

	item := models.SyncItem{
		ID: row.ID,
		Operation: models.SyncOperation{
			Ref: models.EntityRef{
				Type: models.EntityType(row.EntityType),
				ID:   row.EntityID,
			},
			Kind:      models.OperationKind(row.Kind),
			Priority:  models.Priority(row.Priority),
			CreatedAt: row.CreatedAt,
			Vector:    vector,
			Node:      row.Node,
		},
		Status:     models.SyncStatus(row.Status),
		RetryCount: row.RetryCount,
		UpdatedAt:  row.UpdatedAt,
	}

	if row.Payload.Valid {
		item.Operation.Payload = json.RawMessage(row.Payload.String)
	}
	if row.NextAttemptAt.Valid {
		item.NextAttemptAt = row.NextAttemptAt.Time
	}

	return item, nil
}

type syncItemRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncItemRepository constructs a [SyncItemRepository] backed by the
// provided database connection and logger.
//
// The logger parameter is stored for fallback logging; most methods prefer
// the context-scoped logger obtained via [logger.FromContext].
func NewSyncItemRepository(db *DB, logger *logger.Logger) SyncItemRepository {
	return &syncItemRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncItemRepository) SaveItem(ctx context.Context, item models.SyncItem) error {
	log := logger.FromContext(ctx)

	row, err := itemToRow(item)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := buildInsertItemQuery(row)
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.SaveItem").
			Str("item_id", item.ID).
			Msg("failed to build insert query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.SaveItem").
			Str("item_id", item.ID).
			Str("entity", item.Operation.Ref.String()).
			Msg("failed to insert sync item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		return ErrItemNotSaved
	}

	return nil
}

func (s *syncItemRepository) GetItem(ctx context.Context, id string) (models.SyncItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectItemQuery(id)
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)
	item, err := scanSyncItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncItem{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.GetItem").
			Str("item_id", id).
			Msg("failed to scan sync item row")
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (s *syncItemRepository) GetPendingByRef(ctx context.Context, ref models.EntityRef) (models.SyncItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectPendingByRefQuery(ref)
	if err != nil {
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := s.DB.QueryRowContext(ctx, query, args...)
	item, err := scanSyncItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SyncItem{}, ErrItemNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.GetPendingByRef").
			Str("entity", ref.String()).
			Msg("failed to scan pending sync item row")
		return models.SyncItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

func (s *syncItemRepository) ListByStatus(ctx context.Context, statuses ...models.SyncStatus) ([]models.SyncItem, error) {
	query, args, err := buildSelectByStatusQuery(statuses)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryItems(ctx, "syncItemRepository.ListByStatus", query, args)
}

func (s *syncItemRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]models.SyncItem, error) {
	query, args, err := buildSelectDueQuery(now, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return s.queryItems(ctx, "syncItemRepository.ListDue", query, args)
}

func (s *syncItemRepository) UpdateItem(ctx context.Context, item models.SyncItem, from models.SyncStatus) error {
	log := logger.FromContext(ctx)

	row, err := itemToRow(item)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	query, args, err := buildUpdateItemQuery(row, string(from))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.UpdateItem").
			Str("item_id", item.ID).
			Str("status", string(item.Status)).
			Msg("failed to update sync item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected, raErr := result.RowsAffected(); raErr == nil && affected == 0 {
		return fmt.Errorf("%w: item %s is no longer %s", ErrItemStateChanged, item.ID, from)
	}

	return nil
}

func (s *syncItemRepository) DeleteItem(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteItemQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.DeleteItem").
			Str("item_id", id).
			Msg("failed to delete sync item")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *syncItemRepository) CountActive(ctx context.Context) (int, error) {
	query, args, err := buildCountActiveQuery()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int
	if err = s.DB.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (s *syncItemRepository) ResetInFlight(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildResetInFlightQuery(time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "syncItemRepository.ResetInFlight").
			Msg("failed to reset in-flight sync items")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}

func (s *syncItemRepository) queryItems(ctx context.Context, caller, query string, args []any) ([]models.SyncItem, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to execute sync item query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.SyncItem, 0, 16)

	for rows.Next() {
		item, scanErr := scanSyncItem(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", caller).
				Msg("failed to scan sync item row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", caller).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSyncItem(scanner rowScanner) (models.SyncItem, error) {
	var row syncItemRow

	err := scanner.Scan(
		&row.ID,
		&row.EntityType,
		&row.EntityID,
		&row.Kind,
		&row.Payload,
		&row.Priority,
		&row.CreatedAt,
		&row.Vector,
		&row.Node,
		&row.Status,
		&row.RetryCount,
		&row.NextAttemptAt,
		&row.UpdatedAt,
	)
	if err != nil {
		return models.SyncItem{}, err
	}

	return rowToItem(row)
}
