package store

import (
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-study-keeper/models"
)

// qb is the shared statement builder. SQLite uses ? placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var syncItemColumns = []string{
	"id",
	"entity_type",
	"entity_id",
	"kind",
	"payload",
	"priority",
	"created_at",
	"vector",
	"node",
	"status",
	"retry_count",
	"next_attempt_at",
	"updated_at",
}

var conflictColumns = []string{
	"item_id",
	"entity_type",
	"entity_id",
	"local_operation",
	"remote_snapshot",
	"detected_at",
	"resolution",
	"resolved_at",
}

// activeStatuses are the non-terminal queue statuses counted by CountActive.
var activeStatuses = []string{
	string(models.StatusPending),
	string(models.StatusInFlight),
	string(models.StatusFailed),
	string(models.StatusConflicted),
	string(models.StatusManualPending),
}

func buildInsertItemQuery(row syncItemRow) (string, []any, error) {
	return qb.Insert("sync_items").
		Columns(syncItemColumns...).
		Values(
			row.ID,
			row.EntityType,
			row.EntityID,
			row.Kind,
			row.Payload,
			row.Priority,
			row.CreatedAt,
			row.Vector,
			row.Node,
			row.Status,
			row.RetryCount,
			row.NextAttemptAt,
			row.UpdatedAt,
		).
		ToSql()
}

func buildSelectItemQuery(id string) (string, []any, error) {
	return qb.Select(syncItemColumns...).
		From("sync_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildSelectPendingByRefQuery(ref models.EntityRef) (string, []any, error) {
	return qb.Select(syncItemColumns...).
		From("sync_items").
		Where(squirrel.Eq{
			"entity_type": string(ref.Type),
			"entity_id":   ref.ID,
			"status":      string(models.StatusPending),
		}).
		ToSql()
}

func buildSelectByStatusQuery(statuses []models.SyncStatus) (string, []any, error) {
	raw := make([]string, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, string(s))
	}

	return qb.Select(syncItemColumns...).
		From("sync_items").
		Where(squirrel.Eq{"status": raw}).
		OrderBy("priority DESC", "created_at ASC").
		ToSql()
}

func buildSelectDueQuery(now time.Time, limit int) (string, []any, error) {
	query := qb.Select(syncItemColumns...).
		From("sync_items").
		Where(squirrel.Eq{"status": string(models.StatusPending)}).
		Where(squirrel.Or{
			squirrel.Eq{"next_attempt_at": nil},
			squirrel.LtOrEq{"next_attempt_at": now},
		}).
		OrderBy("priority DESC", "created_at ASC")

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return query.ToSql()
}

// buildUpdateItemQuery guards the write on the status the caller read the
// item in, so a row advanced by a concurrent actor is left untouched.
func buildUpdateItemQuery(row syncItemRow, from string) (string, []any, error) {
	return qb.Update("sync_items").
		Set("kind", row.Kind).
		Set("payload", row.Payload).
		Set("priority", row.Priority).
		Set("created_at", row.CreatedAt).
		Set("vector", row.Vector).
		Set("node", row.Node).
		Set("status", row.Status).
		Set("retry_count", row.RetryCount).
		Set("next_attempt_at", row.NextAttemptAt).
		Set("updated_at", row.UpdatedAt).
		Where(squirrel.Eq{"id": row.ID, "status": from}).
		ToSql()
}

func buildDeleteItemQuery(id string) (string, []any, error) {
	return qb.Delete("sync_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildCountActiveQuery() (string, []any, error) {
	return qb.Select("COUNT(*)").
		From("sync_items").
		Where(squirrel.Eq{"status": activeStatuses}).
		ToSql()
}

func buildResetInFlightQuery(now time.Time) (string, []any, error) {
	return qb.Update("sync_items").
		Set("status", string(models.StatusPending)).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": string(models.StatusInFlight)}).
		ToSql()
}

func buildSelectVectorQuery(ref models.EntityRef) (string, []any, error) {
	return qb.Select("vector").
		From("entity_vectors").
		Where(squirrel.Eq{
			"entity_type": string(ref.Type),
			"entity_id":   ref.ID,
		}).
		ToSql()
}

func buildUpsertVectorQuery(ref models.EntityRef, vector string, now time.Time) (string, []any, error) {
	return qb.Insert("entity_vectors").
		Columns("entity_type", "entity_id", "vector", "updated_at").
		Values(string(ref.Type), ref.ID, vector, now).
		Suffix(`ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			vector = excluded.vector,
			updated_at = excluded.updated_at`).
		ToSql()
}

func buildInsertConflictQuery(row conflictRow) (string, []any, error) {
	return qb.Insert("conflict_records").
		Columns(conflictColumns...).
		Values(
			row.ItemID,
			row.EntityType,
			row.EntityID,
			row.LocalOperation,
			row.RemoteSnapshot,
			row.DetectedAt,
			row.Resolution,
			row.ResolvedAt,
		).
		Suffix(`ON CONFLICT (item_id) DO UPDATE SET
			local_operation = excluded.local_operation,
			remote_snapshot = excluded.remote_snapshot,
			detected_at = excluded.detected_at,
			resolution = excluded.resolution,
			resolved_at = excluded.resolved_at`).
		ToSql()
}

func buildSelectConflictQuery(itemID string) (string, []any, error) {
	return qb.Select(conflictColumns...).
		From("conflict_records").
		Where(squirrel.Eq{"item_id": itemID}).
		ToSql()
}

func buildListOpenConflictsQuery() (string, []any, error) {
	return qb.Select(conflictColumns...).
		From("conflict_records").
		Where(squirrel.Eq{"resolved_at": nil}).
		OrderBy("detected_at ASC").
		ToSql()
}

func buildResolveConflictQuery(itemID string, resolution string, now time.Time) (string, []any, error) {
	return qb.Update("conflict_records").
		Set("resolution", resolution).
		Set("resolved_at", now).
		Where(squirrel.Eq{"item_id": itemID, "resolved_at": nil}).
		ToSql()
}

func buildCountOpenConflictsQuery() (string, []any, error) {
	return qb.Select("COUNT(*)").
		From("conflict_records").
		Where(squirrel.Eq{"resolved_at": nil}).
		ToSql()
}
