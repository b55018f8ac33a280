package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrItemNotSaved is returned when an INSERT of a queue item completes
	// without error but the number of affected rows is zero, indicating
	// that nothing was actually persisted.
	ErrItemNotSaved = errors.New("sync item was not saved")

	// ErrItemNotFound is returned when a query or update targets a queue
	// item that does not exist in the database.
	ErrItemNotFound = errors.New("sync item was not found")

	// ErrItemStateChanged is returned when a guarded update finds no row
	// holding both the item id and the expected status: the item was
	// mutated (or removed) by a concurrent actor after it was read.
	ErrItemStateChanged = errors.New("sync item state changed concurrently")

	// ErrVectorNotFound is returned when no version vector has been stored
	// for the requested entity yet. Callers usually treat this as an empty
	// vector.
	ErrVectorNotFound = errors.New("entity vector was not found")

	// ErrConflictNotFound is returned when a lookup or resolve targets a
	// conflict record that does not exist or is already resolved.
	ErrConflictNotFound = errors.New("conflict record was not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
