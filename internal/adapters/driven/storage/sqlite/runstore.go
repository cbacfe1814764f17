package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driven"
)

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

const runColumns = `id, source_path, destination_path, dry_run, started_at, finished_at,
	success, stage, reference_count, updated_count, unmatched_count, malformed_count,
	errors, notes, changes`

// Save stores a completed run. Saving an existing ID replaces it.
func (s *runStore) Save(ctx context.Context, run domain.RelinkRun) error {
	if run.ID == "" {
		return fmt.Errorf("%w: run id is required", domain.ErrInvalidInput)
	}

	errorsJSON, err := marshalList(run.Outcome.Errors)
	if err != nil {
		return fmt.Errorf("marshalling errors: %w", err)
	}
	notesJSON, err := marshalList(run.Outcome.Notes)
	if err != nil {
		return fmt.Errorf("marshalling notes: %w", err)
	}
	changesJSON, err := marshalList(run.Outcome.Changes)
	if err != nil {
		return fmt.Errorf("marshalling changes: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO relink_runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.SourcePath, run.DestinationPath, run.DryRun,
		run.StartedAt.UTC(), run.FinishedAt.UTC(),
		run.Outcome.Success, string(run.Outcome.Stage),
		run.Outcome.ReferenceCount, run.Outcome.UpdatedCount,
		run.Outcome.UnmatchedCount, run.Outcome.MalformedCount,
		errorsJSON, notesJSON, changesJSON)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID.
func (s *runStore) Get(ctx context.Context, id string) (*domain.RelinkRun, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM relink_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs first.
func (s *runStore) List(ctx context.Context, limit int) ([]domain.RelinkRun, error) {
	query := `SELECT ` + runColumns + ` FROM relink_runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RelinkRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.RelinkRun, error) {
	var run domain.RelinkRun
	var stage, errorsJSON, notesJSON, changesJSON string
	var startedAt, finishedAt sql.NullTime

	err := row.Scan(&run.ID, &run.SourcePath, &run.DestinationPath, &run.DryRun,
		&startedAt, &finishedAt,
		&run.Outcome.Success, &stage,
		&run.Outcome.ReferenceCount, &run.Outcome.UpdatedCount,
		&run.Outcome.UnmatchedCount, &run.Outcome.MalformedCount,
		&errorsJSON, &notesJSON, &changesJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.Outcome.Stage = domain.Stage(stage)
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}

	if err := unmarshalList(errorsJSON, &run.Outcome.Errors); err != nil {
		return nil, fmt.Errorf("unmarshalling errors: %w", err)
	}
	if err := unmarshalList(notesJSON, &run.Outcome.Notes); err != nil {
		return nil, fmt.Errorf("unmarshalling notes: %w", err)
	}
	if err := unmarshalList(changesJSON, &run.Outcome.Changes); err != nil {
		return nil, fmt.Errorf("unmarshalling changes: %w", err)
	}

	return &run, nil
}

func marshalList[T any](list []T) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalList[T any](data string, out *[]T) error {
	data = strings.TrimSpace(data)
	if data == "" || data == "[]" || data == "null" {
		return nil
	}
	return json.Unmarshal([]byte(data), out)
}
