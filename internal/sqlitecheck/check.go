// Package sqlitecheck verifies that a provisioned reference file is a
// readable, structurally sound SQLite database.
package sqlitecheck

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/giantswarm/refsync/internal/sentinel"

	_ "modernc.org/sqlite"
)

// ErrCorrupt is returned when the file cannot be read as SQLite or fails
// PRAGMA quick_check.
const ErrCorrupt = sentinel.Error("reference database is corrupt")

// maxReportedProblems caps how many quick_check rows end up in the error.
const maxReportedProblems = 5

// QuickCheck opens path read-only and runs PRAGMA quick_check. It returns
// nil when SQLite reports "ok" and an error wrapping ErrCorrupt otherwise.
func QuickCheck(ctx context.Context, path string, log *slog.Logger) error {
	if path == "" {
		return errors.New("database path must not be empty")
	}
	if log == nil {
		log = slog.Default()
	}

	// Read-only with a short busy timeout: the file was just written under
	// the provisioning lock and nobody else should be writing to it.
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", path, err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Warn("quick check: close sqlite", "path", path, "error", closeErr)
		}
	}()
	db.SetMaxOpenConns(1)

	problems, err := quickCheck(ctx, db)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, path, err)
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrCorrupt, path, strings.Join(problems, "; "))
	}

	log.Debug("quick check passed", "path", path)
	return nil
}

// quickCheck returns the problem rows reported by quick_check, or nil when
// the only row is "ok".
func quickCheck(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, "PRAGMA quick_check")
	if err != nil {
		return nil, fmt.Errorf("run quick_check: %w", err)
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan quick_check row: %w", err)
		}
		if line == "ok" {
			continue
		}
		if len(problems) < maxReportedProblems {
			problems = append(problems, line)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quick_check rows: %w", err)
	}

	return problems, nil
}
