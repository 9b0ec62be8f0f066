// Package fallback wraps the remote API with a read fallback onto the local
// content snapshot. Reads never fail: when the remote call fails for any
// reason, the same filter is applied to the last snapshot instead (an absent
// snapshot reads as empty). Writes are never absorbed: a failed write is
// logged and returned as *WriteError, and the snapshot is left alone.
package fallback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/cyberfolio/internal/client"
	"github.com/pkordes/cyberfolio/internal/domain"
)

// Source says where a read's data came from.
type Source int

const (
	SourceRemote Source = iota
	SourceCache
)

func (s Source) String() string {
	if s == SourceCache {
		return "cache"
	}
	return "remote"
}

// SnapshotReader provides the last persisted content snapshot. The Store
// owns writing it; this package only reads.
type SnapshotReader interface {
	Snapshot(ctx context.Context) (domain.ContentSnapshot, bool, error)
}

// WriteError is a failed create, update or delete. Its message names the
// entity and operation; Unwrap exposes the underlying client error.
type WriteError struct {
	Entity string // "project" or "blog post"
	Op     string // "create", "update" or "delete"
	Err    error
}

// Error reports an outage unless the API answered, in which case its
// message (conflict, validation) is shown instead.
func (e *WriteError) Error() string {
	var apiErr *client.APIError
	if errors.As(e.Err, &apiErr) && apiErr.Status != 0 && apiErr.Message != "" {
		return fmt.Sprintf("unable to %s %s: %s", e.Op, e.Entity, apiErr.Message)
	}
	return fmt.Sprintf("unable to %s %s: API unavailable", e.Op, e.Entity)
}

func (e *WriteError) Unwrap() error { return e.Err }

// loader reads the snapshot, treating a missing or unreadable one as empty.
type loader struct {
	snap SnapshotReader
	log  *slog.Logger
}

func (l loader) load(ctx context.Context) domain.ContentSnapshot {
	if l.snap == nil {
		return domain.ContentSnapshot{}
	}
	s, ok, err := l.snap.Snapshot(ctx)
	if err != nil {
		l.log.WarnContext(ctx, "fallback snapshot unreadable", slog.String("error", err.Error()))
		return domain.ContentSnapshot{}
	}
	if !ok {
		return domain.ContentSnapshot{}
	}
	return s
}

func (l loader) warn(ctx context.Context, op string, err error) {
	l.log.WarnContext(ctx, "API unavailable, using cached data",
		slog.String("op", op), slog.String("error", err.Error()))
}

func (l loader) writeFailed(ctx context.Context, entity, op string, err error) error {
	l.log.ErrorContext(ctx, "write failed",
		slog.String("entity", entity), slog.String("op", op), slog.String("error", err.Error()))
	return &WriteError{Entity: entity, Op: op, Err: err}
}

func newLoader(snap SnapshotReader, log *slog.Logger) loader {
	if log == nil {
		log = slog.Default()
	}
	return loader{snap: snap, log: log}
}
