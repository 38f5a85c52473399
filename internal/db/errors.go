package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the gateway failure taxonomy. Services classify and
// normalize at their boundary; the CLI maps each class to its own surface.
var (
	// ErrUnavailable covers connectivity-class failures; every such error
	// is normalized to one canonical message.
	ErrUnavailable = errors.New("connection unavailable")

	// ErrSchemaDrift marks the distinguished "referenced column does not
	// exist" condition, surfaced as a pending-migration alert rather than
	// a generic failure.
	ErrSchemaDrift = errors.New("schema out of date: a migration is pending")

	// ErrNotFound marks a point read that matched no record.
	ErrNotFound = errors.New("record not found")
)

// Kind classifies a gateway error for propagation policy decisions.
type Kind int

const (
	KindGeneric Kind = iota
	KindUnavailable
	KindSchemaDrift
	KindNotFound
)

// Classify inspects an error returned by the persistence layer.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindGeneric
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrSchemaDrift):
		return KindSchemaDrift
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return KindNotFound
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "no such column"):
		return KindSchemaDrift
	case strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "unable to open database"),
		strings.Contains(msg, "disk I/O error"):
		return KindUnavailable
	}
	return KindGeneric
}

// Normalize rewraps a gateway error with the canonical sentinel for its
// class. Connectivity failures collapse to the single "connection
// unavailable" message; schema drift keeps its actionable alert; anything
// else passes through verbatim.
func Normalize(err error) error {
	if err == nil {
		return nil
	}
	switch Classify(err) {
	case KindUnavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	case KindSchemaDrift:
		return fmt.Errorf("%w: %v", ErrSchemaDrift, err)
	default:
		return err
	}
}
