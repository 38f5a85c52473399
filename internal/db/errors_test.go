package db

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, KindGeneric, Classify(nil))
	assert.Equal(t, KindGeneric, Classify(errors.New("constraint failed")))

	assert.Equal(t, KindSchemaDrift, Classify(errors.New("no such column: transfer_id")))
	assert.Equal(t, KindUnavailable, Classify(errors.New("database is locked")))
	assert.Equal(t, KindUnavailable, Classify(errors.New("unable to open database file")))
	assert.Equal(t, KindUnavailable, Classify(errors.New("disk I/O error")))

	assert.Equal(t, KindNotFound, Classify(sql.ErrNoRows))
	assert.Equal(t, KindNotFound, Classify(fmt.Errorf("loading step: %w", ErrNotFound)))
}

func TestClassify_SentinelsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", ErrUnavailable))
	assert.Equal(t, KindUnavailable, Classify(wrapped))

	wrapped = fmt.Errorf("outer: %w", ErrSchemaDrift)
	assert.Equal(t, KindSchemaDrift, Classify(wrapped))
}

func TestNormalize_CollapsesConnectivityErrors(t *testing.T) {
	// Distinct driver messages normalize to the one canonical sentinel.
	a := Normalize(errors.New("database is locked"))
	b := Normalize(errors.New("disk I/O error"))
	require.Error(t, a)
	require.Error(t, b)
	assert.True(t, errors.Is(a, ErrUnavailable))
	assert.True(t, errors.Is(b, ErrUnavailable))
}

func TestNormalize_SchemaDriftKeepsDistinguishedSentinel(t *testing.T) {
	err := Normalize(errors.New("no such column: payment_method"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaDrift))
	assert.False(t, errors.Is(err, ErrUnavailable))
}

func TestNormalize_PassThrough(t *testing.T) {
	assert.NoError(t, Normalize(nil))

	plain := errors.New("UNIQUE constraint failed: steps.id")
	assert.Equal(t, plain, Normalize(plain))

	notFound := fmt.Errorf("project: %w", ErrNotFound)
	assert.Equal(t, notFound, Normalize(notFound))
}
