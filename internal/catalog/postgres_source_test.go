package catalog

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSourceRoundTrip(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := NewPostgresSource(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

	want, err := Embedded().Load(ctx)
	require.NoError(t, err)
	require.NoError(t, src.Seed(ctx, want))

	got, err := src.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Learn, got.Learn)
	assert.Equal(t, want.Trade.Label, got.Trade.Label)
	assert.NoError(t, src.Ping(ctx))
}

func TestPostgresSourceSeedsEmptyTable(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	src, err := NewPostgresSource(ctx, dsn)
	require.NoError(t, err)
	_, err = src.pool.Exec(ctx, `DELETE FROM call_topics`)
	require.NoError(t, err)
	src.Close()

	src, err = NewPostgresSource(ctx, dsn)
	require.NoError(t, err)
	defer src.Close()

	got, err := src.Load(ctx)
	require.NoError(t, err)
	want, err := Embedded().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want.Learn, got.Learn)
	assert.Equal(t, want.Trade.Label, got.Trade.Label)
}
