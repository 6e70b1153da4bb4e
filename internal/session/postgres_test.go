package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"materialmart/internal/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	data string
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.data
	return nil
}

func TestPostgresBackend(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("EnsureSchema", func(t *testing.T) {
		var gotSQL string
		b := NewPostgresBackend(&database.FakeDB{
			ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
				gotSQL = sql
				return pgconn.CommandTag{}, nil
			},
		})
		require.NoError(t, b.EnsureSchema(ctx))
		require.Contains(t, gotSQL, "CREATE TABLE IF NOT EXISTS user_sessions")
	})

	t.Run("Load", func(t *testing.T) {
		var gotArgs []any
		b := NewPostgresBackend(&database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return fakeRow{data: "payload"}
			},
		})
		b.now = func() time.Time { return now }
		data, found, err := b.Load(ctx, "sid")
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, "payload", data)
		require.Equal(t, []any{"sid", now}, gotArgs)
	})

	t.Run("Load missing and error", func(t *testing.T) {
		rowErr := pgx.ErrNoRows
		b := NewPostgresBackend(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row { return fakeRow{err: rowErr} },
		})
		_, found, err := b.Load(ctx, "sid")
		require.NoError(t, err)
		require.False(t, found)

		rowErr = errors.New("down")
		_, _, err = b.Load(ctx, "sid")
		require.ErrorContains(t, err, "down")
	})

	t.Run("Save upserts", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		b := NewPostgresBackend(&database.FakeDB{
			ExecFn: func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
				gotSQL, gotArgs = sql, args
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		})
		require.NoError(t, b.Save(ctx, "sid", "payload", now))
		require.Contains(t, gotSQL, "ON CONFLICT (sid)")
		require.Equal(t, []any{"sid", "payload", now}, gotArgs)
	})

	t.Run("Delete and Prune", func(t *testing.T) {
		var calls []string
		b := NewPostgresBackend(&database.FakeDB{
			ExecFn: func(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
				calls = append(calls, sql)
				return pgconn.NewCommandTag("DELETE 3"), nil
			},
		})
		require.NoError(t, b.Delete(ctx, "sid"))
		n, err := b.Prune(ctx, now)
		require.NoError(t, err)
		require.Equal(t, int64(3), n)
		require.Len(t, calls, 2)
		require.Contains(t, calls[1], "expire <= $1")
	})

	t.Run("exec errors", func(t *testing.T) {
		b := NewPostgresBackend(&database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("down")
			},
			PingFn: func(context.Context) error { return errors.New("down") },
		})
		require.Error(t, b.EnsureSchema(ctx))
		require.Error(t, b.Save(ctx, "sid", "x", now))
		require.Error(t, b.Delete(ctx, "sid"))
		_, err := b.Prune(ctx, now)
		require.Error(t, err)
		require.Error(t, b.Ping(ctx))
	})
}
