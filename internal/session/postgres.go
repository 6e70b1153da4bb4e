package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"materialmart/internal/database"

	"github.com/jackc/pgx/v5"
)

// schema 與 migration 000003 相同；啟動時再確認一次，session 表可獨立於 migration 使用
const schema = `CREATE TABLE IF NOT EXISTS user_sessions (
	sid    TEXT PRIMARY KEY,
	sess   TEXT NOT NULL,
	expire TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_user_sessions_expire ON user_sessions (expire)`

// PostgresBackend 將 session 存於 user_sessions 資料表
type PostgresBackend struct {
	db  database.DB
	now func() time.Time
}

func NewPostgresBackend(db database.DB) *PostgresBackend {
	return &PostgresBackend{db: db, now: time.Now}
}

// EnsureSchema 建立 user_sessions（若不存在）
func (b *PostgresBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("EnsureSchema: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Load(ctx context.Context, id string) (string, bool, error) {
	var data string
	err := b.db.QueryRow(ctx,
		`SELECT sess FROM user_sessions WHERE sid = $1 AND expire > $2`,
		id, b.now(),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Load session: %w", err)
	}
	return data, true, nil
}

func (b *PostgresBackend) Save(ctx context.Context, id, data string, expiresAt time.Time) error {
	_, err := b.db.Exec(ctx,
		`INSERT INTO user_sessions (sid, sess, expire) VALUES ($1, $2, $3)
		 ON CONFLICT (sid) DO UPDATE SET sess = EXCLUDED.sess, expire = EXCLUDED.expire`,
		id, data, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("Save session: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Delete(ctx context.Context, id string) error {
	if _, err := b.db.Exec(ctx, `DELETE FROM user_sessions WHERE sid = $1`, id); err != nil {
		return fmt.Errorf("Delete session: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Ping(ctx context.Context) error {
	return b.db.Ping(ctx)
}

func (b *PostgresBackend) Prune(ctx context.Context, now time.Time) (int64, error) {
	tag, err := b.db.Exec(ctx, `DELETE FROM user_sessions WHERE expire <= $1`, now)
	if err != nil {
		return 0, fmt.Errorf("Prune sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
