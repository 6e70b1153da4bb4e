package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"materialmart/internal/apperr"
	"materialmart/internal/database"
	"materialmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

/* ---------- 假實作 ---------- */

// fakeUserRow 對應 userColumns 的 8 個欄位
type fakeUserRow struct {
	scanErr error
	user    *model.User
}

func (r *fakeUserRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	if len(dest) != 8 {
		panic("fakeUserRow.Scan: unexpected dest count")
	}
	u := r.user
	*dest[0].(*string) = u.ID
	*dest[1].(*string) = u.Username
	*dest[2].(*string) = u.Email
	*dest[3].(*string) = u.Password
	*dest[4].(*string) = u.Name
	*dest[5].(**string) = u.Phone
	*dest[6].(**string) = u.Location
	*dest[7].(*time.Time) = u.CreatedAt
	return nil
}

// fakeMaterialRow 支援兩種 Scan：
// 1) len(dest)==14 → materialColumns
// 2) len(dest)==1  → CreateMaterial 的 RETURNING price::text
type fakeMaterialRow struct {
	scanErr  error
	material *model.Material
}

func (r *fakeMaterialRow) Scan(dest ...any) error {
	if r.scanErr != nil {
		return r.scanErr
	}
	m := r.material
	switch len(dest) {
	case 14:
		*dest[0].(*string) = m.ID
		*dest[1].(*string) = m.Title
		*dest[2].(*string) = m.Description
		*dest[3].(*string) = m.Category
		*dest[4].(*string) = m.Condition
		*dest[5].(*string) = m.Quantity
		*dest[6].(*string) = m.Unit
		*dest[7].(**string) = m.Price
		*dest[8].(*string) = m.Location
		*dest[9].(*string) = m.ContactPreference
		*dest[10].(*[]string) = m.Images
		*dest[11].(*string) = m.SellerID
		*dest[12].(*bool) = m.IsAvailable
		*dest[13].(*time.Time) = m.CreatedAt
	case 1:
		*dest[0].(**string) = m.Price
	default:
		panic("fakeMaterialRow.Scan: unexpected dest count")
	}
	return nil
}

// fakeMaterialRows 依序吐出 materials
type fakeMaterialRows struct {
	materials []model.Material
	idx       int
	err       error
	closed    bool
}

func (r *fakeMaterialRows) Close()                                       { r.closed = true }
func (r *fakeMaterialRows) Err() error                                   { return r.err }
func (r *fakeMaterialRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeMaterialRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeMaterialRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeMaterialRows) RawValues() [][]byte                          { return nil }
func (r *fakeMaterialRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeMaterialRows) Next() bool {
	if r.idx >= len(r.materials) {
		return false
	}
	r.idx++
	return true
}

func (r *fakeMaterialRows) Scan(dest ...any) error {
	m := r.materials[r.idx-1]
	return (&fakeMaterialRow{material: &m}).Scan(dest...)
}

/* ---------- 完整測試 ---------- */

func TestPostgresStoreUsers(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))
	sample := &model.User{
		ID:        "u1",
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "hash",
		Name:      "Alice",
		Phone:     strPtr("0912"),
		CreatedAt: now,
	}

	t.Run("GetUser success", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(_ context.Context, sql string, args ...any) pgx.Row {
				gotSQL, gotArgs = sql, args
				return &fakeUserRow{user: sample}
			},
		})
		u, err := s.GetUser(ctx, "u1")
		require.NoError(t, err)
		require.Equal(t, "alice", u.Username)
		require.Equal(t, "0912", *u.Phone)
		require.Equal(t, time.UTC, u.CreatedAt.Location())
		require.True(t, now.Equal(u.CreatedAt))
		require.Contains(t, gotSQL, "WHERE id = $1")
		require.Equal(t, []any{"u1"}, gotArgs)
	})

	t.Run("lookups return nil when no rows", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: pgx.ErrNoRows}
			},
		})
		u, err := s.GetUser(ctx, "x")
		require.NoError(t, err)
		require.Nil(t, u)
		u, err = s.GetUserByEmail(ctx, "x@example.com")
		require.NoError(t, err)
		require.Nil(t, u)
		u, err = s.GetUserByUsername(ctx, "x")
		require.NoError(t, err)
		require.Nil(t, u)
	})

	t.Run("lookup db error", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeUserRow{scanErr: errors.New("conn reset")}
			},
		})
		_, err := s.GetUserByEmail(ctx, "x@example.com")
		require.ErrorContains(t, err, "GetUserByEmail")
	})

	t.Run("CreateUser success", func(t *testing.T) {
		var gotArgs []any
		s := NewPostgresStore(&database.FakeDB{
			ExecFn: func(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
				gotArgs = args
				return pgconn.NewCommandTag("INSERT 0 1"), nil
			},
		})
		s.newID = func() string { return "fixed" }
		s.now = func() time.Time { return now }

		u, err := s.CreateUser(ctx, model.NewUser{Username: "bob", Email: "bob@example.com", Password: "h", Name: "Bob"})
		require.NoError(t, err)
		require.Equal(t, "fixed", u.ID)
		require.Len(t, gotArgs, 8)
		require.Equal(t, "fixed", gotArgs[0])
		require.Equal(t, "bob@example.com", gotArgs[2])
	})

	t.Run("CreateUser unique violations", func(t *testing.T) {
		cases := map[string]string{
			"users_email_key":    "User already exists",
			"users_username_key": "Username already taken",
		}
		for constraint, msg := range cases {
			s := NewPostgresStore(&database.FakeDB{
				ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
					return pgconn.CommandTag{}, &pgconn.PgError{Code: "23505", ConstraintName: constraint}
				},
			})
			_, err := s.CreateUser(ctx, model.NewUser{Username: "bob", Email: "bob@example.com"})
			require.True(t, errors.Is(err, apperr.ErrConflict))
			require.ErrorContains(t, err, msg)
		}
	})

	t.Run("CreateUser other error", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.CommandTag{}, errors.New("boom")
			},
		})
		_, err := s.CreateUser(ctx, model.NewUser{})
		require.Error(t, err)
		require.False(t, errors.Is(err, apperr.ErrConflict))
	})
}

func TestPostgresStoreMaterials(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	sample := model.Material{
		ID:                "m1",
		Title:             "Bricks",
		Description:       "Red",
		Category:          "Bricks",
		Condition:         "used",
		Quantity:          "10",
		Unit:              "pcs",
		Price:             strPtr("5.00"),
		Location:          "Taipei",
		ContactPreference: "email",
		SellerID:          "u1",
		IsAvailable:       true,
		CreatedAt:         now,
	}

	t.Run("GetMaterial normalizes images", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeMaterialRow{material: &sample}
			},
		})
		m, err := s.GetMaterial(ctx, "m1")
		require.NoError(t, err)
		require.Equal(t, "5.00", *m.Price)
		require.NotNil(t, m.Images)
		require.Empty(t, m.Images)
	})

	t.Run("GetMaterial not found", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeMaterialRow{scanErr: pgx.ErrNoRows}
			},
		})
		m, err := s.GetMaterial(ctx, "nope")
		require.NoError(t, err)
		require.Nil(t, m)
	})

	t.Run("GetMaterials", func(t *testing.T) {
		rows := &fakeMaterialRows{materials: []model.Material{sample, sample}}
		var gotSQL string
		s := NewPostgresStore(&database.FakeDB{
			QueryFn: func(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
				gotSQL = sql
				return rows, nil
			},
		})
		list, err := s.GetMaterials(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.True(t, rows.closed)
		require.Contains(t, gotSQL, "WHERE is_available")
		require.True(t, strings.HasSuffix(gotSQL, newestFirst))
	})

	t.Run("GetMaterials empty is not nil", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeMaterialRows{}, nil
			},
		})
		list, err := s.GetMaterials(ctx)
		require.NoError(t, err)
		require.NotNil(t, list)
		require.Empty(t, list)
	})

	t.Run("query and rows errors", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return nil, errors.New("down")
			},
		})
		_, err := s.GetMaterialsBySeller(ctx, "u1")
		require.ErrorContains(t, err, "GetMaterialsBySeller")

		s = NewPostgresStore(&database.FakeDB{
			QueryFn: func(context.Context, string, ...any) (pgx.Rows, error) {
				return &fakeMaterialRows{err: errors.New("broken")}, nil
			},
		})
		_, err = s.GetMaterials(ctx)
		require.ErrorContains(t, err, "broken")
	})

	t.Run("SearchMaterials builds placeholders", func(t *testing.T) {
		var gotSQL string
		var gotArgs []any
		s := NewPostgresStore(&database.FakeDB{
			QueryFn: func(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
				gotSQL, gotArgs = sql, args
				return &fakeMaterialRows{}, nil
			},
		})

		_, err := s.SearchMaterials(ctx, model.MaterialFilter{Query: "brick", Condition: "used"})
		require.NoError(t, err)
		require.Equal(t, []any{"brick", "used"}, gotArgs)
		require.Contains(t, gotSQL, "strpos(lower(title), lower($1))")
		require.Contains(t, gotSQL, "lower(condition) = lower($2)")
		require.NotContains(t, gotSQL, "LIKE")

		_, err = s.SearchMaterials(ctx, model.MaterialFilter{})
		require.NoError(t, err)
		require.Empty(t, gotArgs)
		require.Contains(t, gotSQL, "WHERE is_available ORDER BY")
	})

	t.Run("CreateMaterial", func(t *testing.T) {
		var gotArgs []any
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeMaterialRow{material: &model.Material{Price: strPtr("5.00")}}
			},
		})
		s.newID = func() string { return "m9" }
		s.now = func() time.Time { return now }

		nm := model.NewMaterial{Title: "Bricks", Price: strPtr(" 5 ")}
		m, err := s.CreateMaterial(ctx, nm, "u1")
		require.NoError(t, err)
		require.Equal(t, "m9", m.ID)
		require.Equal(t, "u1", m.SellerID)
		require.True(t, m.IsAvailable)
		require.Equal(t, "5.00", *m.Price)
		require.NotNil(t, m.Images)
		require.Len(t, gotArgs, 14)
		require.Equal(t, "5.00", *gotArgs[7].(*string))
		require.Equal(t, true, gotArgs[12])
	})

	t.Run("CreateMaterial unknown seller", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeMaterialRow{scanErr: &pgconn.PgError{Code: "23503", ConstraintName: "materials_seller_id_fkey"}}
			},
		})
		_, err := s.CreateMaterial(ctx, model.NewMaterial{Title: "Bricks"}, "ghost")
		require.ErrorIs(t, err, ErrSellerNotFound)
		require.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("UpdateMaterial", func(t *testing.T) {
		var gotArgs []any
		updated := sample
		updated.Price = nil
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeMaterialRow{material: &updated}
			},
		})
		m, err := s.UpdateMaterial(ctx, "m1", model.MaterialPatch{Price: strPtr(""), IsAvailable: boolPtr(false)})
		require.NoError(t, err)
		require.Nil(t, m.Price)
		require.Len(t, gotArgs, 13)
		require.Equal(t, "m1", gotArgs[0])
		require.Equal(t, true, gotArgs[7])
		require.Nil(t, gotArgs[8])
		require.Nil(t, gotArgs[11])
	})

	t.Run("UpdateMaterial leaves price alone", func(t *testing.T) {
		var gotArgs []any
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(_ context.Context, _ string, args ...any) pgx.Row {
				gotArgs = args
				return &fakeMaterialRow{material: &sample}
			},
		})
		_, err := s.UpdateMaterial(ctx, "m1", model.MaterialPatch{Title: strPtr("New")})
		require.NoError(t, err)
		require.Equal(t, false, gotArgs[7])
	})

	t.Run("UpdateMaterial not found", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			QueryRowFn: func(context.Context, string, ...any) pgx.Row {
				return &fakeMaterialRow{scanErr: pgx.ErrNoRows}
			},
		})
		m, err := s.UpdateMaterial(ctx, "nope", model.MaterialPatch{})
		require.NoError(t, err)
		require.Nil(t, m)
	})

	t.Run("DeleteMaterial", func(t *testing.T) {
		tag := "DELETE 1"
		s := NewPostgresStore(&database.FakeDB{
			ExecFn: func(context.Context, string, ...any) (pgconn.CommandTag, error) {
				return pgconn.NewCommandTag(tag), nil
			},
		})
		ok, err := s.DeleteMaterial(ctx, "m1")
		require.NoError(t, err)
		require.True(t, ok)

		tag = "DELETE 0"
		ok, err = s.DeleteMaterial(ctx, "m1")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("Ping", func(t *testing.T) {
		s := NewPostgresStore(&database.FakeDB{
			PingFn: func(context.Context) error { return errors.New("down") },
		})
		require.Error(t, s.Ping(ctx))
	})
}
