package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"materialmart/internal/apperr"
	"materialmart/internal/database"
	"materialmart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

const userColumns = `id, username, email, password, name, phone, location, created_at`

// price 以 text 讀出，保留 NUMERIC(10,2) 的十進位表示
const materialColumns = `id, title, description, category, condition, quantity, unit,
       price::text, location, contact_preference, images, seller_id, is_available, created_at`

// newestFirst 與 sortNewestFirst 相同；id 以 "C" collation 比較位元組順序
const newestFirst = ` ORDER BY created_at DESC, id COLLATE "C" ASC`

// PostgresStore 透過 database.DB 存取 users / materials 資料表
type PostgresStore struct {
	db    database.DB
	now   clock
	newID func() string
}

func NewPostgresStore(db database.DB) *PostgresStore {
	return &PostgresStore{db: db, now: defaultNow, newID: defaultNewID}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if err != nil {
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := s.queryUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("GetUserByUsername: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) queryUser(ctx context.Context, sql string, arg any) (*model.User, error) {
	u := &model.User{}
	err := s.db.QueryRow(ctx, sql, arg).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.Name,
		&u.Phone,
		&u.Location,
		&u.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

// CreateUser 將唯一性衝突（23505）轉為 ErrConflict，先查後建的競態也回傳 Conflict
func (s *PostgresStore) CreateUser(ctx context.Context, nu model.NewUser) (*model.User, error) {
	u := &model.User{
		ID:        s.newID(),
		Username:  nu.Username,
		Email:     nu.Email,
		Password:  nu.Password,
		Name:      nu.Name,
		Phone:     nu.Phone,
		Location:  nu.Location,
		CreatedAt: s.now(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password, name, phone, location, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID,
		u.Username,
		u.Email,
		u.Password,
		u.Name,
		u.Phone,
		u.Location,
		u.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			msg := "User already exists"
			if strings.Contains(pgErr.ConstraintName, "username") {
				msg = "Username already taken"
			}
			return nil, fmt.Errorf("CreateUser: %w", apperr.Conflict(msg))
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) GetMaterial(ctx context.Context, id string) (*model.Material, error) {
	m := &model.Material{}
	err := scanMaterial(s.db.QueryRow(ctx, `SELECT `+materialColumns+` FROM materials WHERE id = $1`, id), m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetMaterial: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) GetMaterials(ctx context.Context) ([]model.Material, error) {
	list, err := s.queryMaterials(ctx, `SELECT `+materialColumns+` FROM materials WHERE is_available`+newestFirst)
	if err != nil {
		return nil, fmt.Errorf("GetMaterials: %w", err)
	}
	return list, nil
}

// SearchMaterials 依非空的條件組出 WHERE；以 strpos 比對子字串，與 strings.Contains 相同，不解讀 LIKE 萬用字元
func (s *PostgresStore) SearchMaterials(ctx context.Context, f model.MaterialFilter) ([]model.Material, error) {
	where := []string{"is_available"}
	var args []any
	arg := func(v string) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Query != "" {
		p := arg(f.Query)
		where = append(where, fmt.Sprintf("(strpos(lower(title), lower(%s)) > 0 OR strpos(lower(description), lower(%s)) > 0)", p, p))
	}
	if f.Category != "" {
		where = append(where, fmt.Sprintf("lower(category) = lower(%s)", arg(f.Category)))
	}
	if f.Location != "" {
		where = append(where, fmt.Sprintf("strpos(lower(location), lower(%s)) > 0", arg(f.Location)))
	}
	if f.Condition != "" {
		where = append(where, fmt.Sprintf("lower(condition) = lower(%s)", arg(f.Condition)))
	}

	sql := `SELECT ` + materialColumns + ` FROM materials WHERE ` + strings.Join(where, " AND ") + newestFirst
	list, err := s.queryMaterials(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchMaterials: %w", err)
	}
	return list, nil
}

func (s *PostgresStore) GetMaterialsBySeller(ctx context.Context, sellerID string) ([]model.Material, error) {
	list, err := s.queryMaterials(ctx, `SELECT `+materialColumns+` FROM materials WHERE seller_id = $1`+newestFirst, sellerID)
	if err != nil {
		return nil, fmt.Errorf("GetMaterialsBySeller: %w", err)
	}
	return list, nil
}

func (s *PostgresStore) CreateMaterial(ctx context.Context, nm model.NewMaterial, sellerID string) (*model.Material, error) {
	images := append([]string{}, nm.Images...)
	m := &model.Material{
		ID:                s.newID(),
		Title:             nm.Title,
		Description:       nm.Description,
		Category:          nm.Category,
		Condition:         nm.Condition,
		Quantity:          nm.Quantity,
		Unit:              nm.Unit,
		Price:             model.NormalizePrice(nm.Price),
		Location:          nm.Location,
		ContactPreference: nm.ContactPreference,
		Images:            images,
		SellerID:          sellerID,
		IsAvailable:       true,
		CreatedAt:         s.now(),
	}
	row := s.db.QueryRow(ctx,
		`INSERT INTO materials (id, title, description, category, condition, quantity, unit,
		                        price, location, contact_preference, images, seller_id, is_available, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8::text::numeric, $9, $10, $11, $12, $13, $14)
		 RETURNING price::text`,
		m.ID,
		m.Title,
		m.Description,
		m.Category,
		m.Condition,
		m.Quantity,
		m.Unit,
		m.Price,
		m.Location,
		m.ContactPreference,
		m.Images,
		m.SellerID,
		m.IsAvailable,
		m.CreatedAt,
	)
	if err := row.Scan(&m.Price); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("CreateMaterial: %w", ErrSellerNotFound)
		}
		return nil, fmt.Errorf("CreateMaterial: %w", err)
	}
	return m, nil
}

// UpdateMaterial 只覆寫 patch 中有值的欄位；id、seller_id、created_at 不在 SET 之中
func (s *PostgresStore) UpdateMaterial(ctx context.Context, id string, p model.MaterialPatch) (*model.Material, error) {
	var images []string
	if p.Images != nil {
		images = append([]string{}, (*p.Images)...)
	}
	var price *string
	if p.Price != nil {
		price = model.NormalizePrice(p.Price)
	}

	m := &model.Material{}
	row := s.db.QueryRow(ctx,
		`UPDATE materials SET
		     title              = COALESCE($2, title),
		     description        = COALESCE($3, description),
		     category           = COALESCE($4, category),
		     condition          = COALESCE($5, condition),
		     quantity           = COALESCE($6, quantity),
		     unit               = COALESCE($7, unit),
		     price              = CASE WHEN $8::boolean THEN $9::text::numeric ELSE price END,
		     location           = COALESCE($10, location),
		     contact_preference = COALESCE($11, contact_preference),
		     images             = COALESCE($12::text[], images),
		     is_available       = COALESCE($13, is_available)
		 WHERE id = $1
		 RETURNING `+materialColumns,
		id,
		p.Title,
		p.Description,
		p.Category,
		p.Condition,
		p.Quantity,
		p.Unit,
		p.Price != nil,
		price,
		p.Location,
		p.ContactPreference,
		images,
		p.IsAvailable,
	)
	err := scanMaterial(row, m)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateMaterial: %w", err)
	}
	return m, nil
}

func (s *PostgresStore) DeleteMaterial(ctx context.Context, id string) (bool, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM materials WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("DeleteMaterial: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (s *PostgresStore) queryMaterials(ctx context.Context, sql string, args ...any) ([]model.Material, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := make([]model.Material, 0)
	for rows.Next() {
		var m model.Material
		if err := scanMaterial(rows, &m); err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// scanMaterial 依 materialColumns 的順序讀取一列
func scanMaterial(row pgx.Row, m *model.Material) error {
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Description,
		&m.Category,
		&m.Condition,
		&m.Quantity,
		&m.Unit,
		&m.Price,
		&m.Location,
		&m.ContactPreference,
		&m.Images,
		&m.SellerID,
		&m.IsAvailable,
		&m.CreatedAt,
	)
	if err != nil {
		return err
	}
	if m.Images == nil {
		m.Images = []string{}
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return nil
}
