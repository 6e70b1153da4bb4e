// Package store 實作刊登資料庫（Listing Repository）。
//
// Repository 有兩個可互換的實作：MemoryStore（程序內、重啟即遺失）與
// PostgresStore（pgx）。兩者的篩選與排序語意必須一致：列表只回傳
// is_available 的刊登，依 created_at 由新到舊排序，同時間以 id 遞增排序。
package store

import (
	"context"
	"fmt"
	"time"

	"materialmart/internal/apperr"
	"materialmart/internal/database"
	"materialmart/internal/model"

	"github.com/google/uuid"
)

// Repository 是使用者與刊登資料的唯一擁有者。
// 查無資料時回傳 (nil, nil)，只有儲存層故障才回傳 error。
type Repository interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, u model.NewUser) (*model.User, error)

	GetMaterial(ctx context.Context, id string) (*model.Material, error)
	GetMaterials(ctx context.Context) ([]model.Material, error)
	SearchMaterials(ctx context.Context, f model.MaterialFilter) ([]model.Material, error)
	GetMaterialsBySeller(ctx context.Context, sellerID string) ([]model.Material, error)
	CreateMaterial(ctx context.Context, m model.NewMaterial, sellerID string) (*model.Material, error)
	UpdateMaterial(ctx context.Context, id string, p model.MaterialPatch) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id string) (bool, error)

	Ping(ctx context.Context) error
}

// ErrSellerNotFound 建立刊登時 sellerID 不是既有使用者（對應 materials.seller_id 外鍵）
var ErrSellerNotFound = apperr.NotFound("Seller not found")

const (
	KindMemory   = "memory"
	KindPostgres = "postgres"
)

// New 依設定選擇後端；postgres 需要 db
func New(kind string, db database.DB) (Repository, error) {
	switch kind {
	case KindMemory:
		return NewMemoryStore(), nil
	case KindPostgres:
		if db == nil {
			return nil, fmt.Errorf("store: postgres backend requires a database")
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", kind)
	}
}

// clock 與 id 產生器；兩個後端共用，測試可覆寫
type clock func() time.Time

// defaultNow 截到微秒，與 timestamptz 精度相同
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func defaultNewID() string {
	return uuid.NewString()
}
