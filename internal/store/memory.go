package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"materialmart/internal/apperr"
	"materialmart/internal/model"
)

// MemoryStore 以 map 保存資料，所有存取都經過同一把鎖
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]model.User
	materials map[string]model.Material

	now   clock
	newID func() string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]model.User),
		materials: make(map[string]model.Material),
		now:       defaultNow,
		newID:     defaultNewID,
	}
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) GetUser(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Email == email }), nil
}

func (s *MemoryStore) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Username == username }), nil
}

func (s *MemoryStore) findUser(match func(model.User) bool) *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return &u
		}
	}
	return nil
}

// CreateUser 檢查與 users 資料表相同的唯一性限制
func (s *MemoryStore) CreateUser(_ context.Context, nu model.NewUser) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == nu.Email {
			return nil, fmt.Errorf("CreateUser: %w", apperr.Conflict("User already exists"))
		}
	}
	for _, u := range s.users {
		if u.Username == nu.Username {
			return nil, fmt.Errorf("CreateUser: %w", apperr.Conflict("Username already taken"))
		}
	}
	u := model.User{
		ID:        s.newID(),
		Username:  nu.Username,
		Email:     nu.Email,
		Password:  nu.Password,
		Name:      nu.Name,
		Phone:     nu.Phone,
		Location:  nu.Location,
		CreatedAt: s.now(),
	}
	s.users[u.ID] = u
	return &u, nil
}

func (s *MemoryStore) GetMaterial(_ context.Context, id string) (*model.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[id]
	if !ok {
		return nil, nil
	}
	m = cloneMaterial(m)
	return &m, nil
}

func (s *MemoryStore) GetMaterials(ctx context.Context) ([]model.Material, error) {
	return s.SearchMaterials(ctx, model.MaterialFilter{})
}

func (s *MemoryStore) SearchMaterials(_ context.Context, f model.MaterialFilter) ([]model.Material, error) {
	return s.collect(func(m model.Material) bool {
		return m.IsAvailable && f.Matches(m)
	}), nil
}

func (s *MemoryStore) GetMaterialsBySeller(_ context.Context, sellerID string) ([]model.Material, error) {
	return s.collect(func(m model.Material) bool { return m.SellerID == sellerID }), nil
}

func (s *MemoryStore) collect(keep func(model.Material) bool) []model.Material {
	s.mu.RLock()
	out := make([]model.Material, 0)
	for _, m := range s.materials {
		if keep(m) {
			out = append(out, cloneMaterial(m))
		}
	}
	s.mu.RUnlock()
	sortNewestFirst(out)
	return out
}

func (s *MemoryStore) CreateMaterial(_ context.Context, nm model.NewMaterial, sellerID string) (*model.Material, error) {
	images := append([]string{}, nm.Images...)
	m := model.Material{
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

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[sellerID]; !ok {
		return nil, fmt.Errorf("CreateMaterial: %w", ErrSellerNotFound)
	}
	s.materials[m.ID] = m

	out := cloneMaterial(m)
	return &out, nil
}

func (s *MemoryStore) UpdateMaterial(_ context.Context, id string, p model.MaterialPatch) (*model.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.materials[id]
	if !ok {
		return nil, nil
	}
	m = cloneMaterial(m)
	p.Apply(&m)
	s.materials[id] = m

	out := cloneMaterial(m)
	return &out, nil
}

func (s *MemoryStore) DeleteMaterial(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[id]; !ok {
		return false, nil
	}
	delete(s.materials, id)
	return true, nil
}

func cloneMaterial(m model.Material) model.Material {
	m.Images = append([]string{}, m.Images...)
	if m.Price != nil {
		p := *m.Price
		m.Price = &p
	}
	return m
}

// sortNewestFirst 依 created_at DESC, id ASC 排序，與 SQL 的 ORDER BY 一致
func sortNewestFirst(ms []model.Material) {
	sort.Slice(ms, func(i, j int) bool {
		if !ms[i].CreatedAt.Equal(ms[j].CreatedAt) {
			return ms[i].CreatedAt.After(ms[j].CreatedAt)
		}
		return ms[i].ID < ms[j].ID
	})
}
