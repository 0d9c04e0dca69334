package storefront

import (
	"context"
	"sort"
	"time"

	"github.com/kitestore/shopfront/internal/domain"
)

// memSectionRepo is an in-memory SectionRepository for tests.
type memSectionRepo struct {
	rows []domain.HomeSection
}

func (m *memSectionRepo) List(_ context.Context) ([]domain.HomeSection, error) {
	out := make([]domain.HomeSection, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

func (m *memSectionRepo) GetByID(_ context.Context, id int64) (*domain.HomeSection, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memSectionRepo) Create(_ context.Context, section *domain.HomeSection) error {
	m.rows = append(m.rows, *section)
	return nil
}

func (m *memSectionRepo) Update(_ context.Context, id int64, fields map[string]interface{}) error {
	for i := range m.rows {
		if m.rows[i].ID != id {
			continue
		}
		if v, ok := fields["type"]; ok {
			m.rows[i].Type = v.(string)
		}
		if v, ok := fields["sort"]; ok {
			m.rows[i].Order = v.(int)
		}
		if v, ok := fields["is_active"]; ok {
			m.rows[i].IsActive = v.(bool)
		}
		if v, ok := fields["content"]; ok {
			m.rows[i].Content = v.(string)
		}
		if v, ok := fields["updated_at"]; ok {
			m.rows[i].UpdatedAt = v.(time.Time)
		}
		return nil
	}
	return ErrNotFound
}

func (m *memSectionRepo) Delete(_ context.Context, id int64) error {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// memItemRepo is an in-memory ItemRepository recording the limits it is
// asked for.
type memItemRepo struct {
	rows      []domain.StoreItem
	err       error
	lastLimit int
}

func (m *memItemRepo) List(_ context.Context, limit int) ([]domain.StoreItem, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.StoreItem, 0, limit)
	for _, row := range m.rows {
		if len(out) == limit {
			break
		}
		out = append(out, row)
	}
	return out, nil
}

func (m *memItemRepo) ListHot(_ context.Context, limit int) ([]domain.StoreItem, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	hot := make([]domain.StoreItem, 0, len(m.rows))
	for _, row := range m.rows {
		if row.IsHot {
			hot = append(hot, row)
		}
	}
	sort.SliceStable(hot, func(i, j int) bool {
		ti, tj := hot[i].HotAt, hot[j].HotAt
		if ti == nil || tj == nil {
			return tj == nil && ti != nil
		}
		return ti.After(*tj)
	})
	if len(hot) > limit {
		hot = hot[:limit]
	}
	return hot, nil
}

func (m *memItemRepo) All(_ context.Context) ([]domain.StoreItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.StoreItem, len(m.rows))
	copy(out, m.rows)
	return out, nil
}
