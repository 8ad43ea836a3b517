package book

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memoryRepo is an insertion-ordered in-memory Repository for service tests.
type memoryRepo struct {
	mu     sync.Mutex
	seq    int
	order  []string
	byID   map[string]Book
	writes int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: map[string]Book{}}
}

func (m *memoryRepo) Create(_ context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b.ID = fmt.Sprintf("book-%d", m.seq)
	m.byID[b.ID] = *b
	m.order = append(m.order, b.ID)
	m.writes++
	return nil
}

func (m *memoryRepo) GetByID(_ context.Context, id string) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (m *memoryRepo) all() []Book {
	out := make([]Book, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

func (m *memoryRepo) List(_ context.Context, limit, offset int) ([]Book, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	books := m.all()
	if offset >= len(books) {
		return []Book{}, len(books), nil
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end], len(books), nil
}

func (m *memoryRepo) Replace(_ context.Context, id string, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	b.ID = id
	m.byID[id] = *b
	m.writes++
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return nil
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	m.writes++
	return nil
}

func (m *memoryRepo) FindByISBN(_ context.Context, isbn string) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Book{}
	for _, b := range m.all() {
		if b.ISBN == isbn {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepo) FindByPurchaseDateBetween(_ context.Context, start, end time.Time) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Book{}
	for _, b := range m.all() {
		if b.DatePurchased == nil {
			continue
		}
		t := b.DatePurchased.Time
		if !t.Before(start) && !t.After(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memoryRepo) CountBySold(_ context.Context, sold bool) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.all() {
		if (b.Sold != nil) == sold {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) ListFinancials(_ context.Context) ([]Financials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Financials
	for _, b := range m.all() {
		out = append(out, Financials{Cogs: b.Cogs, Profit: b.Profit})
	}
	return out, nil
}
