package contact

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

type memoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	storage map[int64]Contact
}

// NewMemoryRepository constructs an in-memory repository for tests and
// database-less development runs.
func NewMemoryRepository() Repository {
	return &memoryRepository{storage: make(map[int64]Contact)}
}

func (r *memoryRepository) Create(_ context.Context, c Contact) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.storage[c.ID] = c
	return c, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.storage[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	return c, nil
}

func (r *memoryRepository) List(_ context.Context, skip, limit int) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted()
	if skip >= len(all) {
		return []Contact{}, nil
	}
	all = all[skip:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *memoryRepository) Update(_ context.Context, id int64, u Update) (Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.storage[id]
	if !ok {
		return Contact{}, ErrNotFound
	}
	c = u.apply(c)
	r.storage[id] = c
	return c, nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.storage[id]; !ok {
		return false, nil
	}
	delete(r.storage, id)
	return true, nil
}

func (r *memoryRepository) SearchByText(_ context.Context, query string) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(query)
	matches := make([]Contact, 0)
	for _, c := range r.sorted() {
		if strings.Contains(strings.ToLower(c.FirstName), needle) ||
			strings.Contains(strings.ToLower(c.LastName), needle) ||
			strings.Contains(strings.ToLower(c.Email), needle) {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

func (r *memoryRepository) UpcomingBirthdays(_ context.Context, today time.Time) ([]Contact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	window := make(map[[2]int]bool, 8)
	for _, p := range birthdayWindow(today) {
		window[p] = true
	}
	matches := make([]Contact, 0)
	for _, c := range r.sorted() {
		if window[[2]int{int(c.Birthday.Month()), c.Birthday.Day()}] {
			matches = append(matches, c)
		}
	}
	return matches, nil
}

// sorted returns all records ordered by id. Callers hold the lock.
func (r *memoryRepository) sorted() []Contact {
	all := make([]Contact, 0, len(r.storage))
	for _, c := range r.storage {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
