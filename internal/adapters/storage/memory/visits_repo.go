package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"petclinic/internal/domain/visits"
	"petclinic/internal/pagination"
)

type visitsRepo struct {
	mu     sync.RWMutex
	byID   map[int]visits.Visit
	nextID int
}

func NewVisitsRepo() visits.Repository {
	return &visitsRepo{
		byID:   make(map[int]visits.Visit),
		nextID: 1,
	}
}

func (r *visitsRepo) Create(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = r.nextID
	r.nextID++
	r.byID[v.ID] = v
	return v, nil
}

func (r *visitsRepo) Update(ctx context.Context, v visits.Visit) (visits.Visit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[v.ID]; !exists {
		return visits.Visit{}, visits.ErrNotFound
	}
	r.byID[v.ID] = v
	return v, nil
}

func (r *visitsRepo) GetByID(ctx context.Context, id int) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return visits.Visit{}, visits.ErrNotFound
	}
	return v, nil
}

func (r *visitsRepo) FirstForPet(ctx context.Context, petID int) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := false
	var first visits.Visit
	for _, v := range r.byID {
		if v.PetID != petID {
			continue
		}
		if !found || v.ID < first.ID {
			first = v
			found = true
		}
	}
	if !found {
		return visits.Visit{}, visits.ErrNotFound
	}
	return first, nil
}

func (r *visitsRepo) ListForPet(ctx context.Context, petID int) ([]visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visits.Visit, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *visitsRepo) ListScheduled(ctx context.Context, date time.Time) ([]visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visits.Visit, 0)
	for _, v := range r.byID {
		if v.Date.Equal(date) {
			out = append(out, v)
		}
	}

	// visited asc; el default de este store es nulls al final
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Visited, out[j].Visited
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

func (r *visitsRepo) List(ctx context.Context, req pagination.Request) ([]visits.Visit, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]visits.Visit, 0, len(r.byID))
	for _, v := range r.byID {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return window(all, req), len(all), nil
}
