package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"petclinic/internal/domain/owners"
	"petclinic/internal/pagination"
)

type ownersRepo struct {
	mu     sync.RWMutex
	byID   map[int]owners.Owner
	nextID int
}

func NewOwnersRepo() owners.Repository {
	return &ownersRepo{
		byID:   make(map[int]owners.Owner),
		nextID: 1,
	}
}

func (r *ownersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// el id lo asigna el store, venga lo que venga
	o.ID = r.nextID
	r.nextID++
	r.byID[o.ID] = o
	return o, nil
}

func (r *ownersRepo) Update(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[o.ID]; !exists {
		return owners.Owner{}, owners.ErrNotFound
	}
	r.byID[o.ID] = o
	return o, nil
}

func (r *ownersRepo) GetByID(ctx context.Context, id int) (owners.Owner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.byID[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) FindByLastName(ctx context.Context, prefix string, req pagination.Request) ([]owners.Owner, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := make([]owners.Owner, 0)
	for _, o := range r.byID {
		if strings.HasPrefix(o.LastName, prefix) {
			matches = append(matches, o)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	return window(matches, req), len(matches), nil
}

// window corta la tajada [offset, offset+limit) sin pasarse del slice.
func window[T any](all []T, req pagination.Request) []T {
	lo := req.Offset()
	if lo > len(all) {
		lo = len(all)
	}
	hi := lo + req.Limit()
	if hi > len(all) {
		hi = len(all)
	}
	return all[lo:hi]
}
