package memory

import (
	"context"
	"sort"
	"sync"

	"petclinic/internal/domain/pets"
	"petclinic/internal/pagination"
)

type petsRepo struct {
	mu     sync.RWMutex
	byID   map[int]pets.Pet
	types  map[int]pets.PetType
	nextID int
}

func NewPetsRepo() pets.Repository {
	return &petsRepo{
		byID:   make(map[int]pets.Pet),
		types:  seedPetTypes(),
		nextID: 1,
	}
}

// seedPetTypes replica el catálogo de referencia que los backends SQL siembran
// en la migración.
func seedPetTypes() map[int]pets.PetType {
	types := map[int]pets.PetType{}
	for i, name := range []string{"cat", "dog", "lizard", "snake", "bird", "hamster"} {
		types[i+1] = pets.PetType{ID: i + 1, Name: name}
	}
	return types
}

func (r *petsRepo) CreateForOwner(ctx context.Context, ownerID int, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// chequeo de duplicado e insert bajo el mismo lock: o entra todo o nada
	for _, existing := range r.byID {
		if existing.OwnerID == ownerID && existing.Name == p.Name {
			return pets.Pet{}, pets.ErrDuplicate
		}
	}

	p.ID = r.nextID
	r.nextID++
	p.OwnerID = ownerID
	r.byID[p.ID] = p
	return p, nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID]; !exists {
		return pets.Pet{}, pets.ErrNotFound
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *petsRepo) GetByID(ctx context.Context, id int) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) GetForOwner(ctx context.Context, ownerID, petID int) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[petID]
	if !ok || p.OwnerID != ownerID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) List(ctx context.Context, req pagination.Request) ([]pets.Pet, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]pets.Pet, 0, len(r.byID))
	for _, p := range r.byID {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return window(all, req), len(all), nil
}

func (r *petsRepo) ListTypes(ctx context.Context) ([]pets.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.PetType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *petsRepo) GetType(ctx context.Context, id int) (pets.PetType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.types[id]
	if !ok {
		return pets.PetType{}, pets.ErrTypeNotFound
	}
	return t, nil
}
