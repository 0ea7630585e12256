package pets

import (
	"context"
	"errors"

	"petclinic/internal/pagination"
)

var (
	ErrNotFound     = errors.New("pet not found")
	ErrTypeNotFound = errors.New("pet type not found")
	// ErrDuplicate: ya existe una mascota con ese nombre para el mismo owner.
	ErrDuplicate = errors.New("duplicate pet name for owner")
)

type Repository interface {
	// CreateForOwner chequea el nombre duplicado dentro del owner y persiste
	// en una sola operación atómica: si rechaza, no muta nada.
	CreateForOwner(ctx context.Context, ownerID int, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int) (Pet, error)
	// GetForOwner devuelve ErrNotFound también cuando la mascota existe pero
	// es de otro owner.
	GetForOwner(ctx context.Context, ownerID, petID int) (Pet, error)
	List(ctx context.Context, req pagination.Request) ([]Pet, int, error)

	ListTypes(ctx context.Context) ([]PetType, error)
	GetType(ctx context.Context, id int) (PetType, error)
}
