package visits

import (
	"context"
	"errors"
	"time"

	"petclinic/internal/pagination"
)

var ErrNotFound = errors.New("visit not found")

type Repository interface {
	Create(ctx context.Context, v Visit) (Visit, error)
	Update(ctx context.Context, v Visit) (Visit, error)
	GetByID(ctx context.Context, id int) (Visit, error)
	// FirstForPet es la primera visita registrada de la mascota (menor id).
	FirstForPet(ctx context.Context, petID int) (Visit, error)
	ListForPet(ctx context.Context, petID int) ([]Visit, error)
	// ListScheduled: match exacto de fecha, ordenado por visited timestamp
	// ascendente (nulls según el default del store).
	ListScheduled(ctx context.Context, date time.Time) ([]Visit, error)
	List(ctx context.Context, req pagination.Request) ([]Visit, int, error)
}
