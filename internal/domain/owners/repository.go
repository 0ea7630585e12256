package owners

import (
	"context"
	"errors"

	"petclinic/internal/pagination"
)

var ErrNotFound = errors.New("owner not found")

type Repository interface {
	// Create asigna el id y persiste. Ignora cualquier id que traiga o.
	Create(ctx context.Context, o Owner) (Owner, error)
	// Update pisa el owner existente con ese id; ErrNotFound si no existe.
	Update(ctx context.Context, o Owner) (Owner, error)
	GetByID(ctx context.Context, id int) (Owner, error)
	// FindByLastName: prefix match case-sensitive sobre el apellido; prefix
	// vacío matchea todo. Devuelve la tajada pedida más el total de matches,
	// ordenado por id ascendente.
	FindByLastName(ctx context.Context, prefix string, req pagination.Request) ([]Owner, int, error)
}
