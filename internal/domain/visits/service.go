package visits

import (
	"context"
	"errors"
	"strings"
	"time"

	"petclinic/internal/pagination"
	"petclinic/internal/validation"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type Input struct {
	Date        time.Time
	Description string
}

func (in Input) validate() error {
	var ve validation.Error
	if in.Date.IsZero() {
		ve.Add("date", "must not be empty")
	}
	if strings.TrimSpace(in.Description) == "" {
		ve.Add("description", "must not be empty")
	}
	return ve.Err()
}

func (s *Service) Create(ctx context.Context, petID int, in Input) (Visit, error) {
	if err := in.validate(); err != nil {
		return Visit{}, err
	}

	v := Visit{
		PetID:       petID,
		Date:        Day(in.Date),
		Description: strings.TrimSpace(in.Description),
	}
	return s.repo.Create(ctx, v)
}

// Update pisa la visita del id resuelto por path y estampa Visited con la hora
// actual, incondicionalmente: editar una visita es registrarla como ocurrida.
func (s *Service) Update(ctx context.Context, id int, in Input) (Visit, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Visit{}, err
	}
	if err := in.validate(); err != nil {
		return Visit{}, err
	}

	now := s.now()
	current.Date = Day(in.Date)
	current.Description = strings.TrimSpace(in.Description)
	current.Visited = &now

	return s.repo.Update(ctx, current)
}

// GetByID es el lookup canónico: las dos formas de direccionar una visita
// (owner+pet y visitId) terminan acá.
func (s *Service) GetByID(ctx context.Context, id int) (Visit, error) {
	return s.repo.GetByID(ctx, id)
}

// Prefill resuelve la visita con la que se pre-carga el form de una mascota:
// la primera registrada, releída por el lookup canónico. Si la mascota no
// tiene visitas devuelve el estado "new" explícito, nunca una entidad vacía
// con id en cero.
func (s *Service) Prefill(ctx context.Context, petID int) (Visit, bool, error) {
	first, err := s.repo.FirstForPet(ctx, petID)
	if errors.Is(err, ErrNotFound) {
		return Visit{}, true, nil
	}
	if err != nil {
		return Visit{}, false, err
	}

	v, err := s.GetByID(ctx, first.ID)
	if err != nil {
		return Visit{}, false, err
	}
	return v, false, nil
}

func (s *Service) ListForPet(ctx context.Context, petID int) ([]Visit, error) {
	return s.repo.ListForPet(ctx, petID)
}

// Scheduled lista las visitas agendadas para hoy, paginadas. El store devuelve
// el día completo ya ordenado y la fachada corta la ventana pedida.
func (s *Service) Scheduled(ctx context.Context, req pagination.Request) (pagination.Page[Visit], error) {
	all, err := s.repo.ListScheduled(ctx, Day(s.now()))
	if err != nil {
		return pagination.Page[Visit]{}, err
	}
	return pagination.Slice(all, req), nil
}

// All lista todas las visitas (el camino showAll=true del listado).
func (s *Service) All(ctx context.Context, req pagination.Request) (pagination.Page[Visit], error) {
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return pagination.Page[Visit]{}, err
	}
	return pagination.New(items, req, total), nil
}
