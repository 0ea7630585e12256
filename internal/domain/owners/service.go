package owners

import (
	"context"
	"strings"

	"petclinic/internal/pagination"
	"petclinic/internal/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}

func (in Input) validate() error {
	var ve validation.Error

	if strings.TrimSpace(in.FirstName) == "" {
		ve.Add("first_name", "must not be empty")
	}
	if strings.TrimSpace(in.LastName) == "" {
		ve.Add("last_name", "must not be empty")
	}
	if strings.TrimSpace(in.Address) == "" {
		ve.Add("address", "must not be empty")
	}
	if strings.TrimSpace(in.City) == "" {
		ve.Add("city", "must not be empty")
	}

	tel := strings.TrimSpace(in.Telephone)
	switch {
	case tel == "":
		ve.Add("telephone", "must not be empty")
	case !allDigits(tel):
		ve.Add("telephone", "must contain only digits")
	case len(tel) > 10:
		ve.Add("telephone", "must be at most 10 digits")
	}

	return ve.Err()
}

func (s *Service) Create(ctx context.Context, in Input) (Owner, error) {
	if err := in.validate(); err != nil {
		return Owner{}, err
	}
	return s.repo.Create(ctx, ownerFromInput(0, in))
}

// Update pisa el owner identificado por el id del path. El id del body nunca
// llega hasta acá: el id resuelto por ruta siempre gana.
func (s *Service) Update(ctx context.Context, id int, in Input) (Owner, error) {
	if err := in.validate(); err != nil {
		return Owner{}, err
	}
	return s.repo.Update(ctx, ownerFromInput(id, in))
}

func (s *Service) GetByID(ctx context.Context, id int) (Owner, error) {
	return s.repo.GetByID(ctx, id)
}

// List busca por prefijo de apellido y da forma a la página. "Sin filtro" y
// "filtro vacío" son lo mismo: el string vacío matchea todo.
func (s *Service) List(ctx context.Context, lastName string, req pagination.Request) (pagination.Page[Owner], error) {
	items, total, err := s.repo.FindByLastName(ctx, lastName, req)
	if err != nil {
		return pagination.Page[Owner]{}, err
	}
	return pagination.New(items, req, total), nil
}

func ownerFromInput(id int, in Input) Owner {
	return Owner{
		ID:        id,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
		Telephone: strings.TrimSpace(in.Telephone),
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
