package pets

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
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name      string
	BirthDate *time.Time
	TypeID    int
}

func (s *Service) Create(ctx context.Context, ownerID int, in Input) (Pet, error) {
	var ve validation.Error
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "must not be empty")
	}
	if in.BirthDate == nil {
		ve.Add("birth_date", "must not be empty")
	}

	var pt PetType
	if in.TypeID == 0 {
		ve.Add("type_id", "must not be empty")
	} else {
		var err error
		pt, err = s.repo.GetType(ctx, in.TypeID)
		if errors.Is(err, ErrTypeNotFound) {
			ve.Add("type_id", "unknown pet type")
		} else if err != nil {
			return Pet{}, err
		}
	}

	if err := ve.Err(); err != nil {
		return Pet{}, err
	}

	p := Pet{
		OwnerID:   ownerID,
		Name:      strings.TrimSpace(in.Name),
		BirthDate: in.BirthDate,
		Type:      pt,
	}
	return s.repo.CreateForOwner(ctx, ownerID, p)
}

// Update pisa la mascota resuelta por (ownerID, petID); los ids del path
// siempre ganan sobre lo que venga en el body.
func (s *Service) Update(ctx context.Context, ownerID, petID int, in Input) (Pet, error) {
	current, err := s.repo.GetForOwner(ctx, ownerID, petID)
	if err != nil {
		return Pet{}, err
	}

	var ve validation.Error
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "must not be empty")
	}

	pt := current.Type
	if in.TypeID != 0 && in.TypeID != current.Type.ID {
		pt, err = s.repo.GetType(ctx, in.TypeID)
		if errors.Is(err, ErrTypeNotFound) {
			ve.Add("type_id", "unknown pet type")
		} else if err != nil {
			return Pet{}, err
		}
	}

	if err := ve.Err(); err != nil {
		return Pet{}, err
	}

	current.Name = strings.TrimSpace(in.Name)
	if in.BirthDate != nil {
		current.BirthDate = in.BirthDate
	}
	current.Type = pt

	return s.repo.Update(ctx, current)
}

func (s *Service) GetForOwner(ctx context.Context, ownerID, petID int) (Pet, error) {
	return s.repo.GetForOwner(ctx, ownerID, petID)
}

func (s *Service) List(ctx context.Context, req pagination.Request) (pagination.Page[Pet], error) {
	items, total, err := s.repo.List(ctx, req)
	if err != nil {
		return pagination.Page[Pet]{}, err
	}
	return pagination.New(items, req, total), nil
}

func (s *Service) Types(ctx context.Context) ([]PetType, error) {
	return s.repo.ListTypes(ctx)
}
