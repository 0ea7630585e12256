package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petclinic/internal/domain/owners"
	"petclinic/internal/pagination"
	"petclinic/internal/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, ownersSvc *owners.Service) {
	r.Get("/pets", listPetsHandler(svc))
	r.Get("/pettypes", listPetTypesHandler(svc))

	r.Route("/owners/{ownerID}/pets", func(pr chi.Router) {
		pr.Post("/new", createPetHandler(svc, ownersSvc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Post("/{petID}/edit", updatePetHandler(svc))
	})
}

type petRequest struct {
	ID        int    `json:"id"` // ignorado: manda el path / el store
	Name      string `json:"name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD
	TypeID    int    `json:"type_id"`
}

type petTypeResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type petResponse struct {
	ID        int             `json:"id"`
	OwnerID   int             `json:"owner_id"`
	Name      string          `json:"name"`
	BirthDate string          `json:"birth_date,omitempty"` // YYYY-MM-DD
	Type      petTypeResponse `json:"type"`
}

// listPetsHandler godoc
// @Summary List all pets, page size 5
// @Param page query int false "1-based page number"
// @Success 200 {object} pagination.Page[petResponse]
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := pagination.ParsePage(r)
		if err != nil {
			http.Error(w, "page must be a number", http.StatusBadRequest)
			return
		}

		page, err := svc.List(r.Context(), req)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := pagination.Page[petResponse]{
			Items:         make([]petResponse, 0, len(page.Items)),
			Number:        page.Number,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
		}
		for _, p := range page.Items {
			out.Items = append(out.Items, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// listPetTypesHandler godoc
// @Summary List pet types (unpaginated reference data)
// @Success 200 {array} petTypeResponse
// @Router /pettypes [get]
func listPetTypesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := svc.Types(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petTypeResponse, 0, len(types))
		for _, t := range types {
			out = append(out, petTypeResponse{ID: t.ID, Name: t.Name})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func createPetHandler(svc *Service, ownersSvc *owners.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := urlID(r, "ownerID")
		if err != nil {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		// el owner tiene que existir antes de colgarle una mascota
		if _, err := ownersSvc.GetByID(r.Context(), ownerID); err != nil {
			if errors.Is(err, owners.ErrNotFound) {
				http.Error(w, "owner not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, badDate := toInput(req)
		if badDate {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), ownerID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err1 := urlID(r, "ownerID")
		petID, err2 := urlID(r, "petID")
		if err1 != nil || err2 != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		p, err := svc.GetForOwner(r.Context(), ownerID, petID)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err1 := urlID(r, "ownerID")
		petID, err2 := urlID(r, "petID")
		if err1 != nil || err2 != nil {
			http.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, badDate := toInput(req)
		if badDate {
			http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), ownerID, petID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toInput(req petRequest) (in Input, badDate bool) {
	in = Input{Name: req.Name, TypeID: req.TypeID}
	if strings.TrimSpace(req.BirthDate) != "" {
		t, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return Input{}, true
		}
		in.BirthDate = &t
	}
	return in, false
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		ID:      p.ID,
		OwnerID: p.OwnerID,
		Name:    p.Name,
		Type:    petTypeResponse{ID: p.Type.ID, Name: p.Type.Name},
	}
	if p.BirthDate != nil {
		out.BirthDate = p.BirthDate.Format("2006-01-02")
	}
	return out
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Violations})
		return
	}
	switch {
	case errors.Is(err, ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []validation.Violation{
			{Field: "name", Message: "already exists"},
		}})
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func urlID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
