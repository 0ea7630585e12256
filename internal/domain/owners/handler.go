package owners

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"petclinic/internal/pagination"
	"petclinic/internal/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/owners", listOwnersHandler(svc))
	r.Post("/owners/new", createOwnerHandler(svc))
	r.Get("/owners/{ownerID}", getOwnerHandler(svc))
	r.Post("/owners/{ownerID}/edit", updateOwnerHandler(svc))
}

type ownerRequest struct {
	// El cliente puede mandar id, pero nunca se usa: en create lo asigna el
	// store y en edit gana el id del path.
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

type ownerResponse struct {
	ID        int    `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Telephone string `json:"telephone"`
}

// listOwnersHandler godoc
// @Summary List owners filtered by last-name prefix
// @Param page query int false "1-based page number"
// @Param lastName query string false "last-name prefix; empty matches all"
// @Success 200 {object} pagination.Page[ownerResponse]
// @Router /owners [get]
func listOwnersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := pagination.ParsePage(r)
		if err != nil {
			http.Error(w, "page must be a number", http.StatusBadRequest)
			return
		}

		// lastName ausente == lastName vacío (el store matchea todo)
		lastName := r.URL.Query().Get("lastName")

		page, err := svc.List(r.Context(), lastName, req)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := pagination.Page[ownerResponse]{
			Items:         make([]ownerResponse, 0, len(page.Items)),
			Number:        page.Number,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
		}
		for _, o := range page.Items {
			out.Items = append(out.Items, toOwnerResponse(o))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// createOwnerHandler godoc
// @Summary Register a new owner
// @Success 201 {object} ownerResponse
// @Failure 400 {object} map[string][]validation.Violation
// @Router /owners/new [post]
func createOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Create(r.Context(), toInput(req))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

func getOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "ownerID")
		if err != nil {
			http.Error(w, "invalid owner id", http.StatusBadRequest)
			return
		}

		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.Update(r.Context(), id, toInput(req))
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

func toInput(req ownerRequest) Input {
	return Input{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address:   req.Address,
		City:      req.City,
		Telephone: req.Telephone,
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:        o.ID,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Address:   o.Address,
		City:      o.City,
		Telephone: o.Telephone,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Violations})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "owner not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func urlID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// writeJSON se repite en los handlers de cada módulo (owners/pets/visits),
// igual que el shape del response: cada módulo es dueño de su borde HTTP.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
