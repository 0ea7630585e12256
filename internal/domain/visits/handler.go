package visits

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"petclinic/internal/domain/pets"
	"petclinic/internal/pagination"
	"petclinic/internal/validation"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Get("/visits", listVisitsHandler(svc))
	r.Get("/visits/{visitID}", getVisitHandler(svc))
	r.Post("/visits/{visitID}/edit", updateVisitHandler(svc))

	r.Route("/owners/{ownerID}/pets/{petID}/visits", func(vr chi.Router) {
		vr.Get("/", listPetVisitsHandler(svc, petsSvc))
		vr.Get("/new", prefillVisitHandler(svc, petsSvc))
		vr.Post("/new", createVisitHandler(svc, petsSvc))
	})
}

type visitRequest struct {
	ID          int    `json:"id"` // ignorado: manda el path / el store
	Date        string `json:"date"` // YYYY-MM-DD
	Description string `json:"description"`
}

type visitResponse struct {
	ID          int        `json:"id"`
	PetID       int        `json:"pet_id"`
	Date        string     `json:"date"` // YYYY-MM-DD
	Description string     `json:"description"`
	VisitedAt   *time.Time `json:"visited_at,omitempty"`
}

// prefillResponse distingue explícitamente "todavía no hay visita" de una
// visita persistida; no hay entidad centinela con id cero.
type prefillResponse struct {
	New   bool           `json:"new"`
	Visit *visitResponse `json:"visit,omitempty"`
}

// listVisitsHandler godoc
// @Summary List visits scheduled today (or all visits with showAll=true), page size 5
// @Param page query int false "1-based page number"
// @Param showAll query bool false "list every visit instead of today's"
// @Success 200 {object} pagination.Page[visitResponse]
// @Router /visits [get]
func listVisitsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := pagination.ParsePage(r)
		if err != nil {
			http.Error(w, "page must be a number", http.StatusBadRequest)
			return
		}

		showAll := false
		if raw := strings.TrimSpace(r.URL.Query().Get("showAll")); raw != "" {
			showAll, err = strconv.ParseBool(raw)
			if err != nil {
				http.Error(w, "showAll must be a boolean", http.StatusBadRequest)
				return
			}
		}

		var page pagination.Page[Visit]
		if showAll {
			page, err = svc.All(r.Context(), req)
		} else {
			page, err = svc.Scheduled(r.Context(), req)
		}
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := pagination.Page[visitResponse]{
			Items:         make([]visitResponse, 0, len(page.Items)),
			Number:        page.Number,
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    page.TotalPages,
		}
		for _, v := range page.Items {
			out.Items = append(out.Items, toVisitResponse(v))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "visitID")
		if err != nil {
			http.Error(w, "invalid visit id", http.StatusBadRequest)
			return
		}

		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

// updateVisitHandler godoc
// @Summary Edit a visit; the server stamps the visited timestamp
// @Success 200 {object} visitResponse
// @Router /visits/{visitID}/edit [post]
func updateVisitHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := urlID(r, "visitID")
		if err != nil {
			http.Error(w, "invalid visit id", http.StatusBadRequest)
			return
		}

		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, badDate := toInput(req)
		if badDate {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Update(r.Context(), id, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toVisitResponse(v))
	}
}

func listPetVisitsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		items, err := svc.ListForPet(r.Context(), pet.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]visitResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVisitResponse(v))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func prefillVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		v, isNew, err := svc.Prefill(r.Context(), pet.ID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if isNew {
			writeJSON(w, http.StatusOK, prefillResponse{New: true})
			return
		}
		resp := toVisitResponse(v)
		writeJSON(w, http.StatusOK, prefillResponse{New: false, Visit: &resp})
	}
}

func createVisitHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pet, ok := resolvePet(w, r, petsSvc)
		if !ok {
			return
		}

		var req visitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, badDate := toInput(req)
		if badDate {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		v, err := svc.Create(r.Context(), pet.ID, in)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toVisitResponse(v))
	}
}

// resolvePet valida que la mascota exista y sea del owner del path; si no,
// responde y devuelve ok=false.
func resolvePet(w http.ResponseWriter, r *http.Request, petsSvc *pets.Service) (pets.Pet, bool) {
	ownerID, err1 := urlID(r, "ownerID")
	petID, err2 := urlID(r, "petID")
	if err1 != nil || err2 != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return pets.Pet{}, false
	}

	pet, err := petsSvc.GetForOwner(r.Context(), ownerID, petID)
	if err != nil {
		if errors.Is(err, pets.ErrNotFound) {
			http.Error(w, "pet not found", http.StatusNotFound)
		} else {
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return pets.Pet{}, false
	}
	return pet, true
}

func toInput(req visitRequest) (in Input, badDate bool) {
	in = Input{Description: req.Description}
	if strings.TrimSpace(req.Date) != "" {
		t, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return Input{}, true
		}
		in.Date = t
	}
	return in, false
}

func toVisitResponse(v Visit) visitResponse {
	return visitResponse{
		ID:          v.ID,
		PetID:       v.PetID,
		Date:        v.Date.Format("2006-01-02"),
		Description: v.Description,
		VisitedAt:   v.Visited,
	}
}

func writeError(w http.ResponseWriter, err error) {
	if ve, ok := validation.As(err); ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errors": ve.Violations})
		return
	}
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "visit not found", http.StatusNotFound)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func urlID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
