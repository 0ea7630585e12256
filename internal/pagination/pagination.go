package pagination

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// PageSize es fijo para todos los listados (política del core, no configurable
// por el cliente).
const PageSize = 5

var ErrBadPage = errors.New("page must be a number")

// Request es una página pedida por el cliente. Number es 1-based hacia afuera;
// Offset hace la traducción a 0-based para el store.
type Request struct {
	Number int
	Size   int
}

// NewRequest normaliza el número de página. Política: valores < 1 se clampean
// a 1 (el parámetro es navegacional, no una precondición).
func NewRequest(page int) Request {
	if page < 1 {
		page = 1
	}
	return Request{Number: page, Size: PageSize}
}

func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

func (r Request) Limit() int {
	return r.Size
}

// ParsePage lee el query param "page". Ausente => 1. No numérico => ErrBadPage
// (el handler responde 400). Menor a 1 => clamp vía NewRequest.
func ParsePage(r *http.Request) (Request, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("page"))
	if raw == "" {
		return NewRequest(1), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Request{}, ErrBadPage
	}
	return NewRequest(n), nil
}

// Page es el resultado shape-ado de un listado paginado.
// Una página pasada del final no es error: Items vacío con totales correctos.
type Page[T any] struct {
	Items         []T `json:"items"`
	Number        int `json:"page_number"`
	Size          int `json:"page_size"`
	TotalElements int `json:"total_elements"`
	TotalPages    int `json:"total_pages"`
}

// New arma la página a partir del slice ya acotado por el store y el total real.
func New[T any](items []T, req Request, total int) Page[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return Page[T]{
		Items:         items,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages(total, req.Size),
	}
}

// Slice acota en memoria una secuencia completa ya ordenada. Lo usa el listado
// de visitas del día, donde el store devuelve el día entero.
func Slice[T any](all []T, req Request) Page[T] {
	total := len(all)
	lo := req.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + req.Size
	if hi > total {
		hi = total
	}
	return New(all[lo:hi], req, total)
}

func totalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
