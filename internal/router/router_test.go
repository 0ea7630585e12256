package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"petclinic/internal/pagination"
	"petclinic/internal/router"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_OwnerPetVisit(t *testing.T) {
	ts := newTestServer(t)

	// 1) Se registra un owner
	ownerID := createOwner(t, ts.URL, map[string]any{
		"first_name": "Jane",
		"last_name":  "Smith",
		"address":    "110 W. Liberty St.",
		"city":       "Madison",
		"telephone":  "6085551023",
	})

	// 2) Se le cuelga una mascota
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Rex",
		"birth_date": "2020-03-15",
		"type_id":    2,
	})

	// 3) Antes de la primera visita, el prefill viene explícitamente nuevo
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/owners/%d/pets/%d/visits/new", ownerID, petID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 prefill, got %d body=%s", st, string(body))
		}
		var resp struct {
			New   bool            `json:"new"`
			Visit json.RawMessage `json:"visit"`
		}
		mustUnmarshal(t, body, &resp)
		if !resp.New || len(resp.Visit) != 0 {
			t.Fatalf("expected {new:true} without visit, got %s", string(body))
		}
	}

	// 4) Se agenda una visita para hoy (día calendario UTC, como el server)
	today := time.Now().UTC().Format("2006-01-02")
	visitID := createVisit(t, ts.URL, ownerID, petID, map[string]any{
		"date":        today,
		"description": "checkup",
	})

	// 5) La visita aparece en el historial de la mascota
	{
		st, body := doReq(t, ts.URL, "GET", fmt.Sprintf("/owners/%d/pets/%d/visits/", ownerID, petID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 pet visit history, got %d body=%s", st, string(body))
		}
		var items []struct {
			ID          int    `json:"id"`
			Description string `json:"description"`
		}
		mustUnmarshal(t, body, &items)
		if len(items) != 1 || items[0].ID != visitID || items[0].Description != "checkup" {
			t.Fatalf("unexpected history body=%s", string(body))
		}
	}

	// 6) ... y en el listado de agendadas para hoy
	{
		st, body := doReq(t, ts.URL, "GET", "/visits", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 scheduled visits, got %d body=%s", st, string(body))
		}
		var page pagination.Page[struct {
			ID   int    `json:"id"`
			Date string `json:"date"`
		}]
		mustUnmarshal(t, body, &page)
		if page.TotalElements != 1 || page.Items[0].ID != visitID || page.Items[0].Date != today {
			t.Fatalf("unexpected scheduled page body=%s", string(body))
		}
	}

	// 7) Editar la visita la deja estampada como ocurrida
	{
		st, body := doReq(t, ts.URL, "POST", fmt.Sprintf("/visits/%d/edit", visitID), map[string]any{
			"date":        today,
			"description": "checkup done",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 edit visit, got %d body=%s", st, string(body))
		}
		var resp struct {
			Description string  `json:"description"`
			VisitedAt   *string `json:"visited_at"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.Description != "checkup done" || resp.VisitedAt == nil {
			t.Fatalf("expected visited_at stamped, got %s", string(body))
		}
	}

	// 8) El prefill ahora re-lee la primera visita por su id canónico y
	//    coincide con GET /visits/{id}
	{
		st, prefillBody := doReq(t, ts.URL, "GET", fmt.Sprintf("/owners/%d/pets/%d/visits/new", ownerID, petID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 prefill, got %d", st)
		}
		var prefill struct {
			New   bool            `json:"new"`
			Visit json.RawMessage `json:"visit"`
		}
		mustUnmarshal(t, prefillBody, &prefill)
		if prefill.New {
			t.Fatalf("expected persisted prefill, got %s", string(prefillBody))
		}

		st, direct := doReq(t, ts.URL, "GET", fmt.Sprintf("/visits/%d", visitID), nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get visit, got %d", st)
		}
		if string(bytes.TrimSpace(prefill.Visit)) != string(bytes.TrimSpace(direct)) {
			t.Fatalf("dual addressing mismatch:\nprefill=%s\ndirect=%s", prefill.Visit, direct)
		}
	}
}

func TestHTTP_Owners_FilterAndIDImmutability(t *testing.T) {
	ts := newTestServer(t)

	for _, last := range []string{"Davis", "Douglas", "Franklin"} {
		createOwner(t, ts.URL, map[string]any{
			"first_name": "Betty",
			"last_name":  last,
			"address":    "638 Cardinal Ave.",
			"city":       "Sun Prairie",
			"telephone":  "6085551749",
		})
	}

	// sin lastName y con lastName= devuelven lo mismo
	_, withoutParam := doReq(t, ts.URL, "GET", "/owners", nil)
	_, withEmpty := doReq(t, ts.URL, "GET", "/owners?lastName=", nil)
	if string(withoutParam) != string(withEmpty) {
		t.Fatalf("empty filter mismatch:\nnone=%s\nempty=%s", withoutParam, withEmpty)
	}

	// prefijo, case-sensitive
	{
		st, body := doReq(t, ts.URL, "GET", "/owners?lastName=D", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var page pagination.Page[struct {
			LastName string `json:"last_name"`
		}]
		mustUnmarshal(t, body, &page)
		if page.TotalElements != 2 {
			t.Fatalf("expected 2 D-prefixed owners, got body=%s", string(body))
		}
	}
	{
		st, body := doReq(t, ts.URL, "GET", "/owners?lastName=d", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200, got %d", st)
		}
		var page pagination.Page[json.RawMessage]
		mustUnmarshal(t, body, &page)
		if page.TotalElements != 0 {
			t.Fatalf("prefix match should be case-sensitive, got body=%s", string(body))
		}
	}

	// el id del body nunca pisa al del path
	{
		st, body := doReq(t, ts.URL, "POST", "/owners/1/edit", map[string]any{
			"id":         99,
			"first_name": "Betty",
			"last_name":  "Davis-Jones",
			"address":    "638 Cardinal Ave.",
			"city":       "Sun Prairie",
			"telephone":  "6085551749",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 edit owner, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID       int    `json:"id"`
			LastName string `json:"last_name"`
		}
		mustUnmarshal(t, body, &resp)
		if resp.ID != 1 || resp.LastName != "Davis-Jones" {
			t.Fatalf("expected id=1 from path, got %s", string(body))
		}
	}

	// validación estructurada, nunca un 500
	{
		st, body := doReq(t, ts.URL, "POST", "/owners/new", map[string]any{
			"first_name": "",
			"last_name":  "",
			"address":    "x",
			"city":       "x",
			"telephone":  "123456789012345",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid owner, got %d body=%s", st, string(body))
		}
		var resp struct {
			Errors []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		mustUnmarshal(t, body, &resp)
		if len(resp.Errors) != 3 {
			t.Fatalf("expected 3 violations, got %s", string(body))
		}
	}
}

func TestHTTP_Pets_DuplicateNameWithinOwner(t *testing.T) {
	ts := newTestServer(t)

	ownerID := createOwner(t, ts.URL, map[string]any{
		"first_name": "George",
		"last_name":  "Bush",
		"address":    "2693 Commerce St.",
		"city":       "McFarland",
		"telephone":  "6085552654",
	})
	createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Max",
		"birth_date": "2021-01-01",
		"type_id":    1,
	})

	st, body := doReq(t, ts.URL, "POST", fmt.Sprintf("/owners/%d/pets/new", ownerID), map[string]any{
		"name":       "Max",
		"birth_date": "2022-02-02",
		"type_id":    2,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 duplicate pet name, got %d body=%s", st, string(body))
	}

	// mismo nombre bajo otro owner sí entra
	otherID := createOwner(t, ts.URL, map[string]any{
		"first_name": "Laura",
		"last_name":  "Bush",
		"address":    "2693 Commerce St.",
		"city":       "McFarland",
		"telephone":  "6085552654",
	})
	createPet(t, ts.URL, otherID, map[string]any{
		"name":       "Max",
		"birth_date": "2022-02-02",
		"type_id":    2,
	})

	// owner inexistente => 404, no un 500
	st, _ = doReq(t, ts.URL, "POST", "/owners/999/pets/new", map[string]any{
		"name":       "Ghost",
		"birth_date": "2022-02-02",
		"type_id":    1,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown owner, got %d", st)
	}
}

func TestHTTP_Pagination(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 7; i++ {
		createOwner(t, ts.URL, map[string]any{
			"first_name": "Owner",
			"last_name":  fmt.Sprintf("Page%02d", i),
			"address":    "some st.",
			"city":       "Madison",
			"telephone":  "6085550000",
		})
	}

	type ownerPage = pagination.Page[json.RawMessage]

	getPage := func(path string) (int, ownerPage, []byte) {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		var page ownerPage
		if st == http.StatusOK {
			mustUnmarshal(t, body, &page)
		}
		return st, page, body
	}

	// primera ventana llena, segunda con el resto
	if _, page, body := getPage("/owners"); len(page.Items) != 5 || page.TotalElements != 7 || page.TotalPages != 2 {
		t.Fatalf("unexpected first page body=%s", string(body))
	}
	if _, page, body := getPage("/owners?page=2"); len(page.Items) != 2 || page.Number != 2 {
		t.Fatalf("unexpected second page body=%s", string(body))
	}

	// pasarse del final no es error: items vacíos con totales reales
	if st, page, body := getPage("/owners?page=9"); st != http.StatusOK || len(page.Items) != 0 || page.TotalElements != 7 {
		t.Fatalf("unexpected past-the-end page st=%d body=%s", st, string(body))
	}

	// page < 1 se normaliza a la primera página
	first, clamped0, clampedNeg := mustBody(t, ts.URL, "/owners?page=1"), mustBody(t, ts.URL, "/owners?page=0"), mustBody(t, ts.URL, "/owners?page=-3")
	if first != clamped0 || first != clampedNeg {
		t.Fatalf("expected page<1 clamped to 1:\npage=1 %s\npage=0 %s\npage=-3 %s", first, clamped0, clampedNeg)
	}

	// page no numérico sí es un 400
	if st, _, _ := getPage("/owners?page=abc"); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric page, got %d", st)
	}
}

func TestHTTP_Visits_ShowAll(t *testing.T) {
	ts := newTestServer(t)

	ownerID := createOwner(t, ts.URL, map[string]any{
		"first_name": "Jean",
		"last_name":  "Coleman",
		"address":    "105 N. Lake St.",
		"city":       "Monona",
		"telephone":  "6085552419",
	})
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Samantha",
		"birth_date": "2019-09-04",
		"type_id":    1,
	})

	today := time.Now().UTC().Format("2006-01-02")
	createVisit(t, ts.URL, ownerID, petID, map[string]any{"date": today, "description": "today"})
	createVisit(t, ts.URL, ownerID, petID, map[string]any{"date": "2020-01-01", "description": "past"})

	count := func(path string) int {
		st, body := doReq(t, ts.URL, "GET", path, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d body=%s", path, st, string(body))
		}
		var page pagination.Page[json.RawMessage]
		mustUnmarshal(t, body, &page)
		return page.TotalElements
	}

	if got := count("/visits"); got != 1 {
		t.Fatalf("expected 1 scheduled-today visit, got %d", got)
	}
	if got := count("/visits?showAll=true"); got != 2 {
		t.Fatalf("expected 2 visits with showAll, got %d", got)
	}

	if st, _ := doReq(t, ts.URL, "GET", "/visits?showAll=banana", nil); st != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-boolean showAll, got %d", st)
	}

	// la mascota del path tiene que ser del owner del path
	if st, _ := doReq(t, ts.URL, "GET", fmt.Sprintf("/owners/999/pets/%d/visits/", petID), nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for mismatched owner/pet, got %d", st)
	}
}

func createOwner(t *testing.T, baseURL string, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/owners/new", payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create owner, got %d body=%s", st, string(body))
	}
	return mustID(t, body)
}

func createPet(t *testing.T, baseURL string, ownerID int, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", fmt.Sprintf("/owners/%d/pets/new", ownerID), payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}
	return mustID(t, body)
}

func createVisit(t *testing.T, baseURL string, ownerID, petID int, payload map[string]any) int {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", fmt.Sprintf("/owners/%d/pets/%d/visits/new", ownerID, petID), payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create visit, got %d body=%s", st, string(body))
	}
	return mustID(t, body)
}

func mustID(t *testing.T, body []byte) int {
	t.Helper()

	var resp struct {
		ID int `json:"id"`
	}
	mustUnmarshal(t, body, &resp)
	if resp.ID == 0 {
		t.Fatalf("missing id in body=%s", string(body))
	}
	return resp.ID
}

func mustBody(t *testing.T, baseURL, path string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", path, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for %s, got %d", path, st)
	}
	return string(body)
}

func mustUnmarshal(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("json unmarshal: %v body=%s", err, string(body))
	}
}

func doReq(t *testing.T, baseURL, method, path string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+"/api/v1"+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
