package owners

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"petclinic/internal/pagination"
	"petclinic/internal/validation"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[int]Owner
	nextID int
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[int]Owner{}, nextID: 1}
}

func (r *testRepo) Create(ctx context.Context, o Owner) (Owner, error) {
	o.ID = r.nextID
	r.nextID++
	r.byID[o.ID] = o
	return o, nil
}

func (r *testRepo) Update(ctx context.Context, o Owner) (Owner, error) {
	if _, ok := r.byID[o.ID]; !ok {
		return Owner{}, ErrNotFound
	}
	r.byID[o.ID] = o
	return o, nil
}

func (r *testRepo) GetByID(ctx context.Context, id int) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *testRepo) FindByLastName(ctx context.Context, prefix string, req pagination.Request) ([]Owner, int, error) {
	all := make([]Owner, 0)
	for _, o := range r.byID {
		if strings.HasPrefix(o.LastName, prefix) {
			all = append(all, o)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := len(all)
	lo := req.Offset()
	if lo > total {
		lo = total
	}
	hi := lo + req.Size
	if hi > total {
		hi = total
	}
	return all[lo:hi], total, nil
}

func validInput() Input {
	return Input{
		FirstName: "George",
		LastName:  "Franklin",
		Address:   "110 W. Liberty St.",
		City:      "Madison",
		Telephone: "6085551023",
	}
}

func seedOwners(t *testing.T, svc *Service, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		in := validInput()
		in.LastName = fmt.Sprintf("Owner%02d", i)
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed owner %d: %v", i, err)
		}
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_AssignsID(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	o, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if o.ID != 1 {
		t.Fatalf("expected store-assigned id 1, got %d", o.ID)
	}
}

func TestService_Create_CollectsAllViolations(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), Input{Telephone: "not-a-number"})
	ve, ok := validation.As(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	// first_name, last_name, address, city vacíos + teléfono no numérico
	if len(ve.Violations) != 5 {
		t.Fatalf("expected 5 violations, got %d: %#v", len(ve.Violations), ve.Violations)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("expected store untouched on validation failure")
	}
}

func TestService_Create_TelephoneRules(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	cases := []struct {
		tel   string
		valid bool
	}{
		{"6085551023", true},
		{"123", true},
		{"12345678901", false}, // 11 dígitos
		{"608-555-10", false},
		{"", false},
	}
	for _, c := range cases {
		in := validInput()
		in.Telephone = c.tel
		_, err := svc.Create(context.Background(), in)
		if c.valid && err != nil {
			t.Fatalf("telephone %q: unexpected error %v", c.tel, err)
		}
		if !c.valid && err == nil {
			t.Fatalf("telephone %q: expected validation error", c.tel)
		}
	}
}

func TestService_Update_PathIDAlwaysWins(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	in := validInput()
	in.LastName = "Updated"
	// el id va por parámetro, nunca por body: no hay forma de pisar otro id
	updated, err := svc.Update(context.Background(), created.ID, in)
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("expected id %d preserved, got %d", created.ID, updated.ID)
	}

	stored := repo.byID[created.ID]
	if stored.LastName != "Updated" {
		t.Fatalf("expected update persisted, got %q", stored.LastName)
	}
}

func TestService_Update_UnknownIDIsNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), 99, validInput())
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_List_PaginationWindowsAndTotals(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	seedOwners(t, svc, 12)

	p1, err := svc.List(context.Background(), "", pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(p1.Items) != 5 {
		t.Fatalf("page 1: expected 5 items, got %d", len(p1.Items))
	}
	if p1.Items[0].LastName != "Owner00" || p1.Items[4].LastName != "Owner04" {
		t.Fatalf("page 1: wrong window [%s..%s]", p1.Items[0].LastName, p1.Items[4].LastName)
	}
	if p1.TotalElements != 12 || p1.TotalPages != 3 {
		t.Fatalf("page 1: wrong totals %d/%d", p1.TotalElements, p1.TotalPages)
	}

	p3, err := svc.List(context.Background(), "", pagination.NewRequest(3))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(p3.Items) != 2 || p3.Items[0].LastName != "Owner10" {
		t.Fatalf("page 3: wrong window %#v", p3.Items)
	}
}

func TestService_List_PastTheEndIsEmptyNotError(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	seedOwners(t, svc, 3)

	p, err := svc.List(context.Background(), "", pagination.NewRequest(7))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(p.Items) != 0 {
		t.Fatalf("expected empty page, got %d items", len(p.Items))
	}
	if p.TotalElements != 3 || p.TotalPages != 1 {
		t.Fatalf("expected true totals on empty page, got %d/%d", p.TotalElements, p.TotalPages)
	}
}

func TestService_List_PrefixFilter(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, name := range []string{"Davis", "Franklin", "Davidson", "Estaban"} {
		in := validInput()
		in.LastName = name
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}

	p, err := svc.List(context.Background(), "Davi", pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if p.TotalElements != 2 {
		t.Fatalf("expected 2 matches for prefix Davi, got %d", p.TotalElements)
	}
	// case-sensitive: "davi" no matchea
	p, err = svc.List(context.Background(), "davi", pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if p.TotalElements != 0 {
		t.Fatalf("expected case-sensitive match, got %d", p.TotalElements)
	}
}
