// Package storagetest corre el mismo contrato de Record Store contra cada
// adapter (memory, sqlite, postgres): misma semántica, distinto backend.
package storagetest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/pets"
	"petclinic/internal/domain/visits"
	"petclinic/internal/pagination"
)

type Repos struct {
	Owners owners.Repository
	Pets   pets.Repository
	Visits visits.Repository
}

// Factory abre un store limpio por subtest.
type Factory func(t *testing.T) Repos

func Run(t *testing.T, open Factory) {
	t.Run("OwnerCreateAssignsID", func(t *testing.T) { testOwnerCreateAssignsID(t, open(t)) })
	t.Run("OwnerCreateIgnoresClientID", func(t *testing.T) { testOwnerCreateIgnoresClientID(t, open(t)) })
	t.Run("OwnerUpdateUnknownIsNotFound", func(t *testing.T) { testOwnerUpdateUnknown(t, open(t)) })
	t.Run("OwnerFindByLastNamePrefix", func(t *testing.T) { testOwnerPrefix(t, open(t)) })
	t.Run("OwnerFindPagination", func(t *testing.T) { testOwnerPagination(t, open(t)) })
	t.Run("PetTypesSeeded", func(t *testing.T) { testPetTypesSeeded(t, open(t)) })
	t.Run("PetDuplicateNameRejectedAtomically", func(t *testing.T) { testPetDuplicate(t, open(t)) })
	t.Run("PetGetForOwnerScoping", func(t *testing.T) { testPetScoping(t, open(t)) })
	t.Run("PetListPaginated", func(t *testing.T) { testPetList(t, open(t)) })
	t.Run("VisitFirstForPet", func(t *testing.T) { testVisitFirst(t, open(t)) })
	t.Run("VisitScheduledByDate", func(t *testing.T) { testVisitScheduled(t, open(t)) })
	t.Run("VisitUpdateRoundTrip", func(t *testing.T) { testVisitUpdate(t, open(t)) })
}

func mustOwner(t *testing.T, r Repos, lastName string) owners.Owner {
	t.Helper()
	o, err := r.Owners.Create(context.Background(), owners.Owner{
		FirstName: "Jean",
		LastName:  lastName,
		Address:   "105 N. Lake St.",
		City:      "Monona",
		Telephone: "6085552654",
	})
	if err != nil {
		t.Fatalf("create owner %s: %v", lastName, err)
	}
	return o
}

func mustPet(t *testing.T, r Repos, ownerID int, name string) pets.Pet {
	t.Helper()
	bd := time.Date(2020, 3, 14, 0, 0, 0, 0, time.UTC)
	p, err := r.Pets.CreateForOwner(context.Background(), ownerID, pets.Pet{
		Name:      name,
		BirthDate: &bd,
		Type:      pets.PetType{ID: 1, Name: "cat"},
	})
	if err != nil {
		t.Fatalf("create pet %s: %v", name, err)
	}
	return p
}

func mustVisit(t *testing.T, r Repos, petID int, date time.Time, desc string) visits.Visit {
	t.Helper()
	v, err := r.Visits.Create(context.Background(), visits.Visit{
		PetID:       petID,
		Date:        date,
		Description: desc,
	})
	if err != nil {
		t.Fatalf("create visit %s: %v", desc, err)
	}
	return v
}

func testOwnerCreateAssignsID(t *testing.T, r Repos) {
	o1 := mustOwner(t, r, "Franklin")
	o2 := mustOwner(t, r, "Davis")
	if o1.ID == 0 || o2.ID == 0 {
		t.Fatalf("expected assigned ids, got %d and %d", o1.ID, o2.ID)
	}
	if o1.ID == o2.ID {
		t.Fatalf("expected distinct ids, got %d twice", o1.ID)
	}

	got, err := r.Owners.GetByID(context.Background(), o1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != o1 {
		t.Fatalf("round trip mismatch: %#v vs %#v", got, o1)
	}
}

func testOwnerCreateIgnoresClientID(t *testing.T, r Repos) {
	existing := mustOwner(t, r, "Franklin")

	o, err := r.Owners.Create(context.Background(), owners.Owner{
		ID:        existing.ID, // id mandado por el cliente: se ignora
		FirstName: "Betty",
		LastName:  "Davis",
		Address:   "638 Cardinal Ave.",
		City:      "Sun Prairie",
		Telephone: "6085551749",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.ID == existing.ID {
		t.Fatalf("expected store-assigned id, client id %d was honored", existing.ID)
	}

	// el owner existente no fue pisado
	got, err := r.Owners.GetByID(context.Background(), existing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.LastName != "Franklin" {
		t.Fatalf("existing owner clobbered: %#v", got)
	}
}

func testOwnerUpdateUnknown(t *testing.T, r Repos) {
	_, err := r.Owners.Update(context.Background(), owners.Owner{
		ID: 9999, FirstName: "X", LastName: "Y", Address: "Z", City: "W", Telephone: "1",
	})
	if !errors.Is(err, owners.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	_, err = r.Owners.GetByID(context.Background(), 9999)
	if !errors.Is(err, owners.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on get, got %v", err)
	}
}

func testOwnerPrefix(t *testing.T, r Repos) {
	for _, name := range []string{"Davis", "Davidson", "davinci", "Franklin"} {
		mustOwner(t, r, name)
	}

	items, total, err := r.Owners.FindByLastName(context.Background(), "Davi", pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("FindByLastName: %v", err)
	}
	// case-sensitive: "davinci" queda afuera
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 matches, got total=%d len=%d", total, len(items))
	}

	// prefijo vacío matchea todo
	_, total, err = r.Owners.FindByLastName(context.Background(), "", pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("FindByLastName empty: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected empty prefix to match all 4, got %d", total)
	}
}

func testOwnerPagination(t *testing.T, r Repos) {
	created := make([]owners.Owner, 0, 12)
	for i := 0; i < 12; i++ {
		created = append(created, mustOwner(t, r, fmt.Sprintf("Owner%02d", i)))
	}

	items, total, err := r.Owners.FindByLastName(context.Background(), "", pagination.NewRequest(2))
	if err != nil {
		t.Fatalf("FindByLastName: %v", err)
	}
	if total != 12 {
		t.Fatalf("expected total 12, got %d", total)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items on page 2, got %d", len(items))
	}
	// orden por id asc: la página 2 arranca en el sexto creado
	if items[0].ID != created[5].ID {
		t.Fatalf("expected page 2 to start at %d, got %d", created[5].ID, items[0].ID)
	}

	// pasada del final: vacía, sin error, total intacto
	items, total, err = r.Owners.FindByLastName(context.Background(), "", pagination.NewRequest(9))
	if err != nil {
		t.Fatalf("FindByLastName past-the-end: %v", err)
	}
	if len(items) != 0 || total != 12 {
		t.Fatalf("expected empty page with total 12, got len=%d total=%d", len(items), total)
	}
}

func testPetTypesSeeded(t *testing.T, r Repos) {
	types, err := r.Pets.ListTypes(context.Background())
	if err != nil {
		t.Fatalf("ListTypes: %v", err)
	}
	if len(types) != 6 {
		t.Fatalf("expected 6 seeded types, got %d", len(types))
	}

	first, err := r.Pets.GetType(context.Background(), types[0].ID)
	if err != nil {
		t.Fatalf("GetType: %v", err)
	}
	if first != types[0] {
		t.Fatalf("GetType mismatch: %#v vs %#v", first, types[0])
	}

	if _, err := r.Pets.GetType(context.Background(), 999); !errors.Is(err, pets.ErrTypeNotFound) {
		t.Fatalf("expected ErrTypeNotFound, got %v", err)
	}
}

func testPetDuplicate(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	other := mustOwner(t, r, "Davis")
	mustPet(t, r, owner.ID, "Rex")

	_, err := r.Pets.CreateForOwner(context.Background(), owner.ID, pets.Pet{
		Name: "Rex",
		Type: pets.PetType{ID: 1},
	})
	if !errors.Is(err, pets.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	// el rechazo no mutó nada
	_, total, err := r.Pets.List(context.Background(), pagination.NewRequest(1))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 pet after rejected create, got %d", total)
	}

	// mismo nombre bajo otro owner es válido
	if _, err := r.Pets.CreateForOwner(context.Background(), other.ID, pets.Pet{
		Name: "Rex",
		Type: pets.PetType{ID: 1},
	}); err != nil {
		t.Fatalf("create under other owner: %v", err)
	}
}

func testPetScoping(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	other := mustOwner(t, r, "Davis")
	pet := mustPet(t, r, owner.ID, "Rex")

	got, err := r.Pets.GetForOwner(context.Background(), owner.ID, pet.ID)
	if err != nil {
		t.Fatalf("GetForOwner: %v", err)
	}
	if got.ID != pet.ID || got.OwnerID != owner.ID {
		t.Fatalf("GetForOwner mismatch: %#v", got)
	}
	if got.BirthDate == nil {
		t.Fatalf("expected birth date round-tripped")
	}

	// la mascota existe pero es de otro owner => NotFound
	if _, err := r.Pets.GetForOwner(context.Background(), other.ID, pet.ID); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign owner, got %v", err)
	}
}

func testPetList(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	for i := 0; i < 7; i++ {
		mustPet(t, r, owner.ID, fmt.Sprintf("Pet%d", i))
	}

	items, total, err := r.Pets.List(context.Background(), pagination.NewRequest(2))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 7 || len(items) != 2 {
		t.Fatalf("page 2: expected 2 of 7, got %d of %d", len(items), total)
	}
	if items[0].Name != "Pet5" {
		t.Fatalf("page 2: expected Pet5 first, got %s", items[0].Name)
	}
}

func testVisitFirst(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	pet := mustPet(t, r, owner.ID, "Rex")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := r.Visits.FirstForPet(context.Background(), pet.ID); !errors.Is(err, visits.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without visits, got %v", err)
	}

	v1 := mustVisit(t, r, pet.ID, day, "first")
	mustVisit(t, r, pet.ID, day.AddDate(0, 0, 3), "second")

	first, err := r.Visits.FirstForPet(context.Background(), pet.ID)
	if err != nil {
		t.Fatalf("FirstForPet: %v", err)
	}
	if first.ID != v1.ID {
		t.Fatalf("expected first visit %d, got %d", v1.ID, first.ID)
	}

	// y el lookup canónico por id devuelve la misma entidad
	byID, err := r.Visits.GetByID(context.Background(), v1.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.ID != first.ID || byID.Description != first.Description || !byID.Date.Equal(first.Date) {
		t.Fatalf("dual addressing mismatch: %#v vs %#v", byID, first)
	}

	all, err := r.Visits.ListForPet(context.Background(), pet.ID)
	if err != nil {
		t.Fatalf("ListForPet: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 visits for pet, got %d", len(all))
	}
}

func testVisitScheduled(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	pet := mustPet(t, r, owner.ID, "Rex")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mustVisit(t, r, pet.ID, day, "today A")
	mustVisit(t, r, pet.ID, day, "today B")
	mustVisit(t, r, pet.ID, day.AddDate(0, 0, 1), "tomorrow")

	// una de hoy ya ocurrió
	early := day.Add(9 * time.Hour)
	late := day.Add(11 * time.Hour)
	vLate := mustVisit(t, r, pet.ID, day, "visited late")
	vLate.Visited = &late
	if _, err := r.Visits.Update(context.Background(), vLate); err != nil {
		t.Fatalf("update: %v", err)
	}
	vEarly := mustVisit(t, r, pet.ID, day, "visited early")
	vEarly.Visited = &early
	if _, err := r.Visits.Update(context.Background(), vEarly); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := r.Visits.ListScheduled(context.Background(), day)
	if err != nil {
		t.Fatalf("ListScheduled: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 visits on %s, got %d", day.Format("2006-01-02"), len(got))
	}

	// las visitadas vienen en orden visited asc; dónde caen los NULL es
	// decisión de cada store, así que solo se chequea el orden relativo
	idxEarly, idxLate := -1, -1
	for i, v := range got {
		switch v.ID {
		case vEarly.ID:
			idxEarly = i
		case vLate.ID:
			idxLate = i
		}
	}
	if idxEarly == -1 || idxLate == -1 || idxEarly > idxLate {
		t.Fatalf("expected visited-asc order, got early=%d late=%d", idxEarly, idxLate)
	}

	for _, v := range got {
		if !v.Date.Equal(day) {
			t.Fatalf("expected only visits on %s, got %s", day.Format("2006-01-02"), v.Date.Format("2006-01-02"))
		}
	}
}

func testVisitUpdate(t *testing.T, r Repos) {
	owner := mustOwner(t, r, "Franklin")
	pet := mustPet(t, r, owner.ID, "Rex")
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	v := mustVisit(t, r, pet.ID, day, "checkup")
	if v.Visited != nil {
		t.Fatalf("expected visited nil on create")
	}

	stamp := day.Add(10 * time.Hour)
	v.Description = "checkup done"
	v.Visited = &stamp
	if _, err := r.Visits.Update(context.Background(), v); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := r.Visits.GetByID(context.Background(), v.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "checkup done" {
		t.Fatalf("expected description updated, got %q", got.Description)
	}
	if got.Visited == nil || !got.Visited.Equal(stamp) {
		t.Fatalf("expected visited %v, got %v", stamp, got.Visited)
	}

	v.ID = 9999
	if _, err := r.Visits.Update(context.Background(), v); !errors.Is(err, visits.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
