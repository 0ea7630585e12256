package pets

import "time"

// PetType es data de referencia compartida (muchas mascotas apuntan al mismo
// tipo); el flujo normal de requests no la muta.
type PetType struct {
	ID   int
	Name string
}

// Pet pertenece a exactamente un owner. El nombre es único dentro del set de
// mascotas de su owner cuando se crea por la ruta scoped al owner.
type Pet struct {
	ID      int
	OwnerID int

	Name      string
	BirthDate *time.Time
	Type      PetType
}
