package visits

import "time"

// Visit pertenece a exactamente una mascota. Date es la fecha agendada (solo
// día, sin hora); Visited queda nil hasta que la visita ocurre — el edit la
// estampa siempre con la hora actual del servidor.
type Visit struct {
	ID    int
	PetID int

	Date        time.Time
	Description string
	Visited     *time.Time
}

// Day trunca a la fecha calendario en UTC; las consultas por día agendado
// ignoran deliberadamente la hora.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
