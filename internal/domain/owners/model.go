package owners

// Owner es el dueño de una o más mascotas. El ID lo asigna siempre el store:
// un id mandado por el cliente en el create se ignora.
type Owner struct {
	ID int

	FirstName string
	LastName  string
	Address   string
	City      string
	Telephone string
}
