package email

// Dados já formatados da fatura; quem monta é o usecase,
// o pacote só renderiza e envia.
type InvoiceLine struct {
	Description string
	Quantity    int
	UnitPrice   string
	Amount      string
}

type InvoiceMessage struct {
	To        string
	OwnerName string

	ClinicName  string
	ClinicPhone string
	ClinicEmail string

	Reference string
	Status    string
	IssueDate string
	DueDate   string
	Notes     string

	Lines []InvoiceLine
	Total string
}
