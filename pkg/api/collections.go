package api

// Collection keys name the server-side collections a mutation touched. Views
// subscribe to these to know which caches to reload.
const (
	CollectionCreditNotes    = "notas-credito"
	CollectionEncumbrances   = "empenhos"
	CollectionReversals      = "anulacoes-empenho"
	CollectionBalanceReturns = "recolhimentos-saldo"
	CollectionSections       = "secoes"
	CollectionUsers          = "usuarios"
)
