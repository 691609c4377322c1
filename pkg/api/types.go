package api

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// Role controls which views and actions the server grants an identity.
type Role string

const (
	RoleOperator      Role = "OPERADOR"
	RoleAdministrator Role = "ADMINISTRADOR"
)

// Identity is the authenticated user as reported by /users/me.
type Identity struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// IsAdmin reports whether the identity may use the administration area.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdministrator }

// User is a managed account row; the server returns the same shape as the
// authenticated identity.
type User = Identity

// Token is the response of the password-grant /token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Section is an organizational unit referenced by credit notes and
// encumbrances.
type Section struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

// SectionInput is the create/update payload for a section.
type SectionInput struct {
	Name string `json:"nome"`
}

// Status values are derived server-side; the client only displays them.
type Status string

const (
	StatusActive         Status = "Ativa"
	StatusFullyCommitted Status = "Totalmente Empenhada"
	StatusExpired        Status = "Vencida"
)

// Date wraps time.Time with the server's plain-date wire format.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("parse date %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// DateTime wraps time.Time with the server's timestamp format, which comes
// back without a timezone designator.
type DateTime struct {
	time.Time
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	var err error
	for _, layout := range dateTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("parse timestamp %q: %w", s, err)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format("2006-01-02T15:04:05") + `"`), nil
}

// CreditNote is a budget allocation. AvailableBalance and Status are computed
// by the server and never recomputed locally.
type CreditNote struct {
	ID                 int64    `json:"id"`
	Number             string   `json:"numero_nc"`
	Amount             float64  `json:"valor"`
	Sphere             string   `json:"esfera"`
	Source             string   `json:"fonte"`
	PTRES              string   `json:"ptres"`
	InternalPlan       string   `json:"plano_interno"`
	ExpenseNature      string   `json:"nd"`
	ArrivalDate        Date     `json:"data_chegada"`
	CommitmentDeadline Date     `json:"prazo_empenho"`
	Description        string   `json:"descricao,omitempty"`
	SectionID          int64    `json:"secao_responsavel_id"`
	AvailableBalance   float64  `json:"saldo_disponivel"`
	Status             Status   `json:"status"`
	Section            *Section `json:"secao_responsavel,omitempty"`
}

// SectionName returns the resolved responsible-section name when the server
// expanded the reference.
func (n CreditNote) SectionName() string {
	if n.Section != nil {
		return n.Section.Name
	}
	return fmt.Sprintf("#%d", n.SectionID)
}

// CreditNoteInput is the create/update payload for a credit note.
type CreditNoteInput struct {
	Number             string  `json:"numero_nc"`
	Amount             float64 `json:"valor"`
	Sphere             string  `json:"esfera"`
	Source             string  `json:"fonte"`
	PTRES              string  `json:"ptres"`
	InternalPlan       string  `json:"plano_interno"`
	ExpenseNature      string  `json:"nd"`
	ArrivalDate        Date    `json:"data_chegada"`
	CommitmentDeadline Date    `json:"prazo_empenho"`
	Description        string  `json:"descricao,omitempty"`
	SectionID          int64   `json:"secao_responsavel_id"`
}

// Encumbrance is a commitment drawn against exactly one credit note.
type Encumbrance struct {
	ID           int64       `json:"id"`
	Number       string      `json:"numero_ne"`
	Amount       float64     `json:"valor"`
	Date         Date        `json:"data_empenho"`
	Note         string      `json:"observacao,omitempty"`
	CreditNoteID int64       `json:"nota_credito_id"`
	SectionID    int64       `json:"secao_requisitante_id"`
	Section      *Section    `json:"secao_requisitante,omitempty"`
	CreditNote   *CreditNote `json:"nota_credito,omitempty"`
}

// NoteNumber returns the owning credit note's number when the server
// expanded the reference.
func (e Encumbrance) NoteNumber() string {
	if e.CreditNote != nil {
		return e.CreditNote.Number
	}
	return fmt.Sprintf("#%d", e.CreditNoteID)
}

// SectionName returns the requesting section's name when the server expanded
// the reference.
func (e Encumbrance) SectionName() string {
	if e.Section != nil {
		return e.Section.Name
	}
	return fmt.Sprintf("#%d", e.SectionID)
}

// EncumbranceInput is the create payload for an encumbrance.
type EncumbranceInput struct {
	Number       string  `json:"numero_ne"`
	Amount       float64 `json:"valor"`
	Date         Date    `json:"data_empenho"`
	Note         string  `json:"observacao,omitempty"`
	CreditNoteID int64   `json:"nota_credito_id"`
	SectionID    int64   `json:"secao_requisitante_id"`
}

// Reversal reduces the executed amount of an encumbrance.
type Reversal struct {
	ID            int64   `json:"id"`
	EncumbranceID int64   `json:"empenho_id"`
	Amount        float64 `json:"valor"`
	Date          Date    `json:"data"`
	Note          string  `json:"observacao,omitempty"`
}

// ReversalInput is the create payload for a reversal.
type ReversalInput struct {
	EncumbranceID int64   `json:"empenho_id"`
	Amount        float64 `json:"valor"`
	Date          Date    `json:"data"`
	Note          string  `json:"observacao,omitempty"`
}

// BalanceReturn gives funds back to a credit note outside the encumbrance
// flow.
type BalanceReturn struct {
	ID           int64   `json:"id"`
	CreditNoteID int64   `json:"nota_credito_id"`
	Amount       float64 `json:"valor"`
	Date         Date    `json:"data"`
	Note         string  `json:"observacao,omitempty"`
}

// BalanceReturnInput is the create payload for a balance return.
type BalanceReturnInput struct {
	CreditNoteID int64   `json:"nota_credito_id"`
	Amount       float64 `json:"valor"`
	Date         Date    `json:"data"`
	Note         string  `json:"observacao,omitempty"`
}

// UserInput is the create payload for a user account.
type UserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// AuditLogEntry is a read-only row from the server audit trail.
type AuditLogEntry struct {
	ID        int64    `json:"id"`
	Timestamp DateTime `json:"timestamp"`
	Username  string   `json:"username"`
	Action    string   `json:"action"`
	Details   string   `json:"details,omitempty"`
}

// Page is the uniform envelope returned by every paginated list endpoint.
type Page[T any] struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	Size    int `json:"size"`
	Results []T `json:"results"`
}

// KPIs are the dashboard headline numbers.
type KPIs struct {
	TotalAvailable float64 `json:"saldo_disponivel_total"`
	TotalCommitted float64 `json:"valor_empenhado_total"`
	ActiveNotes    int     `json:"ncs_ativas"`
}

// SectionBalance is one bar of the balance-by-section dashboard series.
type SectionBalance struct {
	Section string  `json:"secao"`
	Balance float64 `json:"saldo"`
}
