package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// MaxPageSize is the server's upper bound for the size query parameter and is
// what "unbounded" aggregation fetches use.
const MaxPageSize = 1000

// Login exchanges credentials for a bearer token via the form-encoded
// password grant.
func (c *Client) Login(ctx context.Context, username, password string) (Token, error) {
	fields := url.Values{}
	fields.Set("username", username)
	fields.Set("password", password)
	var tok Token
	err := c.RequestForm(ctx, "/token", fields, &tok)
	return tok, err
}

// Me returns the identity behind the current credential.
func (c *Client) Me(ctx context.Context) (Identity, error) {
	var id Identity
	err := c.Request(ctx, http.MethodGet, "/users/me", nil, nil, &id)
	return id, err
}

// ListUsers returns every user account (admin only, unpaginated server-side).
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.Request(ctx, http.MethodGet, "/users", nil, nil, &users)
	return users, err
}

// CreateUser registers a new account (admin only).
func (c *Client) CreateUser(ctx context.Context, in UserInput) (User, error) {
	var out User
	err := c.Request(ctx, http.MethodPost, "/users", nil, in, &out)
	return out, err
}

// DeleteUser removes an account. The server rejects self-deletion; the client
// additionally never renders the control for the acting identity.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil, nil, nil)
}

// ListSections returns all sections ordered by name.
func (c *Client) ListSections(ctx context.Context) ([]Section, error) {
	var sections []Section
	err := c.Request(ctx, http.MethodGet, "/secoes", nil, nil, &sections)
	return sections, err
}

// CreateSection adds a section.
func (c *Client) CreateSection(ctx context.Context, in SectionInput) (Section, error) {
	var out Section
	err := c.Request(ctx, http.MethodPost, "/secoes", nil, in, &out)
	return out, err
}

// UpdateSection renames a section.
func (c *Client) UpdateSection(ctx context.Context, id int64, in SectionInput) (Section, error) {
	var out Section
	err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/secoes/%d", id), nil, in, &out)
	return out, err
}

// DeleteSection removes a section; the server refuses while it is referenced.
func (c *Client) DeleteSection(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/secoes/%d", id), nil, nil, nil)
}

// ListCreditNotes returns one page of credit notes honoring the filter set
// (plano_interno, nd, secao_responsavel_id, status).
func (c *Client) ListCreditNotes(ctx context.Context, filters Filters, page, size int) (Page[CreditNote], error) {
	q := filters.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out Page[CreditNote]
	err := c.Request(ctx, http.MethodGet, "/notas-credito", q, nil, &out)
	return out, err
}

// GetCreditNote fetches one credit note with its responsible section.
func (c *Client) GetCreditNote(ctx context.Context, id int64) (CreditNote, error) {
	var out CreditNote
	err := c.Request(ctx, http.MethodGet, fmt.Sprintf("/notas-credito/%d", id), nil, nil, &out)
	return out, err
}

// CreateCreditNote registers a new credit note.
func (c *Client) CreateCreditNote(ctx context.Context, in CreditNoteInput) (CreditNote, error) {
	var out CreditNote
	err := c.Request(ctx, http.MethodPost, "/notas-credito", nil, in, &out)
	return out, err
}

// UpdateCreditNote replaces the note's editable fields.
func (c *Client) UpdateCreditNote(ctx context.Context, id int64, in CreditNoteInput) (CreditNote, error) {
	var out CreditNote
	err := c.Request(ctx, http.MethodPut, fmt.Sprintf("/notas-credito/%d", id), nil, in, &out)
	return out, err
}

// DeleteCreditNote removes a note without encumbrances (admin only).
func (c *Client) DeleteCreditNote(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/notas-credito/%d", id), nil, nil, nil)
}

// ListEncumbrances returns one page of encumbrances, optionally filtered by
// nota_credito_id.
func (c *Client) ListEncumbrances(ctx context.Context, filters Filters, page, size int) (Page[Encumbrance], error) {
	q := filters.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	var out Page[Encumbrance]
	err := c.Request(ctx, http.MethodGet, "/empenhos", q, nil, &out)
	return out, err
}

// CreateEncumbrance commits funds against an active credit note.
func (c *Client) CreateEncumbrance(ctx context.Context, in EncumbranceInput) (Encumbrance, error) {
	var out Encumbrance
	err := c.Request(ctx, http.MethodPost, "/empenhos", nil, in, &out)
	return out, err
}

// DeleteEncumbrance removes an encumbrance without reversals (admin only).
func (c *Client) DeleteEncumbrance(ctx context.Context, id int64) error {
	return c.Request(ctx, http.MethodDelete, fmt.Sprintf("/empenhos/%d", id), nil, nil, nil)
}

// ListReversals returns every reversal recorded against an encumbrance.
func (c *Client) ListReversals(ctx context.Context, encumbranceID int64) ([]Reversal, error) {
	q := url.Values{}
	q.Set("empenho_id", strconv.FormatInt(encumbranceID, 10))
	var out []Reversal
	err := c.Request(ctx, http.MethodGet, "/anulacoes-empenho", q, nil, &out)
	return out, err
}

// CreateReversal records a reversal against an encumbrance.
func (c *Client) CreateReversal(ctx context.Context, in ReversalInput) (Reversal, error) {
	var out Reversal
	err := c.Request(ctx, http.MethodPost, "/anulacoes-empenho", nil, in, &out)
	return out, err
}

// ListBalanceReturns returns every balance return recorded for a credit note.
func (c *Client) ListBalanceReturns(ctx context.Context, creditNoteID int64) ([]BalanceReturn, error) {
	q := url.Values{}
	q.Set("nota_credito_id", strconv.FormatInt(creditNoteID, 10))
	var out []BalanceReturn
	err := c.Request(ctx, http.MethodGet, "/recolhimentos-saldo", q, nil, &out)
	return out, err
}

// CreateBalanceReturn records a balance return for a credit note.
func (c *Client) CreateBalanceReturn(ctx context.Context, in BalanceReturnInput) (BalanceReturn, error) {
	var out BalanceReturn
	err := c.Request(ctx, http.MethodPost, "/recolhimentos-saldo", nil, in, &out)
	return out, err
}

// KPIs returns the dashboard headline aggregates.
func (c *Client) KPIs(ctx context.Context) (KPIs, error) {
	var out KPIs
	err := c.Request(ctx, http.MethodGet, "/dashboard/kpis", nil, nil, &out)
	return out, err
}

// DeadlineWarnings returns active notes whose commitment deadline is near.
func (c *Client) DeadlineWarnings(ctx context.Context) ([]CreditNote, error) {
	var out []CreditNote
	err := c.Request(ctx, http.MethodGet, "/dashboard/avisos", nil, nil, &out)
	return out, err
}

// BalanceBySection returns the chart-ready per-section balance series.
func (c *Client) BalanceBySection(ctx context.Context) ([]SectionBalance, error) {
	var out []SectionBalance
	err := c.Request(ctx, http.MethodGet, "/dashboard/saldo-por-secao", nil, nil, &out)
	return out, err
}

// ReportPDF downloads the consolidated report for the given credit-note
// filters, optionally including per-note encumbrance and return details.
func (c *Client) ReportPDF(ctx context.Context, filters Filters, includeDetails bool) ([]byte, error) {
	q := filters.Query()
	if includeDetails {
		q.Set("incluir_detalhes", "true")
	}
	return c.RequestBinary(ctx, http.MethodGet, "/relatorios/pdf", q)
}

// AuditLogs returns the newest audit entries (admin only, skip/limit paging).
func (c *Client) AuditLogs(ctx context.Context, skip, limit int) ([]AuditLogEntry, error) {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	var out []AuditLogEntry
	err := c.Request(ctx, http.MethodGet, "/audit-logs", q, nil, &out)
	return out, err
}
