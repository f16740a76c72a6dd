package storage

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/familyfinance/internal/models"
)

// TransactionFilter selects transactions. Zero fields match everything.
type TransactionFilter struct {
	Person   string
	Type     models.TransactionType
	Category string
	From     models.Date // inclusive
	To       models.Date // inclusive
}

// Match reports whether t passes the filter.
func (f TransactionFilter) Match(t *models.Transaction) bool {
	if f.Person != "" && !strings.EqualFold(f.Person, t.Person) {
		return false
	}
	if f.Type != "" && f.Type != t.Type {
		return false
	}
	if f.Category != "" && !strings.EqualFold(f.Category, t.Category) {
		return false
	}
	if !f.From.IsZero() && t.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.Date.After(f.To) {
		return false
	}
	return true
}

// TransactionOrder is the sort key for ListTransactions.
type TransactionOrder string

const (
	OrderDateDesc    TransactionOrder = "date_desc"
	OrderDateAsc     TransactionOrder = "date_asc"
	OrderAmountDesc  TransactionOrder = "amount_desc"
	OrderCreatedDesc TransactionOrder = "created_desc"
)

// Valid reports whether o is a known order. The empty order means OrderDateDesc.
func (o TransactionOrder) Valid() bool {
	switch o {
	case "", OrderDateDesc, OrderDateAsc, OrderAmountDesc, OrderCreatedDesc:
		return true
	}
	return false
}

// TransactionPatch holds the fields to change. Nil fields are left untouched
// by a merge update.
type TransactionPatch struct {
	Type        *models.TransactionType
	Amount      *decimal.Decimal
	Category    *string
	Date        *models.Date
	Person      *string
	Description *string
}

// Complete reports whether every field is set.
func (p TransactionPatch) Complete() bool {
	return p.Type != nil && p.Amount != nil && p.Category != nil &&
		p.Date != nil && p.Person != nil && p.Description != nil
}

// Apply copies the set fields of p onto t.
func (p TransactionPatch) Apply(t *models.Transaction) {
	if p.Type != nil {
		t.Type = *p.Type
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.Person != nil {
		t.Person = *p.Person
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
}

// EventKind is the kind of change a TransactionEvent reports.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
)

// TransactionEvent is delivered to subscribers after a committed change.
// For deletions Transaction is the record as it was before removal.
type TransactionEvent struct {
	Kind        EventKind
	Transaction models.Transaction

	// Previous is the record before an update. Nil for creates and deletes.
	Previous *models.Transaction
}

// eventFor returns the event a subscriber with filter f should see, if any.
// An update that moves a record out of f reads as a deletion of the old record.
func (f TransactionFilter) eventFor(ev TransactionEvent) (TransactionEvent, bool) {
	if f.Match(&ev.Transaction) {
		return ev, true
	}
	if ev.Kind == EventUpdated && ev.Previous != nil && f.Match(ev.Previous) {
		return TransactionEvent{Kind: EventDeleted, Transaction: *ev.Previous}, true
	}
	return TransactionEvent{}, false
}
