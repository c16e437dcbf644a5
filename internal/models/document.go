package models

import (
	"strconv"
	"strings"
	"time"
)

// DocumentKind identifies one of the four printable document types.
type DocumentKind string

const (
	KindDevis          DocumentKind = "devis"
	KindFacture        DocumentKind = "facture"
	KindBonDeCommande  DocumentKind = "bon_de_commande"
	KindBonDeLivraison DocumentKind = "bon_de_livraison"
)

// DefaultTVARate is the TVA percentage a new document starts with.
const DefaultTVARate = 20

// KindRules groups the per-kind display and computation rules in one place
// so they are never re-derived by scattered kind checks.
type KindRules struct {
	AppliesTax          bool
	ShowsClientIdentity bool
}

var kindRules = map[DocumentKind]KindRules{
	KindDevis:          {AppliesTax: true},
	KindFacture:        {AppliesTax: true, ShowsClientIdentity: true},
	KindBonDeCommande:  {},
	KindBonDeLivraison: {},
}

// Rules returns the rule set for the kind. Unknown kinds get the zero rules
// (no tax, no client block), matching how an unknown form value should degrade.
func (k DocumentKind) Rules() KindRules {
	return kindRules[k]
}

// Valid reports whether k is one of the four known kinds.
func (k DocumentKind) Valid() bool {
	_, ok := kindRules[k]
	return ok
}

// ParseKind maps a form value to a DocumentKind, defaulting to devis.
func ParseKind(s string) DocumentKind {
	k := DocumentKind(s)
	if !k.Valid() {
		return KindDevis
	}
	return k
}

// ParseAmount parses a free-text numeric field. Empty or non-numeric input
// yields 0 so invalid form values never propagate past this boundary.
func ParseAmount(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// LineItem is one row of a document. Quantity and UnitPrice are kept as the
// raw text the form produced; Total is computed once at construction.
type LineItem struct {
	Designation string
	Quantity    string
	UnitPrice   string
	Total       float64
}

// NewLineItem builds a line item, computing its total from the raw inputs.
func NewLineItem(designation, quantity, unitPrice string) LineItem {
	return LineItem{
		Designation: designation,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       ParseAmount(quantity) * ParseAmount(unitPrice),
	}
}

// Document carries everything needed to render and export one document.
// All fields are always present; fields a kind does not use are simply not
// rendered (see KindRules), never cleared.
type Document struct {
	Kind          DocumentKind
	Number        string
	Date          time.Time
	ClientName    string // affiché uniquement pour les factures
	ClientAddress string
	ClientCity    string
	Items         []LineItem
	TVARate       float64 // pourcentage
	RemiseRate    float64 // pourcentage
	IncludeFooter bool
}

// NewDocument creates a document with session defaults: today's date, one
// blank line item and the default TVA rate.
func NewDocument(kind DocumentKind) Document {
	return Document{
		Kind:          kind,
		Date:          time.Now(),
		Items:         []LineItem{{}},
		TVARate:       DefaultTVARate,
		IncludeFooter: true,
	}
}

// WithItem returns a copy of d with the item at index i replaced. The item
// slice is copied so the receiver is never mutated in place. Out-of-range
// indexes return d unchanged.
func (d Document) WithItem(i int, item LineItem) Document {
	if i < 0 || i >= len(d.Items) {
		return d
	}
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	items[i] = item
	d.Items = items
	return d
}

// WithItemAdded returns a copy of d with one blank item appended.
func (d Document) WithItemAdded() Document {
	items := make([]LineItem, len(d.Items), len(d.Items)+1)
	copy(items, d.Items)
	d.Items = append(items, LineItem{})
	return d
}

// WithItemRemoved returns a copy of d without the item at index i. The last
// remaining item cannot be removed; a document always has at least one row.
func (d Document) WithItemRemoved(i int) Document {
	if i < 0 || i >= len(d.Items) || len(d.Items) == 1 {
		return d
	}
	items := make([]LineItem, 0, len(d.Items)-1)
	items = append(items, d.Items[:i]...)
	items = append(items, d.Items[i+1:]...)
	d.Items = items
	return d
}
