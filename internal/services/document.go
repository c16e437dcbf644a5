package services

import (
	"github.com/manteauvert/go-papiers/internal/models"
)

// Totals carries the derived amounts of a document. They are recomputed on
// every read and never stored on the document itself.
type Totals struct {
	TotalHT      float64
	RemiseAmount float64
	TVAAmount    float64
	TotalTTC     float64
}

// DocumentService encapsulates document-level business logic.
type DocumentService struct{}

func NewDocumentService() *DocumentService { return &DocumentService{} }

// ComputeTotals computes HT, remise, TVA, and TTC amounts for a document.
// TVA applies only to kinds whose rules say so (devis and facture); for the
// other kinds the stored rate is retained but ignored. All arithmetic is
// plain float64; rounding happens at display time only.
func (s *DocumentService) ComputeTotals(doc models.Document) Totals {
	var totalHT float64
	for _, it := range doc.Items {
		totalHT += it.Total
	}
	remise := totalHT * (doc.RemiseRate / 100)
	taxable := totalHT - remise

	var tva float64
	if doc.Kind.Rules().AppliesTax {
		tva = taxable * (doc.TVARate / 100)
	}

	return Totals{
		TotalHT:      totalHT,
		RemiseAmount: remise,
		TVAAmount:    tva,
		TotalTTC:     taxable + tva,
	}
}
