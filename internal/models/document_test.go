package models

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"empty", "", 0},
		{"spaces", "   ", 0},
		{"integer", "3", 3},
		{"decimal", "2.5", 2.5},
		{"padded", " 12.50 ", 12.5},
		{"garbage", "abc", 0},
		{"trailing garbage", "3x", 0},
		{"negative", "-4", -4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.raw); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewLineItemTotal(t *testing.T) {
	it := NewLineItem("Ciment", "3", "45.50")
	if it.Total != 3*45.50 {
		t.Fatalf("Total = %v, want %v", it.Total, 3*45.50)
	}
	// Either field invalid zeroes the total.
	if got := NewLineItem("Sable", "x", "10").Total; got != 0 {
		t.Fatalf("invalid quantity: Total = %v, want 0", got)
	}
	if got := NewLineItem("Sable", "10", "").Total; got != 0 {
		t.Fatalf("empty price: Total = %v, want 0", got)
	}
}

func TestKindRules(t *testing.T) {
	if !KindDevis.Rules().AppliesTax {
		t.Errorf("devis should apply tax")
	}
	if !KindFacture.Rules().AppliesTax {
		t.Errorf("facture should apply tax")
	}
	if KindBonDeCommande.Rules().AppliesTax {
		t.Errorf("bon de commande should not apply tax")
	}
	if KindBonDeLivraison.Rules().AppliesTax {
		t.Errorf("bon de livraison should not apply tax")
	}
	if !KindFacture.Rules().ShowsClientIdentity {
		t.Errorf("facture should show client identity")
	}
	for _, k := range []DocumentKind{KindDevis, KindBonDeCommande, KindBonDeLivraison} {
		if k.Rules().ShowsClientIdentity {
			t.Errorf("%s should not show client identity", k)
		}
	}
}

func TestParseKind(t *testing.T) {
	if got := ParseKind("facture"); got != KindFacture {
		t.Errorf("ParseKind(facture) = %s", got)
	}
	if got := ParseKind("nonsense"); got != KindDevis {
		t.Errorf("unknown kind should default to devis, got %s", got)
	}
}

func TestNewDocumentDefaults(t *testing.T) {
	d := NewDocument(KindDevis)
	if len(d.Items) != 1 {
		t.Fatalf("expected 1 blank item, got %d", len(d.Items))
	}
	if d.TVARate != DefaultTVARate {
		t.Errorf("TVARate = %v, want %v", d.TVARate, float64(DefaultTVARate))
	}
	if d.Date.IsZero() {
		t.Errorf("expected date set to today")
	}
	if !d.IncludeFooter {
		t.Errorf("expected footer enabled by default")
	}
}

func TestWithItemDoesNotMutateReceiver(t *testing.T) {
	d := NewDocument(KindDevis)
	d2 := d.WithItem(0, NewLineItem("Gravier", "2", "100"))
	if d.Items[0].Designation != "" {
		t.Fatalf("receiver mutated: %+v", d.Items[0])
	}
	if d2.Items[0].Total != 200 {
		t.Fatalf("replacement not applied: %+v", d2.Items[0])
	}
}

func TestWithItemAddedAndRemoved(t *testing.T) {
	d := NewDocument(KindDevis).WithItemAdded().WithItemAdded()
	if len(d.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(d.Items))
	}
	d = d.WithItemRemoved(1)
	if len(d.Items) != 2 {
		t.Fatalf("expected 2 items after removal, got %d", len(d.Items))
	}
	// The last item can never be removed.
	d = d.WithItemRemoved(0).WithItemRemoved(0)
	if len(d.Items) != 1 {
		t.Fatalf("expected 1 item to remain, got %d", len(d.Items))
	}
}
