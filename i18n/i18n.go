// Package i18n provides the French-first label table used by the editor and
// the document templates, plus conversion of monetary amounts into French
// words for the "arrêté à la somme de" sentence.
package i18n

import "strings"

var translations = map[string]map[string]string{
	"fr": {
		"kind.devis":            "DEVIS",
		"kind.facture":          "FACTURE",
		"kind.bon_de_commande":  "BON DE COMMANDE",
		"kind.bon_de_livraison": "BON DE LIVRAISON",

		"phrase.devis":            "devis",
		"phrase.facture":          "facture",
		"phrase.bon_de_commande":  "bon de commande",
		"phrase.bon_de_livraison": "bon de livraison",

		"field.designation": "Désignation",
		"field.quantity":    "Quantité",
		"field.unit":        "Unité DH",
		"field.price":       "Prix",
		"field.number":      "Numéro",
		"field.date":        "Date",
		"field.client_name": "Nom du client",
		"field.address":     "Adresse",
		"field.city":        "Ville",

		"total.ht":     "TOTAL HT",
		"total.remise": "Remise",
		"total.tva":    "TVA",
		"total.ttc":    "TOTAL TTC",

		"action.export":      "Télécharger le PDF",
		"action.add_item":    "Ajouter une ligne",
		"action.remove_item": "Supprimer",

		"error.export": "Erreur lors de la génération du PDF",
	},
	"en": {
		"kind.devis":            "QUOTE",
		"kind.facture":          "INVOICE",
		"kind.bon_de_commande":  "PURCHASE ORDER",
		"kind.bon_de_livraison": "DELIVERY NOTE",

		"field.designation": "Description",
		"field.quantity":    "Quantity",
		"field.unit":        "Unit price",
		"field.price":       "Amount",

		"action.export": "Download PDF",
	},
}

// DetectLanguage picks a supported language from an Accept-Language header,
// defaulting to French.
func DetectLanguage(header string) string {
	h := strings.ToLower(header)
	if strings.HasPrefix(h, "en") {
		return "en"
	}
	return "fr"
}

// T translates a label code. Unknown languages fall back to French; unknown
// codes fall back to the code itself so missing labels stay visible.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations["fr"][code]; ok {
		return s
	}
	return code
}
