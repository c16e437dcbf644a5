package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"

	"github.com/manteauvert/go-papiers/i18n"
	"github.com/manteauvert/go-papiers/internal/config"
	"github.com/manteauvert/go-papiers/internal/export"
	"github.com/manteauvert/go-papiers/internal/httpx"
	"github.com/manteauvert/go-papiers/internal/models"
	"github.com/manteauvert/go-papiers/internal/render"
	"github.com/manteauvert/go-papiers/internal/services"
	"github.com/manteauvert/go-papiers/internal/validation"
	"github.com/manteauvert/go-papiers/internal/view"
)

// DocumentHandler serves the editor page and its preview, totals and export
// endpoints. The form posts the full document state on every request; there
// is no server-side session or storage.
type DocumentHandler struct {
	svc      *services.DocumentService
	exporter *export.Exporter
	cfg      config.Config
	log      *logrus.Logger
}

func NewDocumentHandler(svc *services.DocumentService, exporter *export.Exporter, cfg config.Config, log *logrus.Logger) *DocumentHandler {
	return &DocumentHandler{svc: svc, exporter: exporter, cfg: cfg, log: log}
}

type totalsResponse struct {
	TotalHT       float64 `json:"total_ht"`
	RemiseAmount  float64 `json:"remise_amount"`
	TVAAmount     float64 `json:"tva_amount"`
	TotalTTC      float64 `json:"total_ttc"`
	AmountInWords string  `json:"amount_in_words"`
}

// Edit renders the editor with a fresh document of the requested kind.
func (h *DocumentHandler) Edit(w http.ResponseWriter, r *http.Request) {
	kind := models.ParseKind(r.URL.Query().Get("kind"))
	doc := models.NewDocument(kind)
	lang := i18n.DetectLanguage(r.Header.Get("Accept-Language"))
	data := map[string]any{
		"Doc":    doc,
		"Totals": h.svc.ComputeTotals(doc),
		"Kinds": []models.DocumentKind{
			models.KindDevis, models.KindFacture,
			models.KindBonDeCommande, models.KindBonDeLivraison,
		},
	}
	if err := view.Render(w, h.cfg.TemplatesDir, "documents/edit.html", lang, data); err != nil {
		h.log.WithError(err).Error("render editor")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Totals recomputes the derived amounts for the posted form state.
func (h *DocumentHandler) Totals(w http.ResponseWriter, r *http.Request) {
	doc, violations := h.parseDocument(r)
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_document", violations)
		return
	}
	totals := h.svc.ComputeTotals(doc)
	resp := totalsResponse{
		TotalHT:      totals.TotalHT,
		RemiseAmount: totals.RemiseAmount,
		TVAAmount:    totals.TVAAmount,
		TotalTTC:     totals.TotalTTC,
	}
	// A malformed total (negative via a pathological remise) just leaves the
	// sentence blank; the numbers are still returned.
	if words, err := i18n.AmountInWords(totals.TotalTTC); err == nil {
		resp.AmountInWords = words
	}
	httpx.JSON(w, http.StatusOK, resp)
}

// Preview rasterizes the posted document at screen scale and returns a PNG.
func (h *DocumentHandler) Preview(w http.ResponseWriter, r *http.Request) {
	doc, violations := h.parseDocument(r)
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_document", violations)
		return
	}
	img, err := render.NewPreview(h.svc, doc).Render(r.Context(), export.A4WidthPx, 1)
	if err != nil {
		h.log.WithError(err).Error("render preview")
		httpx.JSONError(w, http.StatusInternalServerError, "render_error", nil)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		h.log.WithError(err).Error("encode preview")
	}
}

// Export runs the export pipeline on the posted document and streams the
// resulting PDF as a download. The preview surface is published for the
// duration of the capture, mirroring how the on-screen preview exists when
// the user triggers an export.
func (h *DocumentHandler) Export(w http.ResponseWriter, r *http.Request) {
	doc, violations := h.parseDocument(r)
	if !violations.Empty() {
		httpx.JSONError(w, http.StatusUnprocessableEntity, "invalid_document", violations)
		return
	}

	render.Register(render.PreviewSurfaceID, render.NewPreview(h.svc, doc))
	defer render.Unregister(render.PreviewSurfaceID)

	var buf bytes.Buffer
	if err := h.exporter.ExportTo(r.Context(), doc, &buf); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "export_error", i18n.T("fr", "error.export"))
		return
	}
	httpx.Attachment(w, export.Filename(doc), "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.log.WithError(err).Error("write export response")
	}
}

// parseDocument rebuilds a Document from the posted form. Numeric item
// fields stay raw; totals are derived through the zero-fallback parser.
func (h *DocumentHandler) parseDocument(r *http.Request) (models.Document, validation.Violations) {
	violations := validation.Violations{}
	if err := r.ParseForm(); err != nil {
		violations["form"] = "unreadable"
		return models.Document{}, violations
	}

	doc := models.Document{
		Kind:          models.ParseKind(r.Form.Get("kind")),
		Number:        r.Form.Get("number"),
		ClientName:    r.Form.Get("client_name"),
		ClientAddress: r.Form.Get("client_address"),
		ClientCity:    r.Form.Get("client_city"),
		TVARate:       models.ParseAmount(r.Form.Get("tva_rate")),
		RemiseRate:    models.ParseAmount(r.Form.Get("remise_rate")),
		IncludeFooter: r.Form.Get("include_footer") != "",
	}

	doc.Date = time.Now()
	if raw := r.Form.Get("date"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			doc.Date = d
		}
	}

	designations := r.Form["designation"]
	quantities := r.Form["quantity"]
	prices := r.Form["unit_price"]
	for i := range designations {
		var qty, price string
		if i < len(quantities) {
			qty = quantities[i]
		}
		if i < len(prices) {
			price = prices[i]
		}
		doc.Items = append(doc.Items, models.NewLineItem(designations[i], qty, price))
	}
	if len(doc.Items) == 0 {
		doc.Items = []models.LineItem{{}}
	}

	validation.Rate("tva_rate", doc.TVARate, violations)
	validation.Rate("remise_rate", doc.RemiseRate, violations)
	return doc, violations
}
