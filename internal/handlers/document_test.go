package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/manteauvert/go-papiers/internal/config"
	"github.com/manteauvert/go-papiers/internal/export"
	"github.com/manteauvert/go-papiers/internal/models"
	"github.com/manteauvert/go-papiers/internal/services"
)

func testHandler(t *testing.T) *DocumentHandler {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := config.Config{TemplatesDir: "../../templates"}
	cfg.Export.OutputDir = t.TempDir()
	exporter := export.NewExporter(cfg.Export, log, nil)
	return NewDocumentHandler(services.NewDocumentService(), exporter, cfg, log)
}

func postForm(h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func documentForm() url.Values {
	return url.Values{
		"kind":        {"facture"},
		"number":      {"022/2026"},
		"date":        {"2026-09-01"},
		"tva_rate":    {"20"},
		"remise_rate": {"0"},
		"designation": {"Ciment", "Sable"},
		"quantity":    {"10", "4"},
		"unit_price":  {"50", "125"},
	}
}

func TestTotalsEndpoint(t *testing.T) {
	h := testHandler(t)
	w := postForm(h.Totals, documentForm())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp totalsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.TotalHT != 1000 {
		t.Errorf("total_ht = %v, want 1000", resp.TotalHT)
	}
	if resp.TVAAmount != 200 {
		t.Errorf("tva_amount = %v, want 200", resp.TVAAmount)
	}
	if resp.TotalTTC != 1200 {
		t.Errorf("total_ttc = %v, want 1200", resp.TotalTTC)
	}
	if resp.AmountInWords != "Mille deux cents" {
		t.Errorf("amount_in_words = %q", resp.AmountInWords)
	}
}

func TestTotalsRejectsOutOfRangeRate(t *testing.T) {
	h := testHandler(t)
	form := documentForm()
	form.Set("tva_rate", "140")
	w := postForm(h.Totals, form)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
}

func TestExportEndpointStreamsPDF(t *testing.T) {
	h := testHandler(t)
	w := postForm(h.Export, documentForm())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "facture_022-2026_01-09-2026.pdf") {
		t.Errorf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Errorf("body is not a PDF")
	}
}

func TestPreviewEndpointReturnsPNG(t *testing.T) {
	h := testHandler(t)
	w := postForm(h.Preview, documentForm())
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	// PNG signature
	if !strings.HasPrefix(w.Body.String(), "\x89PNG") {
		t.Errorf("body is not a PNG")
	}
}

func TestParseDocument(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(documentForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	doc, violations := h.parseDocument(req)
	if !violations.Empty() {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if doc.Kind != models.KindFacture {
		t.Errorf("kind = %s", doc.Kind)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(doc.Items))
	}
	if doc.Items[0].Total != 500 {
		t.Errorf("first line total = %v, want 500", doc.Items[0].Total)
	}
	if doc.Date.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("date = %s", doc.Date)
	}
	// Footer checkbox absent -> off.
	if doc.IncludeFooter {
		t.Errorf("expected footer off when checkbox absent")
	}
}

func TestParseDocumentBlankItems(t *testing.T) {
	h := testHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("kind=devis"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	doc, _ := h.parseDocument(req)
	if len(doc.Items) != 1 {
		t.Fatalf("expected one blank item, got %d", len(doc.Items))
	}
}
