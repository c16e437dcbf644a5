package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/manteauvert/go-papiers/i18n"
	"github.com/manteauvert/go-papiers/internal/config"
	"github.com/manteauvert/go-papiers/internal/models"
	"github.com/manteauvert/go-papiers/internal/render"
)

// Notifier is how export failures reach the user. The web layer maps it to
// a flash message; tests use a recording fake.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Exporter runs the capture -> crop -> paginate -> save pipeline.
type Exporter struct {
	cfg      config.ExportConfig
	log      *logrus.Logger
	notifier Notifier
}

func NewExporter(cfg config.ExportConfig, log *logrus.Logger, notifier Notifier) *Exporter {
	if cfg.NearWhiteThreshold == 0 {
		cfg.NearWhiteThreshold = NearWhiteThreshold
	}
	if cfg.CaptureScale <= 0 {
		cfg.CaptureScale = CaptureScale
	}
	return &Exporter{cfg: cfg, log: log, notifier: notifier}
}

// build runs the synchronous part of the pipeline once the capture is done.
func (e *Exporter) build(ctx context.Context, surface render.Surface) ([]byte, error) {
	// Capture is the only suspension point; everything after it runs in one
	// uninterrupted pass.
	raster, err := surface.Render(ctx, A4WidthPx, e.cfg.CaptureScale)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	return buildPDF(cropToContent(raster, e.cfg.NearWhiteThreshold))
}

// ExportTo writes the document PDF to w. The caller owns w, so failures are
// returned as well as logged.
func (e *Exporter) ExportTo(ctx context.Context, doc models.Document, w io.Writer) error {
	surface, ok := render.Lookup(render.PreviewSurfaceID)
	if !ok {
		return fmt.Errorf("export: surface %q not registered", render.PreviewSurfaceID)
	}
	data, err := e.build(ctx, surface)
	if err != nil {
		e.fail(doc, err)
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// Export writes the document PDF into the configured output directory. A
// missing render surface aborts silently: no file, no error. Pipeline
// failures are reported through the notifier and logged; they never bubble
// up, so the caller's session stays usable.
func (e *Exporter) Export(ctx context.Context, doc models.Document) error {
	surface, ok := render.Lookup(render.PreviewSurfaceID)
	if !ok {
		e.log.WithField("surface", render.PreviewSurfaceID).Debug("export: no render target, skipping")
		return nil
	}
	data, err := e.build(ctx, surface)
	if err != nil {
		e.fail(doc, err)
		return nil
	}
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		e.fail(doc, err)
		return nil
	}
	path := filepath.Join(e.cfg.OutputDir, Filename(doc))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		e.fail(doc, err)
		return nil
	}
	e.log.WithFields(logrus.Fields{"file": path, "kind": doc.Kind}).Info("export: document saved")
	return nil
}

func (e *Exporter) fail(doc models.Document, err error) {
	e.log.WithFields(logrus.Fields{
		"kind":   doc.Kind,
		"number": doc.Number,
	}).WithError(err).Error("export: pipeline failed")
	if e.notifier != nil {
		e.notifier.Notify(i18n.T("fr", "error.export"))
	}
}
