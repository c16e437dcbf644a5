package render

import (
	"context"
	"image"
	"testing"

	"github.com/manteauvert/go-papiers/internal/models"
	"github.com/manteauvert/go-papiers/internal/services"
)

func TestRegistry(t *testing.T) {
	if _, ok := Lookup("missing-surface"); ok {
		t.Fatalf("expected miss for unregistered id")
	}
	p := NewPreview(services.NewDocumentService(), models.NewDocument(models.KindDevis))
	Register(PreviewSurfaceID, p)
	defer Unregister(PreviewSurfaceID)
	got, ok := Lookup(PreviewSurfaceID)
	if !ok || got != Surface(p) {
		t.Fatalf("expected registered surface back")
	}
	Unregister(PreviewSurfaceID)
	if _, ok := Lookup(PreviewSurfaceID); ok {
		t.Fatalf("expected miss after unregister")
	}
}

func testDocument() models.Document {
	doc := models.NewDocument(models.KindFacture)
	doc.Number = "022/2026"
	doc.ClientName = "STE EXEMPLE"
	doc = doc.WithItem(0, models.NewLineItem("Ciment", "10", "65"))
	return doc
}

func TestPreviewRenderDimensions(t *testing.T) {
	p := NewPreview(services.NewDocumentService(), testDocument())
	img, err := p.Render(context.Background(), 794, 1.5)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := img.Bounds().Dx(); got != 1191 { // 794 * 1.5
		t.Fatalf("width = %d, want 1191", got)
	}
	if img.Bounds().Dy() <= 0 {
		t.Fatalf("expected positive height")
	}
}

func TestPreviewRenderHasContent(t *testing.T) {
	p := NewPreview(services.NewDocumentService(), testDocument())
	img, err := p.Render(context.Background(), 794, 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !hasNonWhitePixel(img) {
		t.Fatalf("expected rendered content, got a blank canvas")
	}
}

func TestPreviewRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := NewPreview(services.NewDocumentService(), testDocument())
	if _, err := p.Render(ctx, 794, 1); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}

func TestPreviewRenderInvalidSize(t *testing.T) {
	p := NewPreview(services.NewDocumentService(), testDocument())
	if _, err := p.Render(context.Background(), 0, 1); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := p.Render(context.Background(), 794, 0); err == nil {
		t.Fatalf("expected error for zero scale")
	}
}

func hasNonWhitePixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r != 0xffff || g != 0xffff || bl != 0xffff {
				return true
			}
		}
	}
	return false
}
