package export

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/manteauvert/go-papiers/internal/models"
)

// Filename composes "{kind}_{number}_{date}.pdf". Document numbers and
// French dates both carry slashes, which are invalid in filenames, so every
// slash becomes a hyphen.
func Filename(doc models.Document) string {
	number := strings.ReplaceAll(doc.Number, "/", "-")
	date := strings.ReplaceAll(doc.Date.Format("02/01/2006"), "/", "-")
	return fmt.Sprintf("%s_%s_%s.pdf", doc.Kind, number, date)
}

// pageOffsets returns the vertical position of the image on each page. The
// first page places it at the top margin; every further page re-places the
// whole image shifted up by the height already consumed, letting the page
// boundary clip the part shown before. The first page consumes the span
// from the top margin to the bottom edge; later pages a full page height.
func pageOffsets(imgHeight, pageHeight, top float64) []float64 {
	offsets := []float64{top}
	remaining := imgHeight - (pageHeight - top)
	for remaining > 0 {
		offsets = append(offsets, top-(imgHeight-remaining))
		remaining -= pageHeight
	}
	return offsets
}

// buildPDF lays the captured raster onto A4 portrait pages. The image width
// fills the page between the side margins, height follows the aspect ratio,
// and the image is re-placed per page at a negative offset, clipped to the
// physical page.
func buildPDF(img image.Image) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pageW, pageH := pdf.GetPageSize()

	b := img.Bounds()
	imgW := pageW - 2*PageMarginMm
	imgH := float64(b.Dy()) * imgW / float64(b.Dx())
	x := (pageW - imgW) / 2
	top := PageMarginMm

	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("export: encode capture: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", AllowNegativePosition: true}
	pdf.RegisterImageOptionsReader("capture", opts, &png)

	for _, y := range pageOffsets(imgH, pageH, top) {
		pdf.AddPage()
		pdf.ClipRect(0, 0, pageW, pageH, false)
		pdf.ImageOptions("capture", x, y, imgW, imgH, false, opts, 0, "")
		pdf.ClipEnd()
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("export: write pdf: %w", err)
	}
	return out.Bytes(), nil
}
