package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/manteauvert/go-papiers/i18n"
	"github.com/manteauvert/go-papiers/internal/models"
	"github.com/manteauvert/go-papiers/internal/services"
)

// Palette of the printed document.
var (
	inkColor    = color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 0xff}
	borderColor = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	headerBg    = color.RGBA{R: 0xf9, G: 0xfa, B: 0xfb, A: 0xff}
	brandColor  = color.RGBA{R: 0xf9, G: 0x73, B: 0x16, A: 0xff}
	footerColor = color.RGBA{R: 0x37, G: 0x41, B: 0x51, A: 0xff}
)

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
	italicFont  *sfnt.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		if regularFont, fontErr = opentype.Parse(goregular.TTF); fontErr != nil {
			return
		}
		if boldFont, fontErr = opentype.Parse(gobold.TTF); fontErr != nil {
			return
		}
		italicFont, fontErr = opentype.Parse(goitalic.TTF)
	})
	return fontErr
}

// Preview draws a document the way the printed page should look: title,
// company and client blocks, items table, totals, amount in words, footer.
// It renders onto an opaque white canvas so blank regions read as background
// during crop detection.
type Preview struct {
	svc *services.DocumentService
	doc models.Document
}

func NewPreview(svc *services.DocumentService, doc models.Document) *Preview {
	return &Preview{svc: svc, doc: doc}
}

// canvas wraps the target image with scale-aware drawing helpers. All layout
// coordinates are logical pixels; the scale is applied at draw time.
type canvas struct {
	img   *image.RGBA
	scale float64
	faces map[fontKey]font.Face
}

type fontKey struct {
	fnt  *sfnt.Font
	size float64
}

func (c *canvas) px(v float64) int {
	return int(math.Round(v * c.scale))
}

func (c *canvas) face(fnt *sfnt.Font, size float64) (font.Face, error) {
	key := fontKey{fnt: fnt, size: size}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size * c.scale,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	c.faces[key] = f
	return f, nil
}

func (c *canvas) fill(x, y, w, h float64, col color.Color) {
	r := image.Rect(c.px(x), c.px(y), c.px(x+w), c.px(y+h))
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// border strokes a 1-logical-pixel rectangle outline.
func (c *canvas) border(x, y, w, h float64, col color.Color) {
	t := 1.0
	c.fill(x, y, w, t, col)
	c.fill(x, y+h-t, w, t, col)
	c.fill(x, y, t, h, col)
	c.fill(x+w-t, y, t, h, col)
}

func (c *canvas) text(f font.Face, x, y float64, col color.Color, s string) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: f,
		Dot:  fixed.P(c.px(x), c.px(y)),
	}
	d.DrawString(s)
}

func (c *canvas) textWidth(f font.Face, s string) float64 {
	return float64(font.MeasureString(f, s).Ceil()) / c.scale
}

func (c *canvas) textRight(f font.Face, right, y float64, col color.Color, s string) {
	c.text(f, right-c.textWidth(f, s), y, col, s)
}

func (c *canvas) textCenter(f font.Face, center, y float64, col color.Color, s string) {
	c.text(f, center-c.textWidth(f, s)/2, y, col, s)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// rate formats a percentage the way it was typed: no forced decimals.
func rate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Render rasterizes the document at the given logical width, oversampled by
// scale. Layout is deterministic for a given document.
func (p *Preview) Render(ctx context.Context, width int, scale float64) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := loadFonts(); err != nil {
		return nil, fmt.Errorf("render: load fonts: %w", err)
	}
	if width <= 0 || scale <= 0 {
		return nil, fmt.Errorf("render: invalid dimensions %dx%.2f", width, scale)
	}

	doc := p.doc
	totals := p.svc.ComputeTotals(doc)
	rules := doc.Kind.Rules()

	const (
		margin = 32.0
		rowH   = 28.0
	)
	w := float64(width)
	// Generous allocation; the exporter crops trailing white space.
	height := 560.0 + rowH*float64(len(doc.Items))

	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, int(math.Round(w*scale)), int(math.Round(height*scale)))),
		scale: scale,
		faces: map[fontKey]font.Face{},
	}
	draw.Draw(c.img, c.img.Bounds(), image.White, image.Point{}, draw.Src)

	title, err := c.face(boldFont, 22)
	if err != nil {
		return nil, err
	}
	body, err := c.face(regularFont, 13)
	if err != nil {
		return nil, err
	}
	bodyBold, err := c.face(boldFont, 13)
	if err != nil {
		return nil, err
	}
	bodyItalic, err := c.face(italicFont, 13)
	if err != nil {
		return nil, err
	}
	brand, err := c.face(italicFont, 40)
	if err != nil {
		return nil, err
	}

	contentW := w - 2*margin
	y := margin + 24.0

	// Title, centered.
	c.textCenter(title, w/2, y, inkColor, i18n.T("fr", "kind."+string(doc.Kind)))
	y += 44

	// Brand mark on the left, client identity on the right when the kind
	// shows it.
	c.text(brand, margin, y+10, brandColor, "M")
	c.text(bodyBold, margin+34, y+4, brandColor, "ANTEAU VERT")
	if rules.ShowsClientIdentity {
		c.textRight(body, w-margin, y-12, inkColor, "A : "+orDash(doc.ClientName))
		c.textRight(body, w-margin, y+4, inkColor, "Adresse : "+orDash(doc.ClientAddress))
		c.textRight(body, w-margin, y+20, inkColor, "Ville : "+orDash(doc.ClientCity))
	}
	y += 48

	// Company block.
	c.text(body, margin, y, inkColor, "ICE : 00152439000002")
	y += 18
	c.text(body, margin, y, inkColor, "Adresse : NR 23 BLOCK LOT BIRANZARANE BENSEFFAR SEFROU (M)")
	y += 26
	c.text(bodyItalic, margin, y, inkColor,
		fmt.Sprintf("%s / N %s", i18n.T("fr", "kind."+string(doc.Kind)), doc.Number))
	c.textRight(body, w-margin, y, inkColor, "Le "+doc.Date.Format("02/01/2006"))
	y += 24

	// Items table. Column split mirrors the printed layout: designation,
	// quantity, unit price, line total.
	colW := [4]float64{contentW * 0.45, contentW * 0.15, contentW * 0.20, contentW * 0.20}
	colX := [4]float64{margin, margin + colW[0], margin + colW[0] + colW[1], margin + colW[0] + colW[1] + colW[2]}

	drawRow := func(cells [4]string, faces [4]font.Face, bg color.Color) {
		if bg != nil {
			c.fill(margin, y, contentW, rowH, bg)
		}
		baseline := y + rowH - 9
		for i := 0; i < 4; i++ {
			c.border(colX[i], y, colW[i], rowH, borderColor)
			if cells[i] == "" {
				continue
			}
			switch i {
			case 0: // left aligned
				c.text(faces[i], colX[i]+8, baseline, inkColor, cells[i])
			case 3: // right aligned
				c.textRight(faces[i], colX[i]+colW[i]-8, baseline, inkColor, cells[i])
			default: // centered
				c.textCenter(faces[i], colX[i]+colW[i]/2, baseline, inkColor, cells[i])
			}
		}
		y += rowH
	}

	drawRow(
		[4]string{i18n.T("fr", "field.designation"), i18n.T("fr", "field.quantity"), i18n.T("fr", "field.unit"), i18n.T("fr", "field.price")},
		[4]font.Face{bodyItalic, bodyBold, bodyBold, bodyItalic},
		headerBg,
	)
	for _, it := range doc.Items {
		total := "-"
		if it.Total > 0 {
			total = money(it.Total)
		}
		drawRow(
			[4]string{orDash(it.Designation), orDash(it.Quantity), orDash(it.UnitPrice), total},
			[4]font.Face{body, body, body, body},
			nil,
		)
	}

	totalRow := func(label, amount string, f font.Face) {
		c.border(margin, y, colW[0]+colW[1], rowH, borderColor)
		c.border(colX[2], y, colW[2], rowH, borderColor)
		c.border(colX[3], y, colW[3], rowH, borderColor)
		baseline := y + rowH - 9
		c.textCenter(f, colX[2]+colW[2]/2, baseline, inkColor, label)
		c.textRight(f, colX[3]+colW[3]-8, baseline, inkColor, amount)
		y += rowH
	}

	totalRow(i18n.T("fr", "total.ht"), money(totals.TotalHT)+" DH", bodyBold)
	if totals.RemiseAmount > 0 {
		totalRow(fmt.Sprintf("%s %s%%", i18n.T("fr", "total.remise"), rate(doc.RemiseRate)), "-"+money(totals.RemiseAmount)+" DH", body)
	}
	if rules.AppliesTax {
		totalRow(fmt.Sprintf("%s %s%%", i18n.T("fr", "total.tva"), rate(doc.TVARate)), money(totals.TVAAmount)+" DH", body)
	}
	totalRow(i18n.T("fr", "total.ttc"), money(totals.TotalTTC)+" DH", bodyBold)
	y += 24

	// Amount in words. A total outside the converter's contract (it cannot
	// be negative through the form, but rates are free inputs) just drops
	// the sentence.
	if words, err := i18n.AmountInWords(totals.TotalTTC); err == nil {
		phrase := i18n.T("fr", "phrase."+string(doc.Kind))
		c.text(body, margin, y, inkColor, fmt.Sprintf("Le présent %s est arrêté à la somme de :", phrase))
		y += 18
		c.text(bodyBold, margin, y, inkColor, words+" dirhams TTC.")
		y += 18
	}

	if doc.IncludeFooter {
		y += 22
		c.fill(margin, y, contentW, 1, color.RGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff})
		y += 20
		c.text(body, margin, y, footerColor, "ICE : 003642783000046 - RC : 2347 - TP : 57302460")
		y += 16
		c.text(body, margin, y, footerColor, "IF : 53538554 - CNSS : 4657891")
		y += 16
		c.text(body, margin, y, footerColor, "Tél : 06 61 23 45 67 - sefrou.manteauvert@gmail.com")
	}

	return c.img, nil
}
