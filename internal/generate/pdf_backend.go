package generate

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDF pages mirror the slide geometry at 72 points per inch.
const (
	pdfPageWidthPt  = 720.0
	pdfPageHeightPt = 405.0
)

type pdfCanvas struct {
	pdf      *fpdf.Fpdf
	imgCount int
}

// NewPDFCanvas creates a DocumentCanvas producing a .pdf artifact. Units
// are points on a 720 x 405pt page (the 10 x 5.625in slide).
func NewPDFCanvas() DocumentCanvas {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: pdfPageWidthPt, Ht: pdfPageHeightPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", fieldFontPt)
	return &pdfCanvas{pdf: pdf}
}

func (c *pdfCanvas) AddSlide() SlideCanvas {
	c.pdf.AddPage()
	return &pdfSlide{canvas: c}
}

func (c *pdfCanvas) Write(w io.Writer) error {
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("pdf build: %w", err)
	}
	return c.pdf.Output(w)
}

type pdfSlide struct {
	canvas *pdfCanvas
}

func (s *pdfSlide) PageSize() (float64, float64) {
	return pdfPageWidthPt, pdfPageHeightPt
}

func (s *pdfSlide) SetBackground(imagePath string) error {
	pdf := s.canvas.pdf
	pdf.ImageOptions(imagePath, 0, 0, pdfPageWidthPt, pdfPageHeightPt, false, fpdf.ImageOptions{}, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("background image: %w", err)
	}
	return nil
}

func (s *pdfSlide) DrawText(text string, box Box) error {
	pdf := s.canvas.pdf
	pdf.SetFont("Helvetica", "", fieldFontPt)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(box.X, box.Y)
	pdf.MultiCell(box.W, fieldFontPt*1.2, text, "", "L", false)
	return pdf.Error()
}

func (s *pdfSlide) DrawWarning(text string, box Box) error {
	pdf := s.canvas.pdf
	pdf.SetFont("Helvetica", "B", fieldFontPt)
	pdf.SetTextColor(255, 0, 0)
	pdf.SetXY(box.X, box.Y)
	pdf.MultiCell(box.W, fieldFontPt*1.2, text, "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", fieldFontPt)
	return pdf.Error()
}

// DrawCheckmark strokes a check inside the box; Helvetica has no glyph
// for it in the core encoding.
func (s *pdfSlide) DrawCheckmark(box Box) error {
	pdf := s.canvas.pdf
	pdf.SetDrawColor(0, 0, 0)
	lineW := box.H * 0.12
	if lineW < 1 {
		lineW = 1
	}
	pdf.SetLineWidth(lineW)
	pdf.Line(box.X+box.W*0.15, box.Y+box.H*0.55, box.X+box.W*0.4, box.Y+box.H*0.8)
	pdf.Line(box.X+box.W*0.4, box.Y+box.H*0.8, box.X+box.W*0.85, box.Y+box.H*0.2)
	return pdf.Error()
}

func (s *pdfSlide) DrawImage(data []byte, format string, box Box) error {
	pdf := s.canvas.pdf
	s.canvas.imgCount++
	name := fmt.Sprintf("field-image-%d", s.canvas.imgCount)

	imageType := "PNG"
	if format == "jpeg" {
		imageType = "JPG"
	}
	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	pdf.ImageOptions(name, box.X, box.Y, box.W, box.H, false, opts, 0, "")
	return pdf.Error()
}
