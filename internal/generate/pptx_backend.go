package generate

import (
	"fmt"
	"io"
	"os"

	"github.com/deckfill/deckfill/internal/pptx"
)

// fieldFontPt is the fixed run size for text fields in both backends.
const fieldFontPt = 14

type pptxCanvas struct {
	pres *pptx.Presentation
}

// NewPPTXCanvas creates a DocumentCanvas producing a .pptx artifact.
// Units are inches on a 10 x 5.625in slide.
func NewPPTXCanvas() DocumentCanvas {
	return &pptxCanvas{pres: pptx.New()}
}

func (c *pptxCanvas) AddSlide() SlideCanvas {
	return &pptxSlide{slide: c.pres.AddSlide()}
}

func (c *pptxCanvas) Write(w io.Writer) error {
	return c.pres.Write(w)
}

type pptxSlide struct {
	slide *pptx.Slide
}

func (s *pptxSlide) PageSize() (float64, float64) {
	return pptx.SlideWidthInches, pptx.SlideHeightInches
}

func (s *pptxSlide) SetBackground(imagePath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("read background: %w", err)
	}
	format, err := sniffImageFormat(data)
	if err != nil {
		return err
	}
	s.slide.AddBackground(data, format)
	return nil
}

func (s *pptxSlide) DrawText(text string, box Box) error {
	s.slide.AddTextBox(text, toPptxBox(box), pptx.TextOptions{SizePt: fieldFontPt})
	return nil
}

func (s *pptxSlide) DrawWarning(text string, box Box) error {
	s.slide.AddTextBox(text, toPptxBox(box), pptx.TextOptions{SizePt: fieldFontPt, Color: "FF0000", Bold: true})
	return nil
}

func (s *pptxSlide) DrawCheckmark(box Box) error {
	// Scale the glyph to the box height; 72pt per inch.
	size := box.H * 72 * 0.75
	if size < 8 {
		size = 8
	} else if size > 36 {
		size = 36
	}
	s.slide.AddTextBox("✔", toPptxBox(box), pptx.TextOptions{SizePt: size})
	return nil
}

func (s *pptxSlide) DrawImage(data []byte, format string, box Box) error {
	s.slide.AddPicture(data, format, toPptxBox(box))
	return nil
}

func toPptxBox(box Box) pptx.Box {
	return pptx.Box{X: box.X, Y: box.Y, W: box.W, H: box.H}
}
