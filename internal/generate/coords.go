package generate

import (
	"errors"
	"fmt"
)

// Field positions are authored against a fixed-size slide preview in the UI.
const (
	ReferenceWidthPx  = 960.0
	ReferenceHeightPx = 540.0
)

// Default box for fields saved without an explicit size, in reference pixels.
const (
	defaultFieldWidthPx  = 200.0
	defaultFieldHeightPx = 40.0
)

var ErrInvalidCoordinate = errors.New("coordinates must be non-negative")

// Box is a rectangle in target-document units (inches for PPTX, points
// for PDF).
type Box struct {
	X, Y, W, H float64
}

// Mapper converts reference-pixel coordinates into target units. The scale
// is linear, so it serves both backends: construct it from the target page
// size and the ratios fall out.
type Mapper struct {
	scaleX float64
	scaleY float64
}

// NewMapper builds a Mapper for a page of the given size in target units.
func NewMapper(pageWidth, pageHeight float64) Mapper {
	return Mapper{
		scaleX: pageWidth / ReferenceWidthPx,
		scaleY: pageHeight / ReferenceHeightPx,
	}
}

// MapBox converts a pixel position and optional pixel size into a target
// box. Nil width/height fall back to the default field box. Floating-point
// precision is preserved; rounding here would drift from the UI layout.
func (m Mapper) MapBox(x, y float64, width, height *float64) (Box, error) {
	if x < 0 || y < 0 {
		return Box{}, fmt.Errorf("position (%v, %v): %w", x, y, ErrInvalidCoordinate)
	}

	w := defaultFieldWidthPx
	if width != nil {
		w = *width
	}
	h := defaultFieldHeightPx
	if height != nil {
		h = *height
	}

	return Box{
		X: x * m.scaleX,
		Y: y * m.scaleY,
		W: w * m.scaleX,
		H: h * m.scaleY,
	}, nil
}
