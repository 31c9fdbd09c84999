package generate

import "io"

// SlideCanvas is one slide's drawing surface. Coordinates are in the
// canvas's own units; callers map reference pixels through a Mapper built
// from PageSize.
type SlideCanvas interface {
	// PageSize returns the slide dimensions in target units.
	PageSize() (width, height float64)
	// SetBackground draws a full-bleed background image from a file.
	SetBackground(imagePath string) error
	// DrawText draws a 14pt text run anchored at the box.
	DrawText(text string, box Box) error
	// DrawWarning draws visible red text for degraded content.
	DrawWarning(text string, box Box) error
	// DrawCheckmark draws a checked glyph filling the box.
	DrawCheckmark(box Box) error
	// DrawImage draws image bytes ("png" or "jpeg") into the box.
	DrawImage(data []byte, format string, box Box) error
}

// DocumentCanvas builds a whole artifact slide by slide.
type DocumentCanvas interface {
	AddSlide() SlideCanvas
	// Write serializes the finished document.
	Write(w io.Writer) error
}
