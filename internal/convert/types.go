package convert

import "context"

// SlideImage is one rasterized slide produced by a Converter. ImagePath may
// be empty when rendering that slide failed; the index is still reported so
// the slide arena stays contiguous.
type SlideImage struct {
	SlideIndex int
	ImagePath  string
	Width      int
	Height     int
}

// Converter rasterizes a presentation file into per-slide images under
// outputDir. Implementations return slides ordered by SlideIndex.
type Converter interface {
	Convert(ctx context.Context, filePath, outputDir string) ([]SlideImage, error)
}
