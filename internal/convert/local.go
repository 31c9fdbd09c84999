package convert

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	gopresentation "github.com/VantageDataChat/GoPPT"
	"github.com/sirupsen/logrus"
)

// localConverter renders slides in-process. No external service, no
// headless browser; good enough for previews and the default backend.
type localConverter struct {
	width  int
	logger *logrus.Logger
}

// NewLocalConverter creates a Converter that rasterizes slides locally at
// the given pixel width (0 uses the 960px default).
func NewLocalConverter(width int, logger *logrus.Logger) Converter {
	return &localConverter{width: width, logger: logger}
}

func (c *localConverter) Convert(ctx context.Context, filePath, outputDir string) ([]SlideImage, error) {
	reader, err := gopresentation.NewReader(gopresentation.ReaderPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("presentation reader: %w", err)
	}
	pres, err := reader.Read(filePath)
	if err != nil {
		return nil, fmt.Errorf("read presentation: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	opts := gopresentation.DefaultRenderOptions()
	if c.width > 0 {
		opts.Width = c.width
	}

	count := pres.GetSlideCount()
	slides := make([]SlideImage, 0, count)
	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := pres.SlideToImage(i, opts)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"file":        filePath,
				"slide_index": i,
			}).WithError(err).Warn("slide render failed")
			slides = append(slides, SlideImage{SlideIndex: i})
			continue
		}

		imagePath := filepath.Join(outputDir, fmt.Sprintf("slide_%d.png", i))
		f, err := os.Create(imagePath)
		if err != nil {
			return nil, fmt.Errorf("create slide image: %w", err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			os.Remove(imagePath)
			return nil, fmt.Errorf("encode slide %d: %w", i, err)
		}
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("close slide image: %w", err)
		}

		bounds := img.Bounds()
		slides = append(slides, SlideImage{
			SlideIndex: i,
			ImagePath:  imagePath,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		})
	}
	return slides, nil
}
