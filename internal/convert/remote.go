package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// conversionTimeout bounds the whole remote conversion call.
	conversionTimeout = 60 * time.Second
	// downloadTimeout bounds each image download.
	downloadTimeout = 2 * time.Second
	// downloadBatchSize caps concurrent image downloads.
	downloadBatchSize = 3
)

// remoteConverter offloads rasterization to a ConvertAPI-compatible HTTP
// service. Used when local rendering fidelity is not enough.
type remoteConverter struct {
	apiURL string
	secret string
	client *http.Client
	logger *logrus.Logger
}

// NewRemoteConverter creates a Converter backed by an external conversion
// API at apiURL.
func NewRemoteConverter(apiURL, secret string, logger *logrus.Logger) Converter {
	return &remoteConverter{
		apiURL: apiURL,
		secret: secret,
		client: &http.Client{Timeout: conversionTimeout},
		logger: logger,
	}
}

type remoteFile struct {
	FileName string `json:"FileName"`
	URL      string `json:"Url"`
}

type remoteResponse struct {
	Files []remoteFile `json:"Files"`
}

func (c *remoteConverter) Convert(ctx context.Context, filePath, outputDir string) ([]SlideImage, error) {
	resp, err := c.submit(ctx, filePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	slides := make([]SlideImage, len(resp.Files))
	for i := range slides {
		slides[i] = SlideImage{SlideIndex: i}
	}

	// Download in small batches; a failed download leaves a gap the
	// composer degrades over instead of failing the import.
	for start := 0; start < len(resp.Files); start += downloadBatchSize {
		end := start + downloadBatchSize
		if end > len(resp.Files) {
			end = len(resp.Files)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(index int, file remoteFile) {
				defer wg.Done()
				imagePath := filepath.Join(outputDir, fmt.Sprintf("slide_%d.png", index))
				width, height, err := c.download(ctx, file.URL, imagePath)
				if err != nil {
					c.logger.WithFields(logrus.Fields{
						"slide_index": index,
						"url":         file.URL,
					}).WithError(err).Warn("slide image download failed")
					return
				}
				slides[index] = SlideImage{
					SlideIndex: index,
					ImagePath:  imagePath,
					Width:      width,
					Height:     height,
				}
			}(i, resp.Files[i])
		}
		wg.Wait()
	}
	return slides, nil
}

// submit posts the presentation file and decodes the file list response.
func (c *remoteConverter) submit(ctx context.Context, filePath string) (*remoteResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read presentation: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("File", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	url := fmt.Sprintf("%s/convert/pptx/to/png?Secret=%s", c.apiURL, c.secret)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("conversion request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("conversion API returned %d: %s", resp.StatusCode, payload)
	}

	var decoded remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode conversion response: %w", err)
	}
	return &decoded, nil
}

// download fetches one rendered slide image and reports its dimensions.
func (c *remoteConverter) download(ctx context.Context, url, imagePath string) (int, int, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("download returned %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	if err := os.WriteFile(imagePath, data, 0644); err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
