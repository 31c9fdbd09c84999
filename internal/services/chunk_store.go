package services

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

var (
	ErrChunkUploadNotFound = errors.New("chunk upload not found or expired")
	ErrChunkOutOfOrder     = errors.New("chunk index out of range")
)

// ChunkStore assembles large template uploads sent in parts. Entries expire
// after a TTL so abandoned uploads do not accumulate.
type ChunkStore interface {
	Put(uploadID string, index, total int, data []byte) error
	// Assemble returns the concatenated payload once all chunks arrived,
	// removing the entry. Returns (nil, false, nil) while chunks are missing.
	Assemble(uploadID string) ([]byte, bool, error)
	Close()
}

type chunkUpload struct {
	chunks   [][]byte
	received int
	expires  time.Time
}

type chunkStore struct {
	mu      sync.Mutex
	uploads map[string]*chunkUpload
	ttl     time.Duration
	done    chan struct{}
}

// NewChunkStore creates a TTL-keyed chunk store with a background sweep.
func NewChunkStore(ttl time.Duration) ChunkStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	s := &chunkStore{
		uploads: make(map[string]*chunkUpload),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *chunkStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for id, upload := range s.uploads {
				if now.After(upload.expires) {
					delete(s.uploads, id)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// Put stores one chunk, creating the entry on the first chunk seen.
func (s *chunkStore) Put(uploadID string, index, total int, data []byte) error {
	if total <= 0 || index < 0 || index >= total {
		return ErrChunkOutOfOrder
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, ok := s.uploads[uploadID]
	if !ok {
		upload = &chunkUpload{chunks: make([][]byte, total)}
		s.uploads[uploadID] = upload
	}
	if total != len(upload.chunks) {
		return ErrChunkOutOfOrder
	}
	if upload.chunks[index] == nil {
		upload.received++
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	upload.chunks[index] = buf
	upload.expires = time.Now().Add(s.ttl)
	return nil
}

// Assemble concatenates a completed upload and removes it.
func (s *chunkStore) Assemble(uploadID string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, ok := s.uploads[uploadID]
	if !ok {
		return nil, false, ErrChunkUploadNotFound
	}
	if upload.received < len(upload.chunks) {
		return nil, false, nil
	}

	var buf bytes.Buffer
	for _, chunk := range upload.chunks {
		buf.Write(chunk)
	}
	delete(s.uploads, uploadID)
	return buf.Bytes(), true, nil
}

// Close stops the sweep goroutine.
func (s *chunkStore) Close() {
	close(s.done)
}
