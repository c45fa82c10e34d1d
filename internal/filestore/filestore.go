// Package filestore holds patient x-ray images. The document store only
// carries JSON, so binary images live behind this contract; deployments can
// back it with a bucket while tests and single-node setups use the in-memory
// implementation.
package filestore

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrFileNotFound = errors.New("file not found")

// File is a stored image with its content.
type File struct {
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
	Data        []byte    `json:"-"`
}

// Info is the listing view of a file, without its content.
type Info struct {
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Interface stores files grouped under a patient key.
type Interface interface {
	Save(ctx context.Context, patientKey, name, contentType string, data []byte) error
	List(ctx context.Context, patientKey string) ([]Info, error)
	Get(ctx context.Context, patientKey, name string) (*File, error)
	Delete(ctx context.Context, patientKey, name string) error
	// DeleteAll removes every file under a patient key. Used when the
	// patient record itself is deleted.
	DeleteAll(ctx context.Context, patientKey string) error
}

// Memory keeps files in process memory.
type Memory struct {
	mu    sync.RWMutex
	files map[string]map[string]File
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]map[string]File)}
}

func (m *Memory) Save(ctx context.Context, patientKey, name, contentType string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bucket, ok := m.files[patientKey]
	if !ok {
		bucket = make(map[string]File)
		m.files[patientKey] = bucket
	}
	stored := make([]byte, len(data))
	copy(stored, data)
	bucket[name] = File{
		Name:        name,
		ContentType: contentType,
		Size:        len(data),
		UploadedAt:  time.Now().UTC(),
		Data:        stored,
	}
	return nil
}

func (m *Memory) List(ctx context.Context, patientKey string) ([]Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bucket := m.files[patientKey]
	infos := make([]Info, 0, len(bucket))
	for _, f := range bucket {
		infos = append(infos, Info{
			Name:        f.Name,
			ContentType: f.ContentType,
			Size:        f.Size,
			UploadedAt:  f.UploadedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

func (m *Memory) Get(ctx context.Context, patientKey, name string) (*File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.files[patientKey][name]
	if !ok {
		return nil, ErrFileNotFound
	}
	return &f, nil
}

func (m *Memory) Delete(ctx context.Context, patientKey, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[patientKey][name]; !ok {
		return ErrFileNotFound
	}
	delete(m.files[patientKey], name)
	return nil
}

func (m *Memory) DeleteAll(ctx context.Context, patientKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, patientKey)
	return nil
}

var _ Interface = (*Memory)(nil)
