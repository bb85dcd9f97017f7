package storage

import (
	"context"
	"io/fs"
	"mime/multipart"
	"path"
	"sync"
)

// MockStore menyimpan isi file di memori, untuk unit test service.
type MockStore struct {
	mu      sync.Mutex
	Files   map[string][]byte
	Removed []string
	SaveErr error
}

func NewMockStore() *MockStore {
	return &MockStore{Files: map[string][]byte{}}
}

func (m *MockStore) SaveUpload(ctx context.Context, dir, filename string, fh *multipart.FileHeader) (string, error) {
	return m.SaveBytes(ctx, dir, filename, nil)
}

func (m *MockStore) SaveBytes(_ context.Context, dir, filename string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	p := path.Join("/uploads", dir, filename)
	m.Files[p] = data
	return p, nil
}

func (m *MockStore) Remove(_ context.Context, publicPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Files, publicPath)
	m.Removed = append(m.Removed, publicPath)
	return nil
}

func (m *MockStore) ReadFile(_ context.Context, publicPath string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.Files[publicPath]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *MockStore) Has(publicPath string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Files[publicPath]
	return ok
}
