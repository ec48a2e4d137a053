package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// DiskStorage кладёт файлы в локальный каталог uploads.
type DiskStorage struct {
	dir string
}

func NewDiskStorage(dir string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %s: %w", dir, err)
	}
	log.Printf("Uploads dir: %s", dir)
	return &DiskStorage{dir: dir}, nil
}

func (s *DiskStorage) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error {
	path := filepath.Join(s.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func (s *DiskStorage) Remove(ctx context.Context, name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *DiskStorage) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, name))
}

// Dir возвращает каталог для статической раздачи.
func (s *DiskStorage) Dir() string {
	return s.dir
}
