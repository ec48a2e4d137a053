package services

import (
	"context"
	"io"
)

// BlobStorage абстрагирует хранилище содержимого файлов. Документный
// store хранит только метаданные; байты живут здесь.
type BlobStorage interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, name string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
