package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"college-api/models"
	"college-api/store"

	"github.com/google/uuid"
)

// ValidationError — отказ до каких-либо побочных эффектов.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

var allowedExtensions = map[string]string{
	".pdf":  "pdf",
	".doc":  "word",
	".docx": "word",
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// idGen выдаёт строго возрастающие идентификаторы на базе Unix-времени
// в миллисекундах. Две записи в одну миллисекунду получают разные id.
type idGen struct {
	mu   sync.Mutex
	last int64
}

func (g *idGen) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMilli()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}

// UploadService реализует конвейеры загрузки и удаления: проверки до
// записи байтов, откат файла при сбое сохранения документа.
type UploadService struct {
	store      *store.Store
	storage    BlobStorage
	cache      *ListingCache
	maxBytes   int64
	pathPrefix string
	ids        idGen
}

func NewUploadService(st *store.Store, storage BlobStorage, cache *ListingCache, maxBytes int64, pathPrefix string) *UploadService {
	return &UploadService{
		store:      st,
		storage:    storage,
		cache:      cache,
		maxBytes:   maxBytes,
		pathPrefix: pathPrefix,
	}
}

// Upload проверяет входящий файл, кладёт байты в хранилище и добавляет
// запись в документ. Ни один байт не пишется до прохождения всех проверок.
func (s *UploadService) Upload(ctx context.Context, subject, module, declaredType string, header *multipart.FileHeader) (models.FileRecord, error) {
	if strings.TrimSpace(subject) == "" || strings.TrimSpace(module) == "" {
		return models.FileRecord{}, &ValidationError{Reason: "subject and module required"}
	}
	// Наборы предметов и модулей закрыты, новые на лету не создаются
	if !models.ValidSubject(subject) {
		return models.FileRecord{}, &ValidationError{Reason: "unknown subject: " + subject}
	}
	if !models.ValidModule(module) {
		return models.FileRecord{}, &ValidationError{Reason: "unknown module: " + module}
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	inferredType, ok := allowedExtensions[ext]
	if !ok {
		return models.FileRecord{}, &ValidationError{Reason: "unsupported file type, only PDF and Word files are allowed"}
	}

	if header.Size > s.maxBytes {
		return models.FileRecord{}, &ValidationError{Reason: fmt.Sprintf("file too large (max %d MB)", s.maxBytes/(1024*1024))}
	}

	src, err := header.Open()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	filename := uniqueFilename(header.Filename, ext)
	if err := s.storage.Save(ctx, filename, src, header.Size, contentTypes[ext]); err != nil {
		return models.FileRecord{}, err
	}

	fileType := declaredType
	if fileType == "" {
		fileType = inferredType
	}

	rec := models.FileRecord{
		ID:           s.ids.next(),
		Filename:     filename,
		OriginalName: header.Filename,
		Path:         path.Join(s.pathPrefix, filename),
		Size:         header.Size,
		Type:         fileType,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
		DownloadURL:  "/uploads/" + filename,
		Subject:      subject,
		Module:       module,
	}

	if err := s.store.Insert(subject, module, rec); err != nil {
		// Документ не сохранился — файл не должен остаться сиротой
		if rmErr := s.storage.Remove(ctx, filename); rmErr != nil {
			log.Printf("Failed to roll back file %s: %v", filename, rmErr)
		}
		return models.FileRecord{}, err
	}

	s.cache.InvalidateSubject(subject)
	log.Printf("File uploaded: %s -> %s/%s", header.Filename, subject, module)
	return rec, nil
}

// Delete убирает запись из документа и затем пытается удалить файл.
// Сбой удаления файла логируется и не отменяет удаление записи.
func (s *UploadService) Delete(ctx context.Context, subject, module, id string) error {
	rec, err := s.store.Remove(subject, module, id)
	if err != nil {
		return err
	}

	if err := s.storage.Remove(ctx, rec.Filename); err != nil {
		log.Printf("Failed to delete file %s: %v", rec.Filename, err)
	} else {
		log.Printf("File deleted: %s", rec.Filename)
	}

	s.cache.InvalidateSubject(subject)
	return nil
}

// Rename меняет отображаемое имя записи.
func (s *UploadService) Rename(subject, module, id, newName string) error {
	if strings.TrimSpace(newName) == "" {
		return &ValidationError{Reason: "new name required"}
	}
	if err := s.store.Rename(subject, module, id, newName); err != nil {
		return err
	}
	s.cache.InvalidateSubject(subject)
	return nil
}

// uniqueFilename собирает имя на диске: очищенная база, миллисекунды и
// случайный суффикс, расширение сохраняется.
func uniqueFilename(originalName, ext string) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	base = sanitizeName(base)
	if base == "" {
		base = "file"
	}
	suffix := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
	return base + "-" + suffix + ext
}

// sanitizeName оставляет буквы (включая ə, ü, ş и прочие), цифры,
// точку, дефис и пробел.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
