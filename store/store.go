package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"college-api/models"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// Store хранит весь документ в памяти и переписывает его на диск
// при каждой мутации. Все мутации сериализуются одним мьютексом.
type Store struct {
	mu   sync.Mutex
	path string
	doc  *models.Document
}

// New загружает документ из path или создаёт новый с начальными данными.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		doc := &models.Document{}
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
		}
		if doc.Files == nil {
			doc.Files = models.FileTree{}
		}
		seed := models.SeedDocument()
		if doc.Teachers == nil {
			doc.Teachers = seed.Teachers
		}
		if doc.Modules == nil {
			doc.Modules = seed.Modules
		}
		s.doc = doc
		log.Printf("Data loaded from %s", path)
	case os.IsNotExist(err):
		s.doc = models.SeedDocument()
		if err := s.save(); err != nil {
			return nil, err
		}
		log.Printf("Data file %s created with seed data", path)
	default:
		return nil, fmt.Errorf("failed to read data file %s: %w", path, err)
	}

	return s, nil
}

// save переписывает документ целиком через временный файл и rename,
// чтобы сбой записи не оставил усечённый документ.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace data file: %w", err)
	}
	return nil
}

// All возвращает глубокую копию всего дерева файлов.
func (s *Store) All() models.FileTree {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree := models.FileTree{}
	for subject, modules := range s.doc.Files {
		tree[subject] = map[string][]models.FileRecord{}
		for module, files := range modules {
			tree[subject][module] = append([]models.FileRecord(nil), files...)
		}
	}
	return tree
}

// Files возвращает файлы предмета и модуля; пустой список если их нет.
func (s *Store) Files(subject, module string) []models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.doc.Files[subject][module]
	out := make([]models.FileRecord, len(files))
	copy(out, files)
	return out
}

// SubjectFiles возвращает непустые модули предмета.
func (s *Store) SubjectFiles(subject string) map[string][]models.FileRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := map[string][]models.FileRecord{}
	for module, files := range s.doc.Files[subject] {
		if len(files) == 0 {
			continue
		}
		out[module] = append([]models.FileRecord(nil), files...)
	}
	return out
}

// Insert добавляет запись в конец списка (subject, module), создавая
// недостающие контейнеры, и сохраняет документ.
func (s *Store) Insert(subject, module string, rec models.FileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Files[subject] == nil {
		s.doc.Files[subject] = map[string][]models.FileRecord{}
	}
	s.doc.Files[subject][module] = append(s.doc.Files[subject][module], rec)

	if err := s.save(); err != nil {
		// Откатываем добавление, чтобы память не разошлась с диском
		files := s.doc.Files[subject][module]
		s.doc.Files[subject][module] = files[:len(files)-1]
		s.pruneLocked(subject, module)
		return err
	}
	return nil
}

// Rename меняет только отображаемое имя записи.
func (s *Store) Rename(subject, module, id, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.doc.Files[subject][module]
	for i := range files {
		if files[i].ID == id {
			old := files[i].OriginalName
			files[i].OriginalName = newName
			if err := s.save(); err != nil {
				files[i].OriginalName = old
				return err
			}
			return nil
		}
	}
	return ErrNotFound
}

// Remove удаляет первую запись с данным id и возвращает её, чтобы
// вызывающий мог удалить физический файл. Опустевшие контейнеры
// вычищаются из дерева.
func (s *Store) Remove(subject, module, id string) (models.FileRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	files := s.doc.Files[subject][module]
	for i := range files {
		if files[i].ID != id {
			continue
		}
		removed := files[i]
		s.doc.Files[subject][module] = append(files[:i:i], files[i+1:]...)
		s.pruneLocked(subject, module)

		if err := s.save(); err != nil {
			// Восстанавливаем запись на прежнем месте
			if s.doc.Files[subject] == nil {
				s.doc.Files[subject] = map[string][]models.FileRecord{}
			}
			restored := append([]models.FileRecord(nil), files[:i]...)
			restored = append(restored, removed)
			restored = append(restored, files[i+1:]...)
			s.doc.Files[subject][module] = restored
			return models.FileRecord{}, err
		}
		return removed, nil
	}
	return models.FileRecord{}, ErrNotFound
}

func (s *Store) pruneLocked(subject, module string) {
	if len(s.doc.Files[subject][module]) == 0 {
		delete(s.doc.Files[subject], module)
	}
	if len(s.doc.Files[subject]) == 0 {
		delete(s.doc.Files, subject)
	}
}

// Path возвращает абсолютный путь документа (для логов при старте).
func (s *Store) Path() string {
	abs, err := filepath.Abs(s.path)
	if err != nil {
		return s.path
	}
	return abs
}
