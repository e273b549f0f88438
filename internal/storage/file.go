package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/flor3z/fault-bot/internal/game"
)

// FileStore keeps the whole registry in a single JSON document.
// Each mutation reloads the document, applies the change and writes it
// back atomically while holding an exclusive lock.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a file-backed store. The file itself is created on
// the first write.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("registry path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create registry directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// load reads the document. A missing file is an empty registry; a
// malformed one is logged and treated as empty.
func (s *FileStore) load() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return newDocument(), nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		slog.Warn("Registry document is malformed, starting from an empty registry", "path", s.path, "error", err)
		return newDocument(), nil
	}
	doc.normalize(s.path)
	return doc, nil
}

// save writes the document to a temp file and renames it over the old one
func (s *FileStore) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode registry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp registry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace registry: %w", err)
	}
	return nil
}

// Upsert creates the guild bucket if needed and stores the account
func (s *FileStore) Upsert(ctx context.Context, guildID, userID string, account game.Account) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	users := doc.Guild[guildID]
	if users == nil {
		users = make(map[string]game.Account)
		doc.Guild[guildID] = users
	}
	users[userID] = account

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return newRegistration(guildID, userID, account), nil
}

// Remove deletes a registration. Nothing is written when it did not exist.
func (s *FileStore) Remove(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	account, ok := doc.Guild[guildID][userID]
	if !ok {
		return nil, notFound(guildID, userID)
	}
	delete(doc.Guild[guildID], userID)
	if len(doc.Guild[guildID]) == 0 {
		delete(doc.Guild, guildID)
	}

	if err := s.save(doc); err != nil {
		return nil, err
	}
	return newRegistration(guildID, userID, account), nil
}

// Lookup returns the registration of a user in a guild
func (s *FileStore) Lookup(ctx context.Context, guildID, userID string) (*Registration, error) {
	if err := validateKey(guildID, userID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	account, ok := doc.Guild[guildID][userID]
	if !ok {
		return nil, notFound(guildID, userID)
	}
	return newRegistration(guildID, userID, account), nil
}

// ListGuild returns every registration of a guild
func (s *FileStore) ListGuild(ctx context.Context, guildID string) ([]*Registration, error) {
	s.mu.Lock()
	doc, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	regs := make([]*Registration, 0, len(doc.Guild[guildID]))
	for userID, account := range doc.Guild[guildID] {
		regs = append(regs, newRegistration(guildID, userID, account))
	}
	sortRegistrations(regs)
	return regs, nil
}

// Close is a no-op; the document is never held open
func (s *FileStore) Close() error {
	return nil
}
