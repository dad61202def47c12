// Package faq holds the canned-answer store backing the support chat.
// The FAQ file is loaded once at startup; mutations go through the
// store's lock and are persisted back to the same file.
package faq

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/helpdesk-labs/incident-service/internal/domain"
)

// Store is a file-backed FAQ collection safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	faqs []domain.FAQ
}

// Load reads the FAQ file. A missing file yields an empty store rather
// than an error so the service can start without seed data.
func Load(path string, logger *zap.Logger) (*Store, error) {
	store := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("FAQ file not found; starting with empty store", zap.String("path", path))
			return store, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &store.faqs); err != nil {
		return nil, err
	}
	logger.Info("FAQs loaded", zap.Int("count", len(store.faqs)))
	return store, nil
}

// All returns a copy of the current FAQ list.
func (s *Store) All() []domain.FAQ {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.FAQ, len(s.faqs))
	copy(out, s.faqs)
	return out
}

// Lookup returns the answer of the first FAQ whose any keyword occurs
// as a substring of the lower-cased message.
func (s *Store) Lookup(message string) (string, bool) {
	lower := strings.ToLower(message)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.faqs {
		for _, kw := range item.Keywords {
			if strings.Contains(lower, kw) {
				return item.Answer, true
			}
		}
	}
	return "", false
}

// Create appends a FAQ with the next free id and persists the file.
func (s *Store) Create(keywords []string, answer string) (domain.FAQ, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int64
	for _, item := range s.faqs {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	item := domain.FAQ{ID: maxID + 1, Keywords: keywords, Answer: answer}
	s.faqs = append(s.faqs, item)
	if err := s.persistLocked(); err != nil {
		s.faqs = s.faqs[:len(s.faqs)-1]
		return domain.FAQ{}, err
	}
	return item, nil
}

// Update replaces a FAQ by id; ok is false when the id is unknown.
func (s *Store) Update(id int64, keywords []string, answer string) (domain.FAQ, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.faqs {
		if s.faqs[i].ID == id {
			previous := s.faqs[i]
			s.faqs[i] = domain.FAQ{ID: id, Keywords: keywords, Answer: answer}
			if err := s.persistLocked(); err != nil {
				s.faqs[i] = previous
				return domain.FAQ{}, true, err
			}
			return s.faqs[i], true, nil
		}
	}
	return domain.FAQ{}, false, nil
}

// Delete removes a FAQ by id; ok is false when the id is unknown.
func (s *Store) Delete(id int64) (domain.FAQ, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.faqs {
		if s.faqs[i].ID == id {
			removed := s.faqs[i]
			s.faqs = append(s.faqs[:i], s.faqs[i+1:]...)
			if err := s.persistLocked(); err != nil {
				s.faqs = append(s.faqs[:i], append([]domain.FAQ{removed}, s.faqs[i:]...)...)
				return domain.FAQ{}, true, err
			}
			return removed, true, nil
		}
	}
	return domain.FAQ{}, false, nil
}

func (s *Store) persistLocked() error {
	raw, err := json.MarshalIndent(s.faqs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o644)
}
