package repositories

import (
	"context"
	"sort"
	"sync"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/models"
)

// RecipientFileStore keeps recipients in a JSON file shaped
// {"<userId>": {"phone": "...", "name": "..."}}. Every change rewrites the
// whole file.
type RecipientFileStore struct {
	path string

	mu   sync.RWMutex
	data map[string]models.Recipient
}

// NewRecipientFileStore loads path, starting empty when it does not exist.
// A file that is not valid JSON is an error rather than silently dropped.
func NewRecipientFileStore(path string) (*RecipientFileStore, error) {
	data := make(map[string]models.Recipient)
	if _, err := readJSONFile(path, &data); err != nil {
		return nil, err
	}
	return &RecipientFileStore{path: path, data: data}, nil
}

func (s *RecipientFileStore) Get(_ context.Context, userID string) (*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.data[userID]
	if !ok {
		return nil, appErrors.ErrRecipientNotFound
	}
	r.UserID = userID
	return &r, nil
}

func (s *RecipientFileStore) Save(_ context.Context, r *models.Recipient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot()
	next[r.UserID] = models.Recipient{Phone: r.Phone, Name: r.Name}
	return s.commit(next)
}

func (s *RecipientFileStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[userID]; !ok {
		return appErrors.ErrRecipientNotFound
	}
	next := s.snapshot()
	delete(next, userID)
	return s.commit(next)
}

func (s *RecipientFileStore) List(_ context.Context) ([]*models.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Recipient, 0, len(s.data))
	for id, r := range s.data {
		r.UserID = id
		out = append(out, &r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// snapshot copies the map so a failed write leaves memory unchanged.
// Callers hold mu.
func (s *RecipientFileStore) snapshot() map[string]models.Recipient {
	next := make(map[string]models.Recipient, len(s.data)+1)
	for k, v := range s.data {
		next[k] = v
	}
	return next
}

func (s *RecipientFileStore) commit(next map[string]models.Recipient) error {
	if err := writeJSONFile(s.path, next); err != nil {
		return err
	}
	s.data = next
	return nil
}
