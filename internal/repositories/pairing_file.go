package repositories

import (
	"strings"
	"sync"

	appErrors "splitpay/internal/errors"
	"splitpay/internal/models"
)

// PairingFileStore keeps diner-to-user pairings per chat in a JSON file
// shaped {"<chatId>": {"<personKey>": {"telegram_user_id": 1, "headshot": "..."}}}.
// Entries written by older versions as a bare user id are read as pairings
// without a headshot.
type PairingFileStore struct {
	path string

	mu   sync.RWMutex
	data map[string]map[string]models.Pairing
}

func NewPairingFileStore(path string) (*PairingFileStore, error) {
	data := make(map[string]map[string]models.Pairing)
	if _, err := readJSONFile(path, &data); err != nil {
		return nil, err
	}
	return &PairingFileStore{path: path, data: data}, nil
}

// PersonKey derives the stored key for a diner's seat position, e.g.
// "Top Left" becomes "person_top_left".
func PersonKey(position string) string {
	return "person_" + strings.ReplaceAll(strings.ToLower(strings.TrimSpace(position)), " ", "_")
}

// Load returns a copy of the pairings for chatID.
func (s *PairingFileStore) Load(chatID string) map[string]models.Pairing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Pairing, len(s.data[chatID]))
	for k, v := range s.data[chatID] {
		out[k] = v
	}
	return out
}

// Save records that personKey in chatID is userID, replacing any earlier
// pairing for that key.
func (s *PairingFileStore) Save(chatID, personKey string, userID int64, headshot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]map[string]models.Pairing, len(s.data)+1)
	for chat, pairs := range s.data {
		next[chat] = pairs
	}
	chat := make(map[string]models.Pairing, len(s.data[chatID])+1)
	for k, v := range s.data[chatID] {
		chat[k] = v
	}
	chat[personKey] = models.Pairing{TelegramUserID: userID, Headshot: headshot}
	next[chatID] = chat

	if err := writeJSONFile(s.path, next); err != nil {
		return err
	}
	s.data = next
	return nil
}

// Find looks up the pairing for a diner at position in chatID.
func (s *PairingFileStore) Find(chatID, position string) (*models.Pairing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.data[chatID][PersonKey(position)]
	if !ok {
		return nil, appErrors.ErrPairingNotFound
	}
	return &p, nil
}
