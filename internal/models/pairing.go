package models

import (
	"encoding/json"
	"fmt"
)

// Pairing links a diner position in a group chat to a chat user.
type Pairing struct {
	TelegramUserID int64  `json:"telegram_user_id"`
	Headshot       string `json:"headshot,omitempty"`
}

// UnmarshalJSON also accepts the legacy form, a bare user id.
func (p *Pairing) UnmarshalJSON(data []byte) error {
	var id int64
	if err := json.Unmarshal(data, &id); err == nil {
		*p = Pairing{TelegramUserID: id}
		return nil
	}

	type plain Pairing
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid pairing %s: %w", data, err)
	}
	*p = Pairing(v)
	return nil
}
