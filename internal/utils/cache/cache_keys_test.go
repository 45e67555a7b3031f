package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		entity Entity
		kind   Kind
		id     string
		want   string
	}{
		{entity: EntityRecipient, kind: KindUserID, id: "42", want: "recipient:user:42"},
		{entity: EntityPayNowImage, kind: KindPayload, id: "ab12", want: "paynow_png:payload:ab12"},
		{entity: EntityRecipient, kind: KindUserID, id: "", want: "recipient:user:"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.entity, tt.kind, tt.id))
		})
	}
}
