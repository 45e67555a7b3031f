package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairingUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Pairing
		wantErr bool
	}{
		{name: "legacy bare id", input: `12345`, want: Pairing{TelegramUserID: 12345}},
		{name: "object", input: `{"telegram_user_id": 9, "headshot": "temp/profile_9.jpg"}`, want: Pairing{TelegramUserID: 9, Headshot: "temp/profile_9.jpg"}},
		{name: "object without headshot", input: `{"telegram_user_id": 9}`, want: Pairing{TelegramUserID: 9}},
		{name: "garbage", input: `"nine"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Pairing
			err := json.Unmarshal([]byte(tt.input), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestPairingMarshalOmitsEmptyHeadshot(t *testing.T) {
	out, err := json.Marshal(Pairing{TelegramUserID: 7})
	require.NoError(t, err)
	assert.JSONEq(t, `{"telegram_user_id": 7}`, string(out))
}

func TestDefaultPermissions(t *testing.T) {
	claims := &UserClaims{Permissions: GetDefaultPermissions("viewer")}
	assert.True(t, claims.HasPermission(PermissionRecipientRead))
	assert.False(t, claims.HasPermission(PermissionRecipientWrite))
	assert.True(t, claims.HasPermission(PermissionPairingRead))
	assert.False(t, claims.HasPermission(PermissionPairingWrite))
	assert.Empty(t, GetDefaultPermissions("stranger"))
}

func TestClaimsCan(t *testing.T) {
	admin := &UserClaims{Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.Can(PermissionPairingWrite))
	assert.False(t, admin.HasPermission(PermissionPairingWrite))

	user := &UserClaims{Role: RoleUser, Permissions: GetDefaultPermissions(RoleUser)}
	assert.False(t, user.IsAdmin())
	assert.True(t, user.Can(PermissionRecipientWrite))
	assert.False(t, user.Can("admin:write"))
}
