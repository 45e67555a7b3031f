package models

// Permission constants
const (
	// Recipient permissions
	PermissionRecipientRead  = "recipient:read"
	PermissionRecipientWrite = "recipient:write"

	// Split permissions
	PermissionSplitWrite = "split:write"

	// Chat pairing permissions
	PermissionPairingRead  = "pairing:read"
	PermissionPairingWrite = "pairing:write"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin, RoleUser:
		return []string{
			PermissionRecipientRead,
			PermissionRecipientWrite,
			PermissionSplitWrite,
			PermissionPairingRead,
			PermissionPairingWrite,
		}
	case RoleViewer:
		return []string{
			PermissionRecipientRead,
			PermissionPairingRead,
		}
	default:
		return []string{}
	}
}
