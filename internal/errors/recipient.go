package errors

var (
	ErrRecipientNotFound = &DomainError{
		Code:    "RECIPIENT_NOT_FOUND",
		Message: "recipient not found",
	}
	ErrRecipientNotConfigured = &DomainError{
		Code:    "RECIPIENT_NOT_CONFIGURED",
		Message: "no PayNow recipient configured",
	}
	ErrPairingNotFound = &DomainError{
		Code:    "PAIRING_NOT_FOUND",
		Message: "pairing not found",
	}
)
