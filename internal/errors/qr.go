package errors

var (
	ErrValidation = &DomainError{
		Code:    "VALIDATION_FAILED",
		Message: "invalid payment request",
	}
	ErrRender = &DomainError{
		Code:    "RENDER_FAILED",
		Message: "failed to render QR image",
	}
	ErrEncodingInvariant = &DomainError{
		Code:    "ENCODING_INVARIANT",
		Message: "payload encoding invariant violated",
	}
	ErrMalformedPayload = &DomainError{
		Code:    "MALFORMED_PAYLOAD",
		Message: "malformed PayNow payload",
	}
	ErrChecksumMismatch = &DomainError{
		Code:    "CHECKSUM_MISMATCH",
		Message: "payload checksum mismatch",
	}
)
