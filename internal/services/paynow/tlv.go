package paynow

import (
	"fmt"
	"strings"

	appErrors "splitpay/internal/errors"
)

// Field is one tag-length-value element. Value holds the raw value; the
// length is always derived from it.
type Field struct {
	Tag   string
	Value string
}

// Fields is an ordered field list. Order is significant and preserved.
type Fields []Field

// TLV encodes a single field: 2-digit tag, 2-digit byte length, value.
// A tag that is not two digits or a value over 99 bytes cannot be
// represented and panics with ErrEncodingInvariant.
func TLV(tag, value string) string {
	if !isTwoDigits(tag) {
		panic(appErrors.Wrap(appErrors.ErrEncodingInvariant, fmt.Errorf("tag %q is not two digits", tag)))
	}
	if len(value) > maxValueLength {
		panic(appErrors.Wrap(appErrors.ErrEncodingInvariant,
			fmt.Errorf("tag %s: value is %d bytes, limit %d", tag, len(value), maxValueLength)))
	}
	return tag + fmt.Sprintf("%02d", len(value)) + value
}

// Encode concatenates the fields in order.
func (fs Fields) Encode() string {
	var b strings.Builder
	for _, f := range fs {
		b.WriteString(TLV(f.Tag, f.Value))
	}
	return b.String()
}

// Get returns the value of the first field with tag.
func (fs Fields) Get(tag string) (string, bool) {
	for _, f := range fs {
		if f.Tag == tag {
			return f.Value, true
		}
	}
	return "", false
}

// ParseFields splits s into TLV fields. Lengths are byte counts.
func ParseFields(s string) (Fields, error) {
	var fs Fields
	for pos := 0; pos < len(s); {
		if len(s)-pos < 4 {
			return nil, appErrors.Wrap(appErrors.ErrMalformedPayload,
				fmt.Errorf("truncated field header at offset %d", pos))
		}
		tag, length := s[pos:pos+2], s[pos+2:pos+4]
		if !isTwoDigits(tag) {
			return nil, appErrors.Wrap(appErrors.ErrMalformedPayload,
				fmt.Errorf("invalid tag %q at offset %d", tag, pos))
		}
		if !isTwoDigits(length) {
			return nil, appErrors.Wrap(appErrors.ErrMalformedPayload,
				fmt.Errorf("invalid length %q for tag %s at offset %d", length, tag, pos))
		}
		n := int(length[0]-'0')*10 + int(length[1]-'0')
		start := pos + 4
		if start+n > len(s) {
			return nil, appErrors.Wrap(appErrors.ErrMalformedPayload,
				fmt.Errorf("tag %s declares %d bytes, only %d remain", tag, n, len(s)-start))
		}
		fs = append(fs, Field{Tag: tag, Value: s[start : start+n]})
		pos = start + n
	}
	return fs, nil
}

// seal closes an assembled prefix with the CRC field. The checksum covers the
// prefix plus the literal "6304" of the CRC tag and length.
func seal(prefix string) string {
	open := prefix + TagCRC + crcLength
	return open + Checksum([]byte(open))
}

// assemble encodes fields and seals the result. Fields must not carry the CRC
// tag; seal is the only producer of it.
func assemble(fields Fields) string {
	for _, f := range fields {
		if f.Tag == TagCRC {
			panic(appErrors.Wrap(appErrors.ErrEncodingInvariant, fmt.Errorf("CRC tag supplied as a field")))
		}
	}
	return seal(fields.Encode())
}

func isTwoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
