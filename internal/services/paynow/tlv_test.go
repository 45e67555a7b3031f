package paynow

import (
	"strings"
	"testing"

	appErrors "splitpay/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLV(t *testing.T) {
	assert.Equal(t, "000201", TLV("00", "01"))
	assert.Equal(t, "0100", TLV("01", ""))
	// Lengths count bytes, not characters.
	assert.Equal(t, "5908Zoë Tan", TLV("59", "Zoë Tan"))
	assert.Equal(t, "62"+"99"+strings.Repeat("x", 99), TLV("62", strings.Repeat("x", 99)))
}

func TestTLVPanicsOnUnrepresentableField(t *testing.T) {
	tests := []struct {
		name  string
		tag   string
		value string
	}{
		{name: "value over 99 bytes", tag: "62", value: strings.Repeat("x", 100)},
		{name: "one digit tag", tag: "6", value: "x"},
		{name: "non digit tag", tag: "6A", value: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				require.NotNil(t, r)
				err, ok := r.(error)
				require.True(t, ok)
				assert.ErrorIs(t, err, appErrors.ErrEncodingInvariant)
			}()
			TLV(tt.tag, tt.value)
		})
	}
}

func TestParseFields(t *testing.T) {
	fs, err := ParseFields("0009SG.PAYNOW01010020891234567")
	require.NoError(t, err)
	assert.Equal(t, []string{"00", "01", "02"}, tagsOf(fs))

	v, ok := fs.Get("02")
	assert.True(t, ok)
	assert.Equal(t, "91234567", v)

	_, ok = fs.Get("03")
	assert.False(t, ok)

	assert.Equal(t, "0009SG.PAYNOW01010020891234567", fs.Encode())
}

func TestParseFieldsRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "truncated header", input: "000"},
		{name: "non digit tag", input: "A00100"},
		{name: "non digit length", input: "00+1x"},
		{name: "length overruns input", input: "0005abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFields(tt.input)
			assert.ErrorIs(t, err, appErrors.ErrMalformedPayload)
		})
	}
}

func TestAssembleRejectsCRCField(t *testing.T) {
	assert.Panics(t, func() {
		assemble(Fields{{TagPayloadFormat, "01"}, {TagCRC, "ABCD"}})
	})
}

func TestSealAppendsChecksumOverPrefix(t *testing.T) {
	sealed := seal("000201")
	assert.Equal(t, "0002016304", sealed[:10])
	assert.Equal(t, Checksum([]byte("0002016304")), sealed[10:])
}

func tagsOf(fs Fields) []string {
	tags := make([]string, len(fs))
	for i, f := range fs {
		tags[i] = f.Tag
	}
	return tags
}
