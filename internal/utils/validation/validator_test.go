package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	tests := []struct {
		name   string
		run    func(v *Validator)
		fields []string
	}{
		{
			name:   "blank required",
			run:    func(v *Validator) { v.Required("name", "   ") },
			fields: []string{"name"},
		},
		{
			name:   "max bytes counts bytes",
			run:    func(v *Validator) { v.MaxBytes("name", "éé", 3) },
			fields: []string{"name"},
		},
		{
			name:   "digits",
			run:    func(v *Validator) { v.Digits("id", "+6591234567") },
			fields: []string{"id"},
		},
		{
			name:   "alphanumeric",
			run:    func(v *Validator) { v.Alphanumeric("id", "2014-0312W") },
			fields: []string{"id"},
		},
		{
			name:   "impossible date",
			run:    func(v *Validator) { v.Date("expiry", "20990230", "20060102") },
			fields: []string{"expiry"},
		},
		{
			name: "all valid",
			run: func(v *Validator) {
				v.Required("name", "John")
				v.MaxBytes("name", "John", 25)
				v.Digits("id", "91234567")
				v.Alphanumeric("uen", "201403121W")
				v.Date("expiry", "20991230", "20060102")
				v.Phone("phone", "+6591234567")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			tt.run(v)

			if len(tt.fields) == 0 {
				assert.True(t, v.Valid())
				assert.NoError(t, v.Err())
				return
			}
			require.Error(t, v.Err())
			for _, f := range tt.fields {
				assert.True(t, v.Errors.Has(f), "expected failure on %s", f)
			}
		})
	}
}

func TestErrorsMessage(t *testing.T) {
	errs := Errors{
		{Field: "amount", Message: "must not be negative"},
		{Field: "recipient_id", Message: "must not be empty"},
	}
	assert.Equal(t, "amount: must not be negative; recipient_id: must not be empty", errs.Error())
}

func TestStruct(t *testing.T) {
	type input struct {
		Payload string `json:"payload" validate:"required"`
		Format  string `json:"format" validate:"omitempty,oneof=text json"`
	}

	assert.Nil(t, Struct(input{Payload: "000201"}))

	errs := Struct(input{Format: "xml"})
	require.Len(t, errs, 2)
	assert.True(t, errs.Has("Payload"))
	assert.True(t, errs.Has("Format"))
}
