package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,password"`
	Born     string   `json:"bornAt" validate:"required,date"`
	Nick     *string  `json:"nick" validate:"omitempty,min=2"`
	Files    []string `json:"files" validate:"omitempty,dive,required"`
}

func TestValidate(t *testing.T) {
	one := "x"

	tests := []struct {
		name string
		in   sample
		want []string
	}{
		{"ok", sample{Email: "a@b.com", Password: "123456", Born: "2000-01-02"}, nil},
		{"json names", sample{Email: "nope", Password: "123", Born: "02/01/2000"}, []string{"email", "password", "bornAt"}},
		{"optional pointer", sample{Email: "a@b.com", Password: "123456", Born: "2000-01-02", Nick: &one}, []string{"nick"}},
		{"dive index", sample{Email: "a@b.com", Password: "123456", Born: "2000-01-02", Files: []string{"a", ""}}, []string{"files[1]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.in)
			if tt.want == nil {
				assert.Nil(t, errs)
				return
			}
			require.Len(t, errs, len(tt.want))
			for _, k := range tt.want {
				assert.Contains(t, errs, k)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-08-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 8, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-08-10T12:30:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, 15, d.UTC().Hour())

	_, err = ParseDate("10/08/2024")
	assert.Error(t, err)
}

func TestPasswordBounds(t *testing.T) {
	long := make([]byte, maxPasswordLen+1)
	for i := range long {
		long[i] = 'a'
	}
	errs := Validate(sample{Email: "a@b.com", Password: string(long), Born: "2000-01-02"})
	assert.Contains(t, errs, "password")
}
