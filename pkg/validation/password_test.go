package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPasswordComplexity(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes present", "Str0ng!pass", true},
		{"short but complete", "aB3!", true}, // length is checked by min tag, not here
		{"missing uppercase", "str0ng!pass", false},
		{"missing lowercase", "STR0NG!PASS", false},
		{"missing digit", "Strong!pass", false},
		{"missing special", "Str0ngpass", false},
		{"spec example", "short1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordComplexity(tt.password))
		})
	}
}
