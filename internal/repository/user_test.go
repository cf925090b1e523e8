package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateEntry(t *testing.T) {
	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'idx_users_email'"}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"bare driver error", duplicate, true},
		// gorm hands the driver error back wrapped; the mapping must
		// see through the chain.
		{"wrapped driver error", fmt.Errorf("create user: %w", duplicate), true},
		{"other mysql error", &mysql.MySQLError{Number: 1452}, false},
		{"plain error", errors.New("duplicate entry"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateEntry(tt.err))
		})
	}
}
