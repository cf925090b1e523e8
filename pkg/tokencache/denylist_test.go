package tokencache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokedByExcludesRevocationSecond(t *testing.T) {
	revokedAt := time.Date(2026, 8, 28, 10, 30, 15, 500_000_000, time.UTC)

	tests := []struct {
		name     string
		issuedAt time.Time
		want     bool
	}{
		{"issued well before", revokedAt.Add(-time.Minute), true},
		{"issued the second before", revokedAt.Truncate(time.Second).Add(-time.Second), true},
		// iat carries whole seconds, so a login right after a logout
		// lands on the revocation second and must stay valid.
		{"issued in the revocation second", revokedAt.Truncate(time.Second), false},
		{"issued after", revokedAt.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, revokedBy(tt.issuedAt, revokedAt))
		})
	}
}
