package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBlacklistedToken_IsExpired(t *testing.T) {
	tests := []struct {
		name    string
		token   BlacklistedToken
		expired bool
	}{
		{
			name: "token still within its lifetime",
			token: BlacklistedToken{
				ExpiresAt: time.Now().Add(time.Hour),
			},
			expired: false,
		},
		{
			name: "token past its lifetime",
			token: BlacklistedToken{
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			expired: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, tt.token.IsExpired())
		})
	}
}

func TestBlacklistedToken_CanBeDeleted(t *testing.T) {
	tests := []struct {
		name      string
		token     BlacklistedToken
		canDelete bool
	}{
		{
			name: "expired entry is prunable",
			token: BlacklistedToken{
				ExpiresAt: time.Now().Add(-time.Hour),
			},
			canDelete: true,
		},
		{
			name: "live entry must stay blacklisted",
			token: BlacklistedToken{
				ExpiresAt: time.Now().Add(time.Hour),
			},
			canDelete: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canDelete, tt.token.CanBeDeleted())
		})
	}
}

func TestBlacklistedToken_BeforeCreate(t *testing.T) {
	token := BlacklistedToken{
		JTI:       "some-jti",
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(15 * time.Minute),
	}

	err := token.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, token.ID)
}
