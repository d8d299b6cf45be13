package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobport/internal/common"
)

func TestJWTProviderRoundTrip(t *testing.T) {
	provider := NewJWTProvider("secret")
	userID := common.NewUUID()

	token, expiresAt, err := provider.Generate(userID, "recruiter", time.Minute)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := provider.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, string(userID), claims.UserID)
	assert.Equal(t, "recruiter", claims.Role)
}

func TestJWTProviderRejectsExpired(t *testing.T) {
	provider := NewJWTProvider("secret")

	token, _, err := provider.Generate(common.NewUUID(), "applicant", -time.Minute)
	require.NoError(t, err)

	_, err = provider.Parse(token)
	assert.Error(t, err)
}

func TestJWTProviderRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTProvider("one").Generate(common.NewUUID(), "applicant", time.Minute)
	require.NoError(t, err)

	_, err = NewJWTProvider("two").Parse(token)
	assert.Error(t, err)
}
