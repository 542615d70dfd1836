package cli

import (
	"testing"
	"time"

	"move-market/internal/domain/user"
	"move-market/internal/general/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUserToken(t *testing.T) {
	token, claims, err := GenerateUserToken("cli-test-secret", 42, "driver")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, user.RoleDriver, claims.Role)
	assert.Equal(t, "42", claims.Subject)

	// the minted token verifies against the same secret
	mgr := jwt.NewManager("cli-test-secret", time.Hour)
	_, parsed, err := mgr.ParseAndValidate(token)
	require.NoError(t, err)

	userID, err := parsed.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestGenerateUserToken_InvalidRole(t *testing.T) {
	_, _, err := GenerateUserToken("cli-test-secret", 42, "ADMIN")
	assert.Error(t, err)
}
