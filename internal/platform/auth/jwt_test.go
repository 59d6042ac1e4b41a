package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "namereg/pkg/domain"
)

func TestSignAndValidate(t *testing.T) {
	validator := NewValidator("test-signing-key")
	account := id.AccountID(uuid.New())

	token, err := validator.Sign(account)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, account, claims.Caller)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	token, err := NewValidator("key-one").Sign(id.AccountID(uuid.New()))
	require.NoError(t, err)

	_, err = NewValidator("key-two").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsMalformedToken(t *testing.T) {
	_, err := NewValidator("test-signing-key").ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsNonAccountSubject(t *testing.T) {
	validator := NewValidator("test-signing-key")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "bob"})
	signed, err := token.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)

	_, err = validator.ValidateToken(signed)
	assert.ErrorContains(t, err, "not an account id")
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	validator := NewValidator("test-signing-key")
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": uuid.NewString(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = validator.ValidateToken(signed)
	assert.Error(t, err)
}
