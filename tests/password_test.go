package tests

import (
	"strings"
	"testing"

	"obranza/internal/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashFormatoSaltHash(t *testing.T) {
	h, err := password.Hash("secreta1")
	require.NoError(t, err)

	salt, derived, ok := strings.Cut(h, ":")
	require.True(t, ok, "stored form must be salt:hash")
	assert.Len(t, salt, 32)    // 16 bytes hex
	assert.Len(t, derived, 64) // 32 bytes hex
}

func TestHashSaltAleatorio(t *testing.T) {
	h1, err := password.Hash("secreta1")
	require.NoError(t, err)
	h2, err := password.Hash("secreta1")
	require.NoError(t, err)
	// Same password, fresh salt, different stored values
	assert.NotEqual(t, h1, h2)
	assert.True(t, password.Verify("secreta1", h1))
	assert.True(t, password.Verify("secreta1", h2))
}

func TestVerifyPasswordIncorrecta(t *testing.T) {
	h, err := password.Hash("secreta1")
	require.NoError(t, err)
	assert.False(t, password.Verify("secreta2", h))
	assert.False(t, password.Verify("", h))
}

func TestVerifyValorAlmacenadoMalformado(t *testing.T) {
	// Malformed stored values fail verification instead of erroring
	casos := []string{
		"",
		"sinseparador",
		"nohex:tampocohex",
		"abcd:zzzz",
		":",
	}
	for _, almacenado := range casos {
		assert.False(t, password.Verify("loquesea", almacenado), "stored=%q", almacenado)
	}
}

func TestNewTokenHex256Bits(t *testing.T) {
	t1, err := password.NewToken()
	require.NoError(t, err)
	t2, err := password.NewToken()
	require.NoError(t, err)

	assert.Len(t, t1, 64)
	assert.NotEqual(t, t1, t2)
	// hex only
	for _, c := range t1 {
		assert.Contains(t, "0123456789abcdef", string(c))
	}
}
