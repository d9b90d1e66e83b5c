package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyVerifier(t *testing.T) {
	key := testKey(5)

	verifier, err := KeyVerifier(key)
	require.NoError(t, err)
	assert.Len(t, verifier, 64)

	again, err := KeyVerifier(key)
	require.NoError(t, err)
	assert.Equal(t, verifier, again)

	_, err = KeyVerifier(nil)
	assert.Error(t, err)
}

func TestKeyVerifier_KnownVector(t *testing.T) {
	// sha256("abc")
	verifier, err := KeyVerifier([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", verifier)
}

func TestVerifyKey(t *testing.T) {
	key := testKey(5)
	verifier, err := KeyVerifier(key)
	require.NoError(t, err)

	assert.NoError(t, VerifyKey(key, verifier))
	assert.ErrorIs(t, VerifyKey(testKey(6), verifier), ErrWrongPassphrase)
	assert.ErrorIs(t, VerifyKey(key, ""), ErrWrongPassphrase)
	assert.Error(t, VerifyKey(nil, verifier))
}
