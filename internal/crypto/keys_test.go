package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSalt(t *testing.T) {
	salt1, err := GenerateSalt()
	require.NoError(t, err)
	assert.Len(t, salt1, SaltSize)

	salt2, err := GenerateSalt()
	require.NoError(t, err)
	assert.NotEqual(t, salt1, salt2, "salts must be random")
}

func TestDeriveKey(t *testing.T) {
	salt := bytes.Repeat([]byte{7}, SaltSize)

	tests := []struct {
		wantErr    error
		name       string
		passphrase string
		salt       []byte
	}{
		{name: "valid", passphrase: "correct horse battery", salt: salt},
		{name: "empty passphrase", passphrase: "", salt: salt, wantErr: ErrEmptyPassphrase},
		{name: "short salt", passphrase: "phrase", salt: []byte("short"), wantErr: ErrInvalidSalt},
		{name: "nil salt", passphrase: "phrase", salt: nil, wantErr: ErrInvalidSalt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := DeriveKey(tt.passphrase, tt.salt)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, key)
				return
			}
			require.NoError(t, err)
			assert.Len(t, key, KeyLen)
		})
	}
}

func TestDeriveKey_Determinism(t *testing.T) {
	salt := bytes.Repeat([]byte{1}, SaltSize)
	otherSalt := bytes.Repeat([]byte{2}, SaltSize)

	key1, err := DeriveKey("phrase", salt)
	require.NoError(t, err)
	key2, err := DeriveKey("phrase", salt)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)

	key3, err := DeriveKey("phrase", otherSalt)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key3)

	key4, err := DeriveKey("another phrase", salt)
	require.NoError(t, err)
	assert.NotEqual(t, key1, key4)
}
