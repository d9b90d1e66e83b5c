package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrWrongPassphrase ключ не совпадает с сохраненным проверочным хешем
var ErrWrongPassphrase = errors.New("wrong passphrase")

// KeyVerifier возвращает hex SHA256 от ключа.
// Хранится рядом с солью, чтобы неверная фраза обнаруживалась до записи в кэш.
func KeyVerifier(key []byte) (string, error) {
	if len(key) == 0 {
		return "", fmt.Errorf("key cannot be empty")
	}
	hash := sha256.Sum256(key)
	return hex.EncodeToString(hash[:]), nil
}

// VerifyKey сравнивает ключ с проверочным хешем за постоянное время
func VerifyKey(key []byte, verifier string) error {
	computed, err := KeyVerifier(key)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(computed), []byte(verifier)) != 1 {
		return ErrWrongPassphrase
	}
	return nil
}
