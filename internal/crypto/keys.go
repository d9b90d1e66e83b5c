package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// KeyLen - длина ключа AES-256 в байтах
	KeyLen = 32
	// SaltSize - размер соли в байтах
	SaltSize = 32
)

// keyContext отделяет ключ кэша от других ключей, выведенных из той же фразы
const keyContext = "medsync-cache"

var (
	ErrEmptyPassphrase = errors.New("passphrase cannot be empty")
	ErrInvalidSalt     = errors.New("invalid salt size")
)

// GenerateSalt генерирует криптографически случайную соль
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey выводит ключ шифрования локального кэша из парольной фразы (Argon2id).
// Одинаковые фраза и соль всегда дают один и тот же ключ.
func DeriveKey(passphrase string, salt []byte) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidSalt, SaltSize, len(salt))
	}

	input := append([]byte(passphrase), keyContext...)
	return argon2.IDKey(input, salt, Argon2Time, Argon2Memory, Argon2Threads, KeyLen), nil
}
