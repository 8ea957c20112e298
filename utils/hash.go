package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const pbkdf2Iterations = 10000

// StagePassword produces the (salt, hash) pair stored on an ApprovedStaff row.
func StagePassword(password string) (salt string, hash string, err error) {
	raw := make([]byte, 16)
	if _, err = rand.Read(raw); err != nil {
		return "", "", err
	}
	salt = hex.EncodeToString(raw)
	hash = hashWithSalt(password, raw)
	return salt, hash, nil
}

// VerifyStagedPassword checks a password against a stored salt+hash.
func VerifyStagedPassword(password, salt, hash string) bool {
	raw, err := hex.DecodeString(salt)
	if err != nil {
		return false
	}
	got := hashWithSalt(password, raw)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}

func hashWithSalt(password string, salt []byte) string {
	dk := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, 32, sha256.New)
	return hex.EncodeToString(dk)
}
