package session

import "golang.org/x/crypto/scrypt"

// deriveKey stretches the passphrase into an AES key.
func deriveKey(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, scryptKeyLen)
}
