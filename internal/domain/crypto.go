package domain

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// EncryptCredential seals plaintext with AES-GCM under key and returns the
// base64 form of magic|nonce|ciphertext.
func EncryptCredential(plaintext string, key []byte) (string, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return "", &Error{Kind: ErrParse, Op: "encrypt credential", Err: err}
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	payload := make([]byte, 0, len(MagicHeader)+len(nonce)+len(sealed))
	payload = append(payload, MagicHeader...)
	payload = append(payload, nonce...)
	payload = append(payload, sealed...)
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecryptCredential reverses EncryptCredential. Every failure, including a
// wrong key, is reported as ErrDecryption.
func DecryptCredential(ciphertext string, key []byte) (string, error) {
	payload, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", decryptionError(errors.New("invalid encoding"))
	}
	if !bytes.HasPrefix(payload, MagicHeader) {
		return "", decryptionError(errors.New("invalid magic header"))
	}

	aead, err := newAEAD(key)
	if err != nil {
		return "", decryptionError(err)
	}

	start := len(MagicHeader)
	nonceEnd := start + aead.NonceSize()
	if len(payload) < nonceEnd+aead.Overhead() {
		return "", decryptionError(errors.New("invalid encrypted payload size"))
	}

	plaintext, err := aead.Open(nil, payload[start:nonceEnd], payload[nonceEnd:], nil)
	if err != nil {
		return "", decryptionError(err)
	}
	return string(plaintext), nil
}

func newAEAD(key []byte) (cipher.AEAD, error) {
	blk, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(blk)
}

func decryptionError(err error) error {
	return &Error{Kind: ErrDecryption, Op: "decrypt credential", Err: err}
}

// WriteAtomic replaces path with data so that readers only ever observe the
// previous or the new complete content.
func WriteAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pwvault-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return err
	}
	return syncDir(dir)
}

// syncDir flushes the directory entry so a completed rename survives a crash.
// Windows cannot open directories for syncing.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	if err := d.Sync(); err != nil {
		d.Close()
		return err
	}
	return d.Close()
}
