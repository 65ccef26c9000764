package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// per-user bearer token store (file, 0600) with AES-GCM obfuscation, keyed by
// backend base URL. Not a replacement for OS keychains but avoids plain-text config.

const fileName = "tokens.json"

var ErrTokenNotFound = errors.New("secrets: token not found")

type tokenFile struct {
	Tokens map[string]string `json:"tokens"` // backend -> base64(ciphertext)
}

// Store reads and writes tokens under Dir.
type Store struct {
	Dir string
}

// DefaultStore places the token file in the user config dir.
func DefaultStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: filepath.Join(dir, "tenantadmin")}, nil
}

func (s *Store) StoreToken(backend, token string) error {
	if backend = norm(backend); backend == "" {
		return fmt.Errorf("secrets: backend required")
	}
	path, err := s.filePath()
	if err != nil {
		return err
	}
	tf, err := load(path)
	if err != nil {
		return err
	}
	if tf.Tokens == nil {
		tf.Tokens = map[string]string{}
	}
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	tf.Tokens[backend] = base64.StdEncoding.EncodeToString(ct)
	return save(path, tf)
}

func (s *Store) FetchToken(backend string) (string, error) {
	if backend = norm(backend); backend == "" {
		return "", fmt.Errorf("secrets: backend required")
	}
	path, err := s.filePath()
	if err != nil {
		return "", err
	}
	tf, err := load(path)
	if err != nil {
		return "", err
	}
	enc, ok := tf.Tokens[backend]
	if !ok {
		return "", ErrTokenNotFound
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return "", err
	}
	pt, err := decrypt(raw)
	if err != nil {
		return "", fmt.Errorf("secrets: decrypt token: %w", err)
	}
	return string(pt), nil
}

func (s *Store) DeleteToken(backend string) error {
	if backend = norm(backend); backend == "" {
		return fmt.Errorf("secrets: backend required")
	}
	path, err := s.filePath()
	if err != nil {
		return err
	}
	tf, err := load(path)
	if err != nil {
		return err
	}
	if _, ok := tf.Tokens[backend]; !ok {
		return nil
	}
	delete(tf.Tokens, backend)
	return save(path, tf)
}

func (s *Store) filePath() (string, error) {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil { // restrict directory
		return "", err
	}
	return filepath.Join(s.Dir, fileName), nil
}

func load(path string) (tokenFile, error) {
	var tf tokenFile
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return tokenFile{}, nil
		}
		return tf, err
	}
	if err := json.Unmarshal(data, &tf); err != nil {
		return tf, err
	}
	return tf, nil
}

func save(path string, tf tokenFile) error {
	data, err := json.MarshalIndent(tf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func norm(s string) string {
	return strings.TrimRight(strings.TrimSpace(strings.ToLower(s)), "/")
}

func gcm() (cipher.AEAD, error) {
	base := fmt.Sprintf("tenantadmin-%s-%s", runtime.GOOS, os.Getenv("USER"))
	key := sha256.Sum256([]byte(base))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(plain []byte) ([]byte, error) {
	aead, err := gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	aead, err := gcm()
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < aead.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:aead.NonceSize()]
	return aead.Open(nil, nonce, ciphertext[aead.NonceSize():], nil)
}
