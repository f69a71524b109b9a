package app

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	DefaultSecretFile = "event.secret"

	// SecretHeader carries the shared add-event secret. The check happens
	// here, server-side; the browser's own comparison is cosmetic.
	SecretHeader = "X-Event-Secret"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// SecretGate verifies the shared add-event secret against an argon2id
// hash. A gate without a hash is open: local development only.
type SecretGate struct {
	hash []byte
}

// SecretFilePath resolves the secret file location from SECRET_FILE or
// falls back to event.secret next to the binary.
func SecretFilePath() (string, error) {
	if path := os.Getenv("SECRET_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultSecretFile), nil
}

// LoadSecretGate loads the hashed shared secret. A missing file yields an
// open gate with a loud warning instead of an error so the server can run
// without protection during local development.
func LoadSecretGate(path string) (*SecretGate, error) {
	if path == "" {
		var err error
		path, err = SecretFilePath()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("╔══════════════════════════════════════════════════════════════════╗")
			log.Println("║                         ⚠️  WARNING ⚠️                            ║")
			log.Println("║                                                                  ║")
			log.Println("║  NO SECRET FILE FOUND - ADD-EVENT ENDPOINT UNPROTECTED!         ║")
			log.Println("║                                                                  ║")
			log.Println("║  This is for LOCAL DEVELOPMENT ONLY!                            ║")
			log.Println("║  DO NOT USE IN PRODUCTION!                                      ║")
			log.Println("║                                                                  ║")
			log.Printf("║  Expected file: %-47s ║\n", path)
			log.Println("║                                                                  ║")
			log.Println("║  To create the secret file, run:                                ║")
			log.Println("║    ./year-countdown hash-secret                                 ║")
			log.Println("║                                                                  ║")
			log.Println("╚══════════════════════════════════════════════════════════════════╝")
			return &SecretGate{}, nil
		}
		return nil, fmt.Errorf("failed to read secret file: %w", err)
	}

	hash := strings.TrimSpace(string(data))
	if !strings.HasPrefix(hash, "$argon2id$") {
		return nil, fmt.Errorf("invalid secret file format (expected argon2id hash)")
	}

	log.Printf("✅ Add-event secret gate enabled (file: %s)", path)
	return &SecretGate{hash: []byte(hash)}, nil
}

// Enabled reports whether a hash was loaded.
func (g *SecretGate) Enabled() bool {
	return len(g.hash) > 0
}

// Check verifies an entered secret against the loaded hash. An open gate
// accepts anything.
func (g *SecretGate) Check(secret string) bool {
	if !g.Enabled() {
		return true
	}
	ok, err := VerifySecret(secret, string(g.hash))
	if err != nil {
		log.Printf("Error verifying secret: %v", err)
		return false
	}
	return ok
}

// RequireSecret enforces the secret header on protected handlers.
func (g *SecretGate) RequireSecret(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next(w, r)
			return
		}
		if !g.Check(r.Header.Get(SecretHeader)) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			log.Printf("⚠️  Rejected add-event secret from %s", r.RemoteAddr)
			return
		}
		next(w, r)
	}
}

// HashSecret creates an Argon2id hash of the secret.
func HashSecret(secret string) (string, error) {
	// Generate random salt
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(secret), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// Encode as: $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifySecret verifies a secret against an Argon2id hash.
func VerifySecret(secret, hash string) (bool, error) {
	// Parse hash format: $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(secret), salt, time, memory, uint8(threads), uint32(len(decodedHash)))

	// Compare using constant-time comparison
	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

// CreateSecretFile hashes the secret and writes it to the secret file
// (0400 read-only).
func CreateSecretFile(secret string, overwrite bool) error {
	path, err := SecretFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("secret file already exists: %s (use -overwrite)", path)
		}
		// Delete existing file (necessary because we use 0400 read-only)
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing secret file: %w", err)
		}
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return fmt.Errorf("failed to hash secret: %w", err)
	}

	if err := os.WriteFile(path, []byte(hash+"\n"), 0400); err != nil {
		return fmt.Errorf("failed to write secret file: %w", err)
	}

	fmt.Printf("✅ Secret file created: %s (mode: 0400 read-only)\n", path)
	return nil
}
