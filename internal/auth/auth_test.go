package auth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func generateTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func writeKeyFile(t *testing.T, key *rsa.PrivateKey, pkcs8 bool) string {
	t.Helper()

	var block *pem.Block
	if pkcs8 {
		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			t.Fatalf("marshal pkcs8: %v", err)
		}
		block = &pem.Block{Type: "PRIVATE KEY", Bytes: der}
	} else {
		block = &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	}

	path := filepath.Join(t.TempDir(), "key.pem")
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		t.Fatalf("write key file: %v", err)
	}
	return path
}

func TestLoadCredentials(t *testing.T) {
	key := generateTestKey(t)

	t.Run("pkcs8 key file", func(t *testing.T) {
		path := writeKeyFile(t, key, true)
		creds, err := LoadCredentials("key-id-123", path)
		if err != nil {
			t.Fatalf("LoadCredentials failed: %v", err)
		}
		if creds.KeyID != "key-id-123" {
			t.Errorf("KeyID = %q, want %q", creds.KeyID, "key-id-123")
		}
		if !creds.PrivateKey.Equal(key) {
			t.Error("loaded key does not match original")
		}
	})

	t.Run("pkcs1 key file", func(t *testing.T) {
		path := writeKeyFile(t, key, false)
		creds, err := LoadCredentials("key-id-123", path)
		if err != nil {
			t.Fatalf("LoadCredentials failed: %v", err)
		}
		if !creds.PrivateKey.Equal(key) {
			t.Error("loaded key does not match original")
		}
	})

	t.Run("missing key ID", func(t *testing.T) {
		if _, err := LoadCredentials("", writeKeyFile(t, key, true)); err == nil {
			t.Error("expected error for missing key ID")
		}
	})

	t.Run("missing key path", func(t *testing.T) {
		if _, err := LoadCredentials("key-id-123", ""); err == nil {
			t.Error("expected error for missing key path")
		}
	})

	t.Run("nonexistent key file", func(t *testing.T) {
		if _, err := LoadCredentials("key-id-123", "/does/not/exist.pem"); err == nil {
			t.Error("expected error for nonexistent file")
		}
	})

	t.Run("garbage key file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.pem")
		os.WriteFile(path, []byte("not a pem file"), 0o600)
		if _, err := LoadCredentials("key-id-123", path); err == nil {
			t.Error("expected error for garbage key material")
		}
	})
}

// verifySignature checks a base64 PSS signature against the canonical
// message construction: timestamp + METHOD + path.
func verifySignature(t *testing.T, pub *rsa.PublicKey, sigB64 string, timestampMs int64, method, path string) error {
	t.Helper()
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		t.Fatalf("signature is not valid base64: %v", err)
	}
	message := fmt.Sprintf("%d%s%s", timestampMs, method, path)
	hashed := sha256.Sum256([]byte(message))
	return rsa.VerifyPSS(pub, crypto.SHA256, hashed[:], sig, &rsa.PSSOptions{
		SaltLength: rsa.PSSSaltLengthEqualsHash,
	})
}

func TestSignAt(t *testing.T) {
	key := generateTestKey(t)
	creds := &Credentials{KeyID: "key-id-123", PrivateKey: key}

	const ts = int64(1705320000000)

	headers, err := creds.signAt(ts, "GET", "/trade-api/v2/markets")
	if err != nil {
		t.Fatalf("signAt failed: %v", err)
	}

	if headers[HeaderKey] != "key-id-123" {
		t.Errorf("%s = %q, want %q", HeaderKey, headers[HeaderKey], "key-id-123")
	}
	if headers[HeaderTimestamp] != "1705320000000" {
		t.Errorf("%s = %q, want %q", HeaderTimestamp, headers[HeaderTimestamp], "1705320000000")
	}

	t.Run("signature covers timestamp, method, and path", func(t *testing.T) {
		if err := verifySignature(t, &key.PublicKey, headers[HeaderSignature], ts, "GET", "/trade-api/v2/markets"); err != nil {
			t.Errorf("signature does not verify: %v", err)
		}
	})

	t.Run("changing timestamp breaks verification", func(t *testing.T) {
		if err := verifySignature(t, &key.PublicKey, headers[HeaderSignature], ts+1, "GET", "/trade-api/v2/markets"); err == nil {
			t.Error("signature verified against a different timestamp")
		}
	})

	t.Run("changing method breaks verification", func(t *testing.T) {
		if err := verifySignature(t, &key.PublicKey, headers[HeaderSignature], ts, "POST", "/trade-api/v2/markets"); err == nil {
			t.Error("signature verified against a different method")
		}
	})

	t.Run("changing path breaks verification", func(t *testing.T) {
		if err := verifySignature(t, &key.PublicKey, headers[HeaderSignature], ts, "GET", "/trade-api/v2/events"); err == nil {
			t.Error("signature verified against a different path")
		}
	})
}

func TestSign(t *testing.T) {
	key := generateTestKey(t)
	creds := &Credentials{KeyID: "key-id-123", PrivateKey: key}

	headers, err := creds.Sign("GET", "/trade-api/v2/markets")
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	for _, name := range []string{HeaderKey, HeaderSignature, HeaderTimestamp} {
		if headers[name] == "" {
			t.Errorf("header %s is empty", name)
		}
	}
}
