package slot

import (
	"bytes"
	"errors"
	"testing"

	"postgen/internal/encryption"
	"postgen/internal/post"
)

func TestEncryptedSlot_RoundTrip(t *testing.T) {
	inner := NewMemorySlot("posts_v1")
	enc := encryption.NewTestEncryptor()
	dec, err := enc.Unlock("passphrase")
	if err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	s := NewEncryptedSlot(inner, enc, dec)

	content := []byte(`[{"id":"a"}]`)
	if err := s.Save(content); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	raw, _ := inner.Load()
	if bytes.Equal(raw, content) {
		t.Error("inner slot holds plaintext")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("Load() = %q, want %q", got, content)
	}
}

func TestEncryptedSlot_Locked(t *testing.T) {
	inner := NewMemorySlot("posts_v1")
	s := NewEncryptedSlot(inner, encryption.NewTestEncryptor(), nil)

	got, err := s.Load()
	if err != nil || got != nil {
		t.Fatalf("Load() on empty locked slot = %q, %v; want nil, nil", got, err)
	}

	if err := s.Save([]byte("[]")); err != nil {
		t.Fatalf("Save() without decryption context error = %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrLocked) {
		t.Errorf("Load() error = %v, want ErrLocked", err)
	}
}

func TestDecorate(t *testing.T) {
	enc := encryption.NewTestEncryptor()
	dec, _ := enc.Unlock("")

	tests := []struct {
		name     string
		compress bool
		encrypt  bool
	}{
		{name: "plain", compress: false, encrypt: false},
		{name: "compressed", compress: true, encrypt: false},
		{name: "encrypted", compress: false, encrypt: true},
		{name: "compressed and encrypted", compress: true, encrypt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := NewMemorySlot("posts_v1")
			var e post.Encryptor
			var d post.DecryptionContext
			if tt.encrypt {
				e, d = enc, dec
			}
			s, err := Decorate(backend, tt.compress, e, d)
			if err != nil {
				t.Fatalf("Decorate() error = %v", err)
			}
			defer s.Close()

			content := []byte(`[{"id":"a","title":"Notes on Go"}]`)
			if err := s.Save(content); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := s.Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !bytes.Equal(got, content) {
				t.Errorf("Load() = %q, want %q", got, content)
			}

			raw, _ := backend.Load()
			plain := !tt.compress && !tt.encrypt
			if bytes.Equal(raw, content) != plain {
				t.Errorf("backend holds plaintext = %v, want %v", !plain, plain)
			}
			if tt.encrypt && !bytes.HasPrefix(raw, []byte("PGENC")) {
				t.Error("outermost stored layer is not the encryption envelope")
			}
		})
	}
}
