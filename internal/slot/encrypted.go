package slot

import (
	"bytes"
	"errors"
	"fmt"

	"postgen/internal/post"
)

// ErrLocked is returned when loading an encrypted slot without a decryption context.
var ErrLocked = errors.New("encrypted slot is locked")

// EncryptedSlot wraps another slot and stores the blob encrypted.
// Saving needs only the encryptor; loading needs an unlocked DecryptionContext.
type EncryptedSlot struct {
	inner     post.Slot
	encryptor post.Encryptor
	decryptor post.DecryptionContext
}

// NewEncryptedSlot wraps inner. dec may be nil, in which case Load fails
// with ErrLocked once anything has been stored.
func NewEncryptedSlot(inner post.Slot, enc post.Encryptor, dec post.DecryptionContext) *EncryptedSlot {
	return &EncryptedSlot{inner: inner, encryptor: enc, decryptor: dec}
}

func (e *EncryptedSlot) Load() ([]byte, error) {
	data, err := e.inner.Load()
	if err != nil || len(data) == 0 {
		return data, err
	}
	if e.decryptor == nil {
		return nil, ErrLocked
	}
	var out bytes.Buffer
	if err := e.decryptor.Decrypt(bytes.NewReader(data), &out); err != nil {
		return nil, fmt.Errorf("decrypting slot: %w", err)
	}
	return out.Bytes(), nil
}

func (e *EncryptedSlot) Save(data []byte) error {
	var out bytes.Buffer
	if err := e.encryptor.Encrypt(bytes.NewReader(data), &out); err != nil {
		return fmt.Errorf("encrypting slot: %w", err)
	}
	return e.inner.Save(out.Bytes())
}

func (e *EncryptedSlot) Close() error {
	return e.inner.Close()
}

var _ post.Slot = (*EncryptedSlot)(nil)
