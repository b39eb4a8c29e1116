package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"postgen/internal/post"
)

// sealHeader marks slot blobs sealed by TestEncryptor.
var sealHeader = []byte("PGENC\x00\x00\x00")

// ErrNotSealed is returned when decrypting a blob that lacks sealHeader,
// such as plaintext JSON left over from before encryption was enabled.
var ErrNotSealed = errors.New("slot blob is not sealed")

// TestEncryptor backs the "test" encryption type. It seals a slot blob by
// prefixing sealHeader, so an encrypted slot never holds bare JSON while no
// key files or passphrase are needed. It is always configured.
type TestEncryptor struct {
	setup bool
}

var _ post.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

// Setup records that key setup was requested; there is nothing to generate.
func (e *TestEncryptor) Setup(string) error {
	e.setup = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	blob, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading slot blob: %w", err)
	}
	if _, err := w.Write(append(append([]byte{}, sealHeader...), blob...)); err != nil {
		return fmt.Errorf("writing sealed blob: %w", err)
	}
	return nil
}

// Unlock accepts any passphrase.
func (e *TestEncryptor) Unlock(string) (post.DecryptionContext, error) {
	return TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool { return true }

// TestDecryptionContext opens blobs sealed by TestEncryptor.
type TestDecryptionContext struct{}

var _ post.DecryptionContext = TestDecryptionContext{}

func (TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	sealed, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading sealed blob: %w", err)
	}
	blob, ok := bytes.CutPrefix(sealed, sealHeader)
	if !ok {
		return ErrNotSealed
	}
	if _, err := w.Write(blob); err != nil {
		return fmt.Errorf("writing slot blob: %w", err)
	}
	return nil
}
