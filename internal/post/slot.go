package post

import "io"

// Slot is the persistence port for the post collection.
// A slot holds exactly one opaque blob; the store reads and rewrites it
// wholesale on every operation.
type Slot interface {
	// Load returns the stored blob. It returns nil, nil when nothing has
	// been stored yet.
	Load() ([]byte, error)

	// Save replaces the stored blob with data.
	Save(data []byte) error

	// Close releases any resources held by the slot.
	Close() error
}

// Encryptor handles encryption of the stored blob and unlocking for decryption.
// Encryption uses the public key only. Decryption requires a passphrase to
// unlock the private key, producing a DecryptionContext for the session.
type Encryptor interface {
	// Setup performs one-time key generation. Called during
	// `postgen config encryption init`.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock decrypts the private key using the passphrase and returns a
	// DecryptionContext for the rest of the session.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured returns true if both key files exist at configured paths.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory.
// The unlocked key is never written to disk.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}
