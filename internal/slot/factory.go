package slot

import (
	"fmt"

	"postgen/internal/config"
	"postgen/internal/database"
	"postgen/internal/post"
)

// NewSlotFromConfig creates the storage backend selected by the slot config type.
func NewSlotFromConfig(cfg config.SlotConfig) (post.Slot, error) {
	switch cfg.Type {
	case "memory":
		return NewMemorySlot(cfg.SlotKey()), nil
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("file slot requires file_path to be set")
		}
		return NewFileSlot(cfg.FilePath)
	case "sqlite":
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("sqlite slot requires sqlite_path to be set")
		}
		return database.NewSQLiteSlot(cfg.SQLitePath, cfg.SlotKey())
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres slot requires postgres_dsn to be set")
		}
		return database.NewPostgresSlot(cfg.PostgresDSN, cfg.SlotKey())
	case "s3":
		return NewS3Slot(cfg)
	default:
		return nil, fmt.Errorf("unknown slot type: %s", cfg.Type)
	}
}

// Decorate layers optional encryption and compression over backend.
// The JSON blob is compressed first and the result encrypted, so the
// outermost wrapper is the compressor. enc may be nil to skip encryption.
func Decorate(backend post.Slot, compress bool, enc post.Encryptor, dec post.DecryptionContext) (post.Slot, error) {
	s := backend
	if enc != nil {
		s = NewEncryptedSlot(s, enc, dec)
	}
	if compress {
		c, err := NewCompressedSlot(s)
		if err != nil {
			return nil, err
		}
		s = c
	}
	return s, nil
}
