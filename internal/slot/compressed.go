package slot

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"postgen/internal/post"
)

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// CompressedSlot wraps another slot and stores the blob zstd-compressed.
// Blobs written before compression was enabled are returned unchanged.
type CompressedSlot struct {
	inner   post.Slot
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewCompressedSlot wraps inner with zstd compression.
func NewCompressedSlot(inner post.Slot) (*CompressedSlot, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	return &CompressedSlot{inner: inner, encoder: encoder, decoder: decoder}, nil
}

func (c *CompressedSlot) Load() ([]byte, error) {
	data, err := c.inner.Load()
	if err != nil || len(data) == 0 {
		return data, err
	}
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}
	out, err := c.decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing slot: %w", err)
	}
	return out, nil
}

func (c *CompressedSlot) Save(data []byte) error {
	return c.inner.Save(c.encoder.EncodeAll(data, nil))
}

func (c *CompressedSlot) Close() error {
	c.decoder.Close()
	if err := c.encoder.Close(); err != nil {
		c.inner.Close()
		return fmt.Errorf("closing zstd encoder: %w", err)
	}
	return c.inner.Close()
}

var _ post.Slot = (*CompressedSlot)(nil)
