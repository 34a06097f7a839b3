package storage

import (
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	headerJSON = 'j'
	headerZstd = 'z'
)

// Codec turns records into stored bytes. Payloads larger than the threshold
// are zstd-compressed; a one-byte header tells the formats apart.
type Codec struct {
	threshold int
	enc       *zstd.Encoder
	dec       *zstd.Decoder
}

// NewCodec creates a codec. A threshold of zero disables compression.
func NewCodec(threshold int) (*Codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		_ = enc.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Codec{threshold: threshold, enc: enc, dec: dec}, nil
}

// Encode marshals v and compresses it when it is large enough
func (c *Codec) Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	if c.threshold > 0 && len(raw) > c.threshold {
		out := make([]byte, 1, len(raw)/2+1)
		out[0] = headerZstd
		return c.enc.EncodeAll(raw, out), nil
	}

	out := make([]byte, 0, len(raw)+1)
	out = append(out, headerJSON)
	return append(out, raw...), nil
}

// Decode reverses Encode. Plain JSON without a header is accepted as well,
// so values written by other tools stay readable.
func (c *Codec) Decode(data []byte, out any) error {
	if len(data) == 0 {
		return fmt.Errorf("empty value")
	}

	var raw []byte
	switch data[0] {
	case headerJSON:
		raw = data[1:]
	case headerZstd:
		decoded, err := c.dec.DecodeAll(data[1:], nil)
		if err != nil {
			return fmt.Errorf("failed to decompress value: %w", err)
		}
		raw = decoded
	default:
		raw = data
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Close releases encoder and decoder resources
func (c *Codec) Close() error {
	c.dec.Close()
	return c.enc.Close()
}
