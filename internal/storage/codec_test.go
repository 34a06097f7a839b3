package storage

import (
	"strings"
	"testing"
)

func TestCodec_RoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		threshold  int
		value      string
		wantHeader byte
	}{
		{name: "Small value stays plain", threshold: 64, value: "short", wantHeader: headerJSON},
		{name: "Large value is compressed", threshold: 64, value: strings.Repeat("wallpaper", 100), wantHeader: headerZstd},
		{name: "Compression disabled", threshold: 0, value: strings.Repeat("wallpaper", 100), wantHeader: headerJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := NewCodec(tt.threshold)
			if err != nil {
				t.Fatalf("failed to create codec: %v", err)
			}
			defer codec.Close()

			data, err := codec.Encode(tt.value)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}
			if data[0] != tt.wantHeader {
				t.Errorf("header: want %q, got %q", tt.wantHeader, data[0])
			}

			var got string
			if err := codec.Decode(data, &got); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if got != tt.value {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(tt.value))
			}
		})
	}
}

func TestCodec_DecodeHeaderlessJSON(t *testing.T) {
	codec, err := NewCodec(0)
	if err != nil {
		t.Fatalf("failed to create codec: %v", err)
	}
	defer codec.Close()

	var got map[string]int
	if err := codec.Decode([]byte(`{"shuffleInterval":5}`), &got); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got["shuffleInterval"] != 5 {
		t.Errorf("expected 5, got %d", got["shuffleInterval"])
	}

	if err := codec.Decode(nil, &got); err == nil {
		t.Error("expected error for empty value")
	}
}
