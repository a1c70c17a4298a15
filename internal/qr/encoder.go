package qr

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	DefaultSize    = 256
	DefaultTimeout = 5 * time.Second
)

// Encoder renders payloads as QR code PNGs.
type Encoder struct {
	// Size is the PNG edge in pixels. Negative values set pixels per module instead.
	Size    int
	Level   qrcode.RecoveryLevel
	Timeout time.Duration

	encodeFunc func(content string, level qrcode.RecoveryLevel, size int) ([]byte, error)
}

// NewEncoder returns an Encoder with medium error correction.
// Zero size or timeout fall back to the defaults.
func NewEncoder(size int, timeout time.Duration) *Encoder {
	if size == 0 {
		size = DefaultSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Encoder{
		Size:       size,
		Level:      qrcode.Medium,
		Timeout:    timeout,
		encodeFunc: qrcode.Encode,
	}
}

type encodeResult struct {
	png []byte
	err error
}

// Encode renders payload as a PNG. It returns when encoding finishes, when the
// encoder timeout elapses, or when ctx is done, whichever comes first.
// A zero Encoder encodes with qrcode.Encode, DefaultSize and DefaultTimeout.
func (e *Encoder) Encode(ctx context.Context, payload []byte) ([]byte, error) {
	size, timeout := e.Size, e.Timeout
	if size == 0 {
		size = DefaultSize
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// buffered so an abandoned encode can still finish and exit
	encode := e.encodeFunc
	if encode == nil {
		encode = qrcode.Encode
	}

	done := make(chan encodeResult, 1)
	go func() {
		png, err := encode(string(payload), e.Level, size)
		done <- encodeResult{png: png, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("qr encode %d bytes: %w", len(payload), r.err)
		}
		return r.png, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("qr encode: %w", ctx.Err())
	}
}

// DataURI wraps PNG bytes for inline use in an <img> tag.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
