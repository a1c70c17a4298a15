package qr

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

func decode(t *testing.T, data []byte) string {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png decode: %v", err)
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		t.Fatalf("bitmap: %v", err)
	}
	res, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		t.Fatalf("qr decode: %v", err)
	}
	return res.GetText()
}

func TestEncode_RoundTrip(t *testing.T) {
	enc := NewEncoder(0, 0)
	payload := `{"name":"Asha","items":["Tea","Tea","coffee"],"amount":40,"order_id":"ORD-1700000000000-0a1b2c3d"}`

	data, err := enc.Encode(context.Background(), []byte(payload))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if got := decode(t, data); got != payload {
		t.Fatalf("round trip mismatch:\n got  %s\n want %s", got, payload)
	}
}

func TestEncode_ZeroValueEncoder(t *testing.T) {
	tests := []struct {
		name string
		enc  *Encoder
	}{
		{"zero value", &Encoder{}},
		{"literal", &Encoder{Size: 256, Level: qrcode.Medium, Timeout: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.enc.Encode(context.Background(), []byte("ORD-1"))
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			if got := decode(t, data); got != "ORD-1" {
				t.Fatalf("expected ORD-1, got %q", got)
			}
		})
	}
}

func TestEncode_PayloadTooLarge(t *testing.T) {
	enc := NewEncoder(0, 0)
	_, err := enc.Encode(context.Background(), []byte(strings.Repeat("a", 4000)))
	if err == nil {
		t.Fatal("expected error for payload beyond QR capacity, got nil")
	}
}

func TestEncode_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	enc := NewEncoder(0, 20*time.Millisecond)
	enc.encodeFunc = func(string, qrcode.RecoveryLevel, int) ([]byte, error) {
		<-release
		return nil, nil
	}

	_, err := enc.Encode(context.Background(), []byte("x"))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
}

func TestEncode_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	enc := NewEncoder(0, time.Minute)
	enc.encodeFunc = func(string, qrcode.RecoveryLevel, int) ([]byte, error) {
		<-release
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := enc.Encode(ctx, []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected Canceled, got %v", err)
	}
}

func TestDataURI(t *testing.T) {
	uri := DataURI([]byte{0x89, 'P', 'N', 'G'})
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		t.Fatalf("missing prefix: %s", uri)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	if !bytes.Equal(raw, []byte{0x89, 'P', 'N', 'G'}) {
		t.Fatalf("payload mismatch: %v", raw)
	}
}
