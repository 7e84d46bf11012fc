package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/24studio/finance-backend/internal/testutil"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestReceiptUpload_SmallImagePassesThrough(t *testing.T) {
	store := testutil.NewMockReceiptRepository()
	service := NewReceiptService(store)

	path, err := service.Upload(context.Background(), pngBytes(t, 400, 300), "rent receipt.png")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasPrefix(path, "receipts/") {
		t.Errorf("expected receipts/ prefix, got %s", path)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("small image must keep its format, got %s", path)
	}
	if strings.Contains(path, " ") {
		t.Errorf("object path must not contain spaces, got %s", path)
	}
	if _, ok := store.Objects[path]; !ok {
		t.Error("expected object to be stored")
	}
}

func TestReceiptUpload_WideImageDownscaled(t *testing.T) {
	store := testutil.NewMockReceiptRepository()
	service := NewReceiptService(store)

	path, err := service.Upload(context.Background(), pngBytes(t, 2400, 1200), "wide.png")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Errorf("downscaled receipt must be re-encoded as JPEG, got %s", path)
	}

	stored := store.Objects[path]
	img, _, err := image.Decode(bytes.NewReader(stored))
	if err != nil {
		t.Fatalf("stored receipt must decode: %v", err)
	}
	if img.Bounds().Dx() != MaxReceiptWidth {
		t.Errorf("expected width %d, got %d", MaxReceiptWidth, img.Bounds().Dx())
	}
}

func TestReceiptUpload_PDFUntouched(t *testing.T) {
	store := testutil.NewMockReceiptRepository()
	service := NewReceiptService(store)

	pdf := []byte("%PDF-1.4 fake content")
	path, err := service.Upload(context.Background(), pdf, "invoice.PDF")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("expected .pdf suffix, got %s", path)
	}
	if !bytes.Equal(store.Objects[path], pdf) {
		t.Error("PDF bytes must be stored untouched")
	}
}

func TestReceiptUpload_Rejections(t *testing.T) {
	service := NewReceiptService(testutil.NewMockReceiptRepository())
	ctx := context.Background()

	if _, err := service.Upload(ctx, make([]byte, MaxReceiptSize+1), "big.png"); !errors.Is(err, ErrReceiptTooLarge) {
		t.Errorf("expected ErrReceiptTooLarge, got: %v", err)
	}
	if _, err := service.Upload(ctx, []byte("data"), "malware.exe"); !errors.Is(err, ErrInvalidReceiptFormat) {
		t.Errorf("expected ErrInvalidReceiptFormat, got: %v", err)
	}
	if _, err := service.Upload(ctx, []byte("not an image"), "broken.png"); !errors.Is(err, ErrInvalidReceiptData) {
		t.Errorf("expected ErrInvalidReceiptData, got: %v", err)
	}
	if _, err := service.Upload(ctx, nil, "empty.png"); !errors.Is(err, ErrInvalidReceiptData) {
		t.Errorf("expected ErrInvalidReceiptData, got: %v", err)
	}
}

func TestReceiptUpload_StorageNotConfigured(t *testing.T) {
	service := NewReceiptService(nil)

	if _, err := service.Upload(context.Background(), []byte("x"), "a.png"); !errors.Is(err, ErrReceiptStorageNotConfigured) {
		t.Errorf("expected ErrReceiptStorageNotConfigured, got: %v", err)
	}
}

func TestPresignURL(t *testing.T) {
	store := testutil.NewMockReceiptRepository()
	service := NewReceiptService(store)
	ctx := context.Background()

	path, err := service.Upload(ctx, pngBytes(t, 100, 100), "a.png")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	url, err := service.PresignURL(ctx, path)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !strings.Contains(url, path) {
		t.Errorf("expected URL to reference the object, got %s", url)
	}

	if _, err := service.PresignURL(ctx, "../secrets"); !errors.Is(err, ErrInvalidReceiptData) {
		t.Errorf("path traversal must be rejected, got: %v", err)
	}
}
