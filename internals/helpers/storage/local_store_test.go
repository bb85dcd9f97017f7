package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSafeName(t *testing.T) {
	cases := map[string]string{
		"Siti Nurhaliza":   "Siti_Nurhaliza",
		"  José  Ramírez ": "Jose_Ramirez",
		"a/b\\c":           "a_b_c",
		"":                 "file",
		"___":              "file",
	}
	for in, want := range cases {
		if got := SafeName(in); got != want {
			t.Errorf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLocalStoreSaveAndRemove(t *testing.T) {
	root := t.TempDir()
	s := NewLocalStore(root, "uploads")
	ctx := context.Background()

	pub, err := s.SaveBytes(ctx, "qrcodes", "a.png", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if pub != "/uploads/qrcodes/a.png" {
		t.Fatalf("public path = %q", pub)
	}
	if _, err := os.Stat(filepath.Join(root, "qrcodes", "a.png")); err != nil {
		t.Fatalf("file not on disk: %v", err)
	}
	if data, err := s.ReadFile(ctx, pub); err != nil || string(data) != "x" {
		t.Fatalf("read back = %q, %v", data, err)
	}

	if err := s.Remove(ctx, pub); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, pub); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
}

func TestLocalStoreRejectsForeignPath(t *testing.T) {
	s := NewLocalStore(t.TempDir(), "/uploads")
	for _, p := range []string{"/etc/passwd", "/exports/a.pdf", "/uploads/../../etc/passwd"} {
		if err := s.Remove(context.Background(), p); err == nil {
			t.Errorf("Remove(%q) should fail", p)
		}
	}
}

func TestFitPNGShrinksLargeImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1024, 512))
	src.Set(0, 0, color.White)

	out, err := FitPNG(src, 512, 512)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 512 || b.Dy() != 256 {
		t.Fatalf("size = %dx%d, want 512x256", b.Dx(), b.Dy())
	}

	decoded, err := DecodeImage(out, "logo.png")
	if err != nil || decoded.Bounds().Dx() != 512 {
		t.Fatalf("DecodeImage roundtrip failed: %v", err)
	}
}

func TestReapOlderThan(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "old.pdf")
	fresh := filepath.Join(dir, "fresh.pdf")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-10 * 24 * time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}

	n, err := ReapOlderThan(context.Background(), dir, time.Now().Add(-7*24*time.Hour), false)
	if err != nil || n != 1 {
		t.Fatalf("deleted=%d err=%v", n, err)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatal("old file should be gone")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatal("fresh file should remain")
	}

	n, err = ReapOlderThan(context.Background(), filepath.Join(dir, "missing"), time.Now(), false)
	if err != nil || n != 0 {
		t.Fatalf("missing dir: deleted=%d err=%v", n, err)
	}
}
