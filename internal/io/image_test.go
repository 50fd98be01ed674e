package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPickImage(t *testing.T) {
	full := map[string]string{
		"small":      "s.png",
		"medium":     "m.png",
		"large":      "l.png",
		"extralarge": "xl.png",
	}

	tests := []struct {
		name      string
		images    map[string]string
		preferred string
		want      string
		wantOK    bool
	}{
		{"preferred present", full, "medium", "m.png", true},
		{"fallback to largest", full, "mega", "xl.png", true},
		{"empty preferred url skipped", map[string]string{"large": "", "small": "s.png"}, "large", "s.png", true},
		{"unknown label", map[string]string{"": "plain.png"}, "large", "plain.png", true},
		{"nothing", map[string]string{"large": ""}, "large", "", false},
		{"nil map", nil, "large", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := PickImage(tt.images, tt.preferred)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("PickImage() = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResizeImage(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		maxW, maxH   int
		wantW, wantH int
	}{
		{"landscape", 300, 200, 150, 150, 150, 100},
		{"portrait", 200, 400, 100, 100, 50, 100},
		{"already small", 80, 60, 100, 100, 80, 60},
		{"no limit", 120, 90, 0, 0, 120, 90},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(context.Background(), pngBytes(t, tt.w, tt.h), tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("ResizeImage() error = %v", err)
			}

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatal(err)
			}
			if format != "jpeg" {
				t.Errorf("format = %q, want jpeg", format)
			}
			if cfg.Width != tt.wantW || cfg.Height != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", cfg.Width, cfg.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewImageService()

	out, err := svc.ConvertToJPEG(context.Background(), pngBytes(t, 10, 10))
	if err != nil {
		t.Fatalf("ConvertToJPEG() error = %v", err)
	}
	if _, format, _ := image.DecodeConfig(bytes.NewReader(out)); format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}

	if _, err := svc.ConvertToJPEG(context.Background(), []byte("not an image")); err == nil {
		t.Error("expected error for invalid image")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.ConvertToJPEG(ctx, pngBytes(t, 1, 1)); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestPrepareCover(t *testing.T) {
	tests := []struct {
		name    string
		maxSize int
		toJPEG  bool
		wantExt string
		wantW   int
	}{
		{"resize implies jpeg", 50, false, ".jpg", 50},
		{"convert only", 0, true, ".jpg", 100},
		{"keep original", 0, false, ".png", 100},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ext, err := svc.PrepareCover(context.Background(), pngBytes(t, 100, 100), tt.maxSize, tt.toJPEG)
			if err != nil {
				t.Fatalf("PrepareCover() error = %v", err)
			}
			if ext != tt.wantExt {
				t.Errorf("ext = %q, want %q", ext, tt.wantExt)
			}
			cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Width != tt.wantW {
				t.Errorf("width = %d, want %d", cfg.Width, tt.wantW)
			}
		})
	}

	if _, _, err := svc.PrepareCover(context.Background(), []byte("not an image"), 0, false); err == nil {
		t.Error("expected error for undecodable data")
	}
}
