package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageSizes lists Last.fm image size labels from largest to smallest.
var ImageSizes = []string{"mega", "extralarge", "large", "medium", "small"}

// PickImage returns the URL of the preferred size from a Last.fm image map.
//
// When preferred is missing or empty, the largest available size is used,
// then any remaining label in sorted order. ok is false if images holds no
// URL at all.
//
// Example:
//
//	url, ok := PickImage(album.Images(), "extralarge")
func PickImage(images map[string]string, preferred string) (url string, ok bool) {
	if u := images[preferred]; u != "" {
		return u, true
	}
	for _, size := range ImageSizes {
		if u := images[size]; u != "" {
			return u, true
		}
	}
	// Unlabelled or unknown sizes.
	var best string
	for size, u := range images {
		if u == "" {
			continue
		}
		if url == "" || size < best {
			url, best = u, size
		}
	}
	return url, url != ""
}

// ImageService provides image processing operations for cover art.
//
// Example usage:
//
//	svc := NewImageService()
//
//	// Download cover art
//	imageData, _ := client.DownloadBytes(ctx, url)
//
//	// Resize to max 500x500 and convert to JPEG
//	resized, _ := svc.ResizeImage(ctx, imageData, 500, 500)
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// ResizeImage resizes an image to fit within the specified maximum dimensions.
//
// The aspect ratio is preserved and images are never enlarged. Non-positive
// limits leave the dimensions unchanged. The result is always JPEG-encoded.
//
// The Catmull-Rom algorithm is used for high-quality resizing.
//
// Example:
//
//	// Resize to fit within 1000x1000, maintaining aspect ratio
//	resized, err := svc.ResizeImage(ctx, imageData, 1000, 1000)
//	// A 1500x1000 image becomes 1000x666
//	// A 300x300 image remains 300x300 (but re-encoded)
func (s *ImageService) ResizeImage(ctx context.Context, data []byte, maxWidth, maxHeight int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return encodeJPEG(dst)
}

// ConvertToJPEG converts an image to JPEG format with 90% quality.
//
// Example:
//
//	pngData, _ := client.DownloadBytes(ctx, url)
//	jpegData, err := svc.ConvertToJPEG(ctx, pngData)
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return encodeJPEG(img)
}

// PrepareCover processes downloaded cover art and returns it with the file
// extension matching its encoding.
//
// A positive maxSize resizes into a maxSize x maxSize box, which always
// produces JPEG. Otherwise toJPEG re-encodes as JPEG and false keeps the
// original bytes and format.
//
// Example:
//
//	cover, ext, err := svc.PrepareCover(ctx, imageData, 1000, true) // ext == ".jpg"
//	cover, ext, err := svc.PrepareCover(ctx, pngData, 0, false)     // ext == ".png"
func (s *ImageService) PrepareCover(ctx context.Context, data []byte, maxSize int, toJPEG bool) ([]byte, string, error) {
	var err error
	switch {
	case maxSize > 0:
		data, err = s.ResizeImage(ctx, data, maxSize, maxSize)
	case toJPEG:
		data, err = s.ConvertToJPEG(ctx, data)
	}
	if err != nil {
		return nil, "", err
	}

	ext, err := ImageExtension(data)
	if err != nil {
		return nil, "", err
	}
	return data, ext, nil
}

// ImageExtension returns the file extension (".jpg", ".png", ".gif") of
// encoded image data.
func ImageExtension(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if format == "jpeg" {
		return ".jpg", nil
	}
	return "." + format, nil
}

// fitWithin scales width and height down to the limits, keeping the ratio.
func fitWithin(width, height, maxWidth, maxHeight int) (int, int) {
	if maxWidth <= 0 || maxHeight <= 0 || height == 0 {
		return width, height
	}
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		return max(int(float64(maxHeight)*ratio), 1), maxHeight
	}
	// Width is the limiting factor
	return maxWidth, max(int(float64(maxWidth)/ratio), 1)
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
