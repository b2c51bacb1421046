package ocrconv

// Image loading, cropping and saving.

import (
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// loadImage reads and decodes the image at path.
func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	return img, err
}

// decodeImageConfig reads the image metadata at path without decoding the
// pixel data.
func decodeImageConfig(path string) (config image.Config, format string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()

	return image.DecodeConfig(f)
}

// cropRegion extracts the bounding box area from img. The returned image has
// its origin at (0, 0) and dimensions (b.Width(), b.Height()).
func cropRegion(img image.Image, b BoundingBox) image.Image {
	return imaging.Crop(img, image.Rect(b.Left, b.Upper, b.Right, b.Lower))
}

// saveImage encodes img as PNG or JPEG, depending on the file extension of
// path, and writes it there.
func saveImage(path string, img image.Image, jpegQuality int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer closeWithErrCheck(f, &err)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality})
	}
	return err
}
