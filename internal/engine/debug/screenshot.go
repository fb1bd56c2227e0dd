package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// FaceDumper writes captured cube faces to PNG files.
type FaceDumper struct {
	outputDir string
	prefix    string
}

// NewFaceDumper creates a new face dump handler.
func NewFaceDumper(outputDir, prefix string) *FaceDumper {
	return &FaceDumper{
		outputDir: outputDir,
		prefix:    prefix,
	}
}

// SetOutputDir sets the output directory for dumps.
func (fd *FaceDumper) SetOutputDir(dir string) {
	fd.outputDir = dir
}

// Filename returns the path a face of the given cube slot is written to.
func (fd *FaceDumper) Filename(cube int, face string) string {
	filename := fmt.Sprintf("%s_cube%02d_%s.png", fd.prefix, cube, face)
	if fd.outputDir != "" {
		filename = filepath.Join(fd.outputDir, filename)
	}
	return filename
}

// ImageFromPixels converts bottom-up RGBA pixels read back from GL into an
// image. pixels must hold width*height*4 bytes.
func ImageFromPixels(pixels []byte, width, height int) (*image.RGBA, error) {
	if len(pixels) != width*height*4 {
		return nil, fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))

	rowSize := width * 4
	for y := 0; y < height; y++ {
		srcY := height - 1 - y // Flip Y
		srcOffset := srcY * rowSize
		dstOffset := y * img.Stride

		copy(img.Pix[dstOffset:dstOffset+rowSize], pixels[srcOffset:srcOffset+rowSize])
	}
	return img, nil
}

// WriteFace saves one captured face of a cube slot.
func (fd *FaceDumper) WriteFace(cube int, face string, pixels []byte, size int) (string, error) {
	img, err := ImageFromPixels(pixels, size, size)
	if err != nil {
		return "", err
	}

	if fd.outputDir != "" {
		if err := os.MkdirAll(fd.outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating output dir: %w", err)
		}
	}

	filename := fd.Filename(cube, face)
	file, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}

	return filename, nil
}
