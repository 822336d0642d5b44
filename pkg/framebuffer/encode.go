package framebuffer

import (
	"bufio"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names an output image encoding
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatBMP  Format = "bmp"
	FormatTIFF Format = "tiff"
)

// JPEGQuality is used for every JPEG the package writes
const JPEGQuality = 95

// ParseFormat maps a format name or file extension (with or without the dot)
// to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", name)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatBMP:
		return "image/bmp"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

// PersistenceError reports a failure to encode or store a grid
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("persist image: %v", e.Err)
	}
	return fmt.Sprintf("persist image %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Encode writes the grid to w in the given format
func (g *Grid) Encode(w io.Writer, format Format) error {
	if err := encodeImage(w, g.Image(), format); err != nil {
		return &PersistenceError{Err: err}
	}
	return nil
}

func encodeImage(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatJPEG:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case FormatPNG:
		return png.Encode(w, img)
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Serialize writes the grid to path, choosing the encoding from the file
// extension. It must be called only after every pixel has been written.
func (g *Grid) Serialize(path string) (err error) {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &PersistenceError{Path: path, Err: closeErr}
		}
	}()

	w := bufio.NewWriter(file)
	if err := encodeImage(w, g.Image(), format); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	if err := w.Flush(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
