package frame

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	ErrUnsupportedFormat = errors.New("frame: unsupported image format")
)

type encoderFn func(w io.Writer, b *Buffer) error

type imageFormat struct {
	contentType string
	encode      encoderFn
}

// Opens output files; replaced in tests.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

var formats = map[string]imageFormat{
	"ppm": {
		contentType: "image/x-portable-pixmap",
		encode: func(w io.Writer, b *Buffer) error {
			return b.WritePPM(w)
		},
	},
	"png": {
		contentType: "image/png",
		encode: func(w io.Writer, b *Buffer) error {
			return png.Encode(w, b.Image())
		},
	},
	"bmp": {
		contentType: "image/bmp",
		encode: func(w io.Writer, b *Buffer) error {
			return bmp.Encode(w, b.Image())
		},
	},
	"tiff": {
		contentType: "image/tiff",
		encode: func(w io.Writer, b *Buffer) error {
			return tiff.Encode(w, b.Image(), &tiff.Options{Compression: tiff.Deflate})
		},
	},
}

// Detect the image format from a file name extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "tif" {
		ext = "tiff"
	}
	if _, exists := formats[ext]; !exists {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return ext, nil
}

// Get the MIME type for an image format.
func ContentType(format string) string {
	if f, exists := formats[format]; exists {
		return f.contentType
	}
	return "application/octet-stream"
}

// Encode the buffer using the specified image format.
func Encode(w io.Writer, b *Buffer, format string) error {
	f, exists := formats[format]
	if !exists {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return f.encode(w, b)
}

// Save the buffer to a file. The image format is selected based on the
// file extension.
func Save(b *Buffer, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	return writeFile(path, func(w io.Writer) error {
		return Encode(w, b, format)
	})
}

// Create path and fill it using write. Close errors are reported since they
// may hide a failed flush.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("frame: could not create %s: %w", path, err)
	}

	if err = write(f); err != nil {
		f.Close()
		return fmt.Errorf("frame: could not encode %s: %w", path, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("frame: could not write %s: %w", path, err)
	}
	return nil
}

// Generate a preview of the buffer that fits inside a maxW x maxH box while
// preserving the aspect ratio.
func Thumbnail(b *Buffer, maxW, maxH uint) image.Image {
	return resize.Thumbnail(maxW, maxH, b.Image(), resize.Bilinear)
}

// Save a thumbnail image. The format is selected based on the file
// extension; ppm thumbnails are not supported.
func SaveThumbnail(b *Buffer, path string, maxW, maxH uint) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	var encode func(io.Writer, image.Image) error
	switch format {
	case "png":
		encode = png.Encode
	case "bmp":
		encode = bmp.Encode
	case "tiff":
		encode = func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, nil)
		}
	default:
		return fmt.Errorf("%w: %q thumbnails", ErrUnsupportedFormat, format)
	}

	thumb := Thumbnail(b, maxW, maxH)
	return writeFile(path, func(w io.Writer) error {
		return encode(w, thumb)
	})
}
