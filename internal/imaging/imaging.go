package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	_ "image/gif"
	_ "image/jpeg"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrDecode indicates the input could not be decoded as an image.
var ErrDecode = errors.New("failed to decode image")

// Adaptive threshold parameters tuned for scanned text.
const (
	thresholdWindow   = 11
	thresholdConstant = 2
)

// Load reads and decodes an image file.
func Load(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return img, nil
}

// Preprocess normalizes an image for OCR: grayscale always, then a
// denoising blur and adaptive thresholding when enhance is set.
func Preprocess(img image.Image, enhance bool) *image.Gray {
	gray := Grayscale(img)
	if !enhance {
		return gray
	}
	return adaptiveThreshold(boxBlur(gray), thresholdWindow, thresholdConstant)
}

// Grayscale converts any image to a single-channel grayscale image.
func Grayscale(img image.Image) *image.Gray {
	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, img, bounds.Min, draw.Src)
	return gray
}

// EncodePNG serializes an image as PNG bytes for the OCR engine.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// boxBlur applies a 3x3 mean filter, a cheap denoise ahead of
// thresholding.
func boxBlur(src *image.Gray) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, count int
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					sum += int(src.GrayAt(nx, ny).Y)
					count++
				}
			}
			dst.SetGray(x, y, color.Gray{Y: uint8(sum / count)})
		}
	}
	return dst
}

// adaptiveThreshold binarizes using the local mean over a window x window
// neighborhood minus a constant, the standard adaptive mean scheme for
// uneven document lighting.
func adaptiveThreshold(src *image.Gray, window, c int) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	half := window / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var sum, count int
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					nx, ny := x+dx, y+dy
					if nx < bounds.Min.X || nx >= bounds.Max.X || ny < bounds.Min.Y || ny >= bounds.Max.Y {
						continue
					}
					sum += int(src.GrayAt(nx, ny).Y)
					count++
				}
			}
			mean := sum / count
			if int(src.GrayAt(x, y).Y) > mean-c {
				dst.SetGray(x, y, color.Gray{Y: 255})
			} else {
				dst.SetGray(x, y, color.Gray{Y: 0})
			}
		}
	}
	return dst
}
