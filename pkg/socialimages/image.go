package socialimages

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/glaslos/ssdeep"
	"github.com/golang/freetype/truetype"
	"github.com/root4loot/goutils/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

// Image holds PNG encoded bytes.
type Image []byte

// Imprint draws text in a translucent band over the bottom of the image. The
// image keeps its dimensions.
func (img Image) Imprint(text string) (Image, error) {
	decoded, err := png.Decode(bytes.NewReader(img))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	w := float64(decoded.Bounds().Dx())
	h := float64(decoded.Bounds().Dy())
	band := h / 8

	face, err := loadFont(band / 2)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContextForImage(decoded)
	dc.SetRGBA(0, 0, 0, 0.55)
	dc.DrawRectangle(0, h-band, w, band)
	dc.Fill()
	dc.SetRGB(1, 1, 1)
	dc.SetFontFace(face)
	dc.DrawStringAnchored(text, w/2, h-band/2, 0.5, 0.35)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func loadFont(size float64) (font.Face, error) {
	ttFont, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttFont, &truetype.Options{Size: size}), nil
}

// SimilarTo returns the index of the first image in others whose fuzzy hash
// scores at least threshold (1-100) against img, or -1.
func (img Image) SimilarTo(others []Image, threshold int) int {
	hash1, err := ssdeep.FuzzyBytes(img)
	if err != nil {
		log.Debugf("Could not hash image: %v", err)
		return -1
	}

	for i, other := range others {
		hash2, err := ssdeep.FuzzyBytes(other)
		if err != nil {
			continue
		}
		score, _ := ssdeep.Distance(hash1, hash2)
		if score >= threshold {
			return i
		}
	}
	return -1
}

// Save writes the image to path, replacing any existing file.
func (img Image) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}
