package raster

import (
	"bytes"
	_ "embed"
	"fmt"
	"image"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

//go:embed assets/glow.svg
var glowSVGData []byte

// GlowSprite rasterizes the pointer glow gradient into a size x size image
func GlowSprite(size int) (*image.RGBA, error) {
	if size <= 0 {
		return nil, fmt.Errorf("glow sprite size must be positive, got %d", size)
	}
	return svgToImage(glowSVGData, size, size)
}

// svgToImage renders SVG data at the given pixel size
func svgToImage(svgData []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}
