package bundle

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"go.uber.org/zap"

	"anfc/anf"
)

// maxRasterDim caps rasterization size so a broken viewBox cannot allocate
// an absurd RGBA buffer.
const maxRasterDim = 8192

// EnsureCover inserts a generated cover when the document carries no header
// component: the fallback SVG is rasterized, resized to the configured
// dimensions, JPEG-encoded and prepended as a header fill.
func (b *Bundler) EnsureCover(doc *anf.Document, svg []byte, width, height int) error {
	for _, c := range doc.Components {
		if role, _ := c["role"].(string); role == "header" {
			return nil
		}
	}
	if len(svg) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	img, err := rasterizeSVG(svg, width, height)
	if err != nil {
		return fmt.Errorf("unable to rasterize fallback cover: %w", err)
	}
	img = imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return fmt.Errorf("unable to encode fallback cover: %w", err)
	}
	name := b.Add("cover.jpg", buf.Bytes())
	b.Log.Debug("Generated fallback cover", zap.String("asset", name))

	header := map[string]any{
		"role":   "header",
		"layout": "header-layout",
		"style": map[string]any{
			"fill": map[string]any{
				"type":                "image",
				"URL":                 "bundle://" + name,
				"fillMode":            "cover",
				"verticalAlignment":   "center",
				"horizontalAlignment": "center",
			},
		},
	}
	doc.Components = append([]map[string]any{header}, doc.Components...)
	if doc.ComponentLayouts == nil {
		doc.ComponentLayouts = map[string]any{}
	}
	if _, ok := doc.ComponentLayouts["header-layout"]; !ok {
		doc.ComponentLayouts["header-layout"] = map[string]any{
			"ignoreDocumentMargin": true,
			"minimumHeight":        "50vh",
		}
	}
	return nil
}

// rasterizeSVG renders SVG data into an RGBA image fitted to the target box
// while keeping the aspect ratio.
func rasterizeSVG(svgData []byte, targetW, targetH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, err
	}

	intrW := int(math.Ceil(icon.ViewBox.W))
	intrH := int(math.Ceil(icon.ViewBox.H))
	if intrW <= 0 {
		intrW = targetW
	}
	if intrH <= 0 {
		intrH = targetH
	}

	scale := math.Min(float64(targetW)/float64(intrW), float64(targetH)/float64(intrH))
	w := max(int(math.Round(float64(intrW)*scale)), 1)
	h := max(int(math.Round(float64(intrH)*scale)), 1)
	if w > maxRasterDim || h > maxRasterDim {
		s := min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = max(int(math.Round(float64(w)*s)), 1)
		h = max(int(math.Round(float64(h)*s)), 1)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.RGBA{255, 255, 255, 255}}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	dasher := rasterx.NewDasher(w, h, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}
