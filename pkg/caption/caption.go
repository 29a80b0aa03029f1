// Package caption appends a filename caption bar to rendered screenshots.
package caption

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	barHeight = 60
	fontSize  = 26

	barColor  = "#1e1f1c"
	textColor = "#f8f8f2"
)

// Append decodes a PNG screenshot and returns it with a caption bar drawn
// under it, labeled with the given text (typically the source filename).
func Append(data []byte, label string) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	dc := gg.NewContext(width, height+barHeight)
	dc.SetHexColor(barColor)
	dc.Clear()
	dc.DrawImage(img, 0, 0)

	fnt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(fnt, &truetype.Options{Size: fontSize}))
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(label, float64(width)/2, float64(height)+barHeight/2, 0.5, 0.35)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
