package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionPad = 3

var captionBackground = color.RGBA{A: 0xb0}

// Caption writes text over a dark band at the top-left corner of img. Text
// wider than the image is clipped.
func Caption(img *image.RGBA, text string) {
	if text == "" {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: face}
	width := d.MeasureString(text).Ceil() + 2*captionPad
	height := face.Height + 2*captionPad
	band := image.Rect(0, 0, width, height).Intersect(img.Bounds())
	draw.Draw(img, band, image.NewUniform(captionBackground), image.Point{}, draw.Over)
	d.Dot = fixed.P(captionPad, captionPad+face.Ascent)
	d.DrawString(text)
}
