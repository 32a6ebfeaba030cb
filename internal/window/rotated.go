package window

import (
	"image"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
)

// rotatedLabel renders text bottom-to-top, for the narrow fader tiles
func rotatedLabel(text string) *canvas.Image {
	f, err := freetype.ParseFont(theme.DefaultTextBoldFont().Content())
	if err != nil {
		log.Printf("Failed to parse font: %v", err)
		return canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	}

	fontSize := float64(theme.CaptionTextSize())
	dpi := float64(72)

	face := truetype.NewFace(f, &truetype.Options{Size: fontSize, DPI: dpi})
	defer face.Close()

	textWidth := 0
	for _, r := range text {
		if adv, ok := face.GlyphAdvance(r); ok {
			textWidth += adv.Round()
		}
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()

	padding := 2
	w := textWidth + padding*2
	h := (metrics.Ascent+metrics.Descent).Ceil() + padding*2

	src := image.NewRGBA(image.Rect(0, 0, w, h))
	c := freetype.NewContext()
	c.SetFont(f)
	c.SetFontSize(fontSize)
	c.SetDPI(dpi)
	c.SetClip(src.Bounds())
	c.SetDst(src)
	c.SetSrc(image.NewUniform(theme.Color(theme.ColorNameForeground)))
	if _, err := c.DrawString(text, freetype.Pt(padding, padding+ascent)); err != nil {
		log.Printf("Failed to draw string: %v", err)
	}

	img := rotateCCW(src)
	out := canvas.NewImageFromImage(img)
	out.SetMinSize(fyne.NewSize(float32(h), float32(w)))
	out.FillMode = canvas.ImageFillOriginal
	return out
}

// rotateCCW turns an image a quarter turn counter-clockwise
func rotateCCW(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Set(y, w-1-x, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
