package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds gamma corrected colors in [0,1] for every pixel. Row 0 is
// the bottom of the image, matching the camera's t coordinate.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []float64 // Height*Width*3 RGB values, row-major
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*3),
	}
}

func (fb *Framebuffer) offset(row, col int) int {
	return (row*fb.Width + col) * 3
}

// At returns the color of a pixel
func (fb *Framebuffer) At(row, col int) core.Vec3 {
	i := fb.offset(row, col)
	return core.NewVec3(fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2])
}

// Set stores the color of a pixel
func (fb *Framebuffer) Set(row, col int, c core.Vec3) {
	i := fb.offset(row, col)
	fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2] = c.X, c.Y, c.Z
}

// ToRGBA converts the framebuffer to an 8-bit image with the top row first
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for row := 0; row < fb.Height; row++ {
		y := fb.Height - 1 - row
		for col := 0; col < fb.Width; col++ {
			c := fb.At(row, col)
			img.SetRGBA(col, y, color.RGBA{
				R: Quantize(c.X),
				G: Quantize(c.Y),
				B: Quantize(c.Z),
				A: 255,
			})
		}
	}
	return img
}

// Quantize maps a [0,1] channel value to 8 bits
func Quantize(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(255.99 * v)
}
