package raster

import "image"

// FrameBuffer holds 8-bit gray levels as a flat slice for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Gray   []uint8 // one level per pixel, len = W*H, row-major
}

// NewFrameBuffer allocates a black w×h buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Gray:   make([]uint8, w*h),
	}
}

// NRGBA expands the buffer into an opaque NRGBA image.
func (fb *FrameBuffer) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		src := fb.Gray[y*fb.Width : (y+1)*fb.Width]
		off := y * img.Stride
		for x, g := range src {
			i := off + x*4
			img.Pix[i] = g
			img.Pix[i+1] = g
			img.Pix[i+2] = g
			img.Pix[i+3] = 255
		}
	}
	return img
}
