package video

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
)

// Image is a decoded CPU-side image.
type Image struct {
	img image.Image
}

// DecodeImage decodes PNG data.
func DecodeImage(data []byte) (*Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return &Image{img: img}, nil
}

// NewImage wraps an already decoded image.
func NewImage(img image.Image) *Image {
	return &Image{img: img}
}

func (i *Image) Image() image.Image { return i.img }
func (i *Image) Width() int         { return i.img.Bounds().Dx() }
func (i *Image) Height() int        { return i.img.Bounds().Dy() }
