package video

import "fmt"

// Texture is a GPU texture created from an Image.
type Texture struct {
	backend Backend
	handle  Handle
	width   int
	height  int
}

func NewTexture(backend Backend, img *Image) (*Texture, error) {
	if img == nil {
		return nil, fmt.Errorf("create texture: nil image")
	}
	h, err := backend.CreateTexture(img.Image())
	if err != nil {
		return nil, err
	}
	return &Texture{backend: backend, handle: h, width: img.Width(), height: img.Height()}, nil
}

func (t *Texture) Handle() Handle { return t.handle }
func (t *Texture) Width() int     { return t.width }
func (t *Texture) Height() int    { return t.height }
func (t *Texture) Valid() bool    { return t.handle != 0 && t.backend.Valid(t.handle) }

// Release destroys the backend object.
func (t *Texture) Release() {
	if t.handle != 0 {
		t.backend.Destroy(t.handle)
		t.handle = 0
	}
}
