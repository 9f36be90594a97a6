package resources

import (
	"fmt"

	"github.com/majo33/atom/internal/core/video"
)

// BitmapFont is a 16x16 glyph atlas. It keeps the texture handle rather than
// the texture so a texture reload is visible through the font.
type BitmapFont struct {
	Texture Handle[*video.Texture]
	Metrics video.FontMetrics
}

func (f *BitmapFont) Glyph(r rune) (video.Rect, bool) {
	return f.Metrics.Glyph(r)
}

// BitmapFontLoader builds a font over the texture of the same name.
type BitmapFontLoader struct{}

func (BitmapFontLoader) CreateResource(s *Service, name string) (*Resource, error) {
	tex, ok := s.Texture(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDependency, MakeName(TagTexture, name))
	}
	t := tex.Get()
	font := &BitmapFont{Texture: tex, Metrics: video.GridMetrics(t.Width(), t.Height())}
	r := New(MakeName(TagBitmapFont, name), font)
	r.DependOnResource(tex.Resource())
	return r, nil
}

func (l BitmapFontLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}
