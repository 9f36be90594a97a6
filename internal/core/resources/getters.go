package resources

import (
	"github.com/majo33/atom/internal/core/audio"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/scripting"
	"github.com/majo33/atom/internal/core/video"
)

func lookup[T any](s *Service, tag, name string) (Handle[T], bool) {
	r, ok := s.Get(MakeName(tag, name))
	if !ok {
		return Handle[T]{}, false
	}
	h, ok := As[T](r)
	if !ok {
		s.log.Error("resource payload has unexpected type",
			log.String("resource", r.name), log.Any("payload", r.data))
	}
	return h, ok
}

func (s *Service) File(path string) (Handle[[]byte], bool) {
	return lookup[[]byte](s, TagFile, path)
}

func (s *Service) Image(name string) (Handle[*video.Image], bool) {
	return lookup[*video.Image](s, TagImage, name)
}

func (s *Service) Texture(name string) (Handle[*video.Texture], bool) {
	return lookup[*video.Texture](s, TagTexture, name)
}

func (s *Service) Technique(name string) (Handle[*video.Technique], bool) {
	return lookup[*video.Technique](s, TagShader, name)
}

func (s *Service) Material(name string) (Handle[Material], bool) {
	return lookup[Material](s, TagMaterial, name)
}

func (s *Service) RawMesh(name string) (Handle[*RawMesh], bool) {
	return lookup[*RawMesh](s, TagRawMesh, name)
}

func (s *Service) Mesh(name string) (Handle[*video.Mesh], bool) {
	return lookup[*video.Mesh](s, TagMesh, name)
}

func (s *Service) BitmapFont(name string) (Handle[*BitmapFont], bool) {
	return lookup[*BitmapFont](s, TagBitmapFont, name)
}

func (s *Service) Sound(name string) (Handle[*audio.Sound], bool) {
	return lookup[*audio.Sound](s, TagSound, name)
}

func (s *Service) Music(name string) (Handle[*audio.Music], bool) {
	return lookup[*audio.Music](s, TagMusic, name)
}

func (s *Service) Script(name string) (Handle[*scripting.Script], bool) {
	return lookup[*scripting.Script](s, TagScript, name)
}
