package resources

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/majo33/atom/internal/core/audio"
	"github.com/majo33/atom/internal/core/scripting"
	"github.com/majo33/atom/internal/core/video"
)

// FileLoader exposes raw file contents as []byte.
type FileLoader struct{}

func (FileLoader) CreateResource(s *Service, name string) (*Resource, error) {
	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return nil, err
	}
	return New(MakeName(TagFile, name), data), nil
}

func (l FileLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

// ImageLoader decodes <Images>/<name>.png into a *video.Image.
type ImageLoader struct{}

func (ImageLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.ImageFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	img, err := video.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r := New(MakeName(TagImage, name), img)
	r.DependOnFile(filename)
	return r, nil
}

func (l ImageLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

// TextureLoader uploads the image of the same name.
type TextureLoader struct{}

func (TextureLoader) CreateResource(s *Service, name string) (*Resource, error) {
	img, ok := s.Image(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDependency, MakeName(TagImage, name))
	}
	tex, err := video.NewTexture(s.video, img.Get())
	if err != nil {
		return nil, err
	}
	r := New(MakeName(TagTexture, name), tex)
	r.DependOnResource(img.Resource())
	return r, nil
}

func (l TextureLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

// TechniqueLoader compiles and links <Shaders>/<name>.{vs,ps,gs}. The
// geometry stage is optional but its path is always recorded so creating
// it later triggers a reload.
type TechniqueLoader struct{}

func (TechniqueLoader) CreateResource(s *Service, name string) (*Resource, error) {
	files := s.paths.ShaderFiles(name)
	sources := make(map[video.ShaderStage]string, len(files))
	for _, stage := range []video.ShaderStage{video.StageVertex, video.StagePixel, video.StageGeometry} {
		data, err := fs.ReadFile(s.fsys, files[stage])
		if err != nil {
			if stage == video.StageGeometry && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		sources[stage] = string(data)
	}
	tech, err := video.NewTechnique(s.video, name, sources)
	if err != nil {
		return nil, err
	}
	r := New(MakeName(TagShader, name), tech)
	r.DependOnFiles(files[video.StagePixel], files[video.StageVertex], files[video.StageGeometry])
	return r, nil
}

func (l TechniqueLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

type SoundLoader struct{}

func (SoundLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.SoundFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	snd, err := audio.NewSound(s.audio, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r := New(MakeName(TagSound, name), snd)
	r.DependOnFile(filename)
	return r, nil
}

func (l SoundLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

type MusicLoader struct{}

func (MusicLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.MusicFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	m, err := audio.NewMusic(s.audio, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	r := New(MakeName(TagMusic, name), m)
	r.DependOnFile(filename)
	return r, nil
}

func (l MusicLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

// ScriptLoader compiles <Scripts>/<name>.lua.
type ScriptLoader struct{}

func (ScriptLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.ScriptFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	script, err := scripting.Compile(filename, data)
	if err != nil {
		return nil, err
	}
	r := New(MakeName(TagScript, name), script)
	r.DependOnFile(filename)
	return r, nil
}

func (l ScriptLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}
