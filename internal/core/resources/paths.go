package resources

import (
	"path"

	"github.com/majo33/atom/internal/core/video"
)

// Paths maps base names to files, one directory per kind.
type Paths struct {
	Images      string
	Shaders     string
	Materials   string
	MaterialExt string
	Meshes      string
	Sounds      string
	Music       string
	Scripts     string
}

func DefaultPaths() Paths {
	return Paths{
		Images:      "images",
		Shaders:     "shaders",
		Materials:   "materials",
		MaterialExt: "json",
		Meshes:      "meshes",
		Sounds:      "sounds",
		Music:       "music",
		Scripts:     "scripts",
	}
}

func (p Paths) ImageFile(name string) string { return path.Join(p.Images, name+".png") }
func (p Paths) MaterialFile(name string) string {
	return path.Join(p.Materials, name+"."+p.MaterialExt)
}
func (p Paths) RawMeshFile(name string) string { return path.Join(p.Meshes, name+".mesh") }
func (p Paths) SoundFile(name string) string   { return path.Join(p.Sounds, name+".ogg") }
func (p Paths) MusicFile(name string) string   { return path.Join(p.Music, name+".ogg") }
func (p Paths) ScriptFile(name string) string  { return path.Join(p.Scripts, name+".lua") }

// ShaderFiles lists the stage sources of a technique in pixel, vertex,
// geometry order.
func (p Paths) ShaderFiles(name string) map[video.ShaderStage]string {
	base := path.Join(p.Shaders, name)
	return map[video.ShaderStage]string{
		video.StagePixel:    base + ".ps",
		video.StageVertex:   base + ".vs",
		video.StageGeometry: base + ".gs",
	}
}
