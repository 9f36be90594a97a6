package resources

import (
	"fmt"
	"strings"
)

// Delimiter separates the kind tag from the base name: "texture:brick".
const Delimiter = ":"

const (
	TagFile       = "file"
	TagImage      = "image"
	TagTexture    = "texture"
	TagShader     = "shader"
	TagMaterial   = "material"
	TagRawMesh    = "raw_mesh"
	TagMesh       = "mesh"
	TagBitmapFont = "bitmap_font"
	TagSound      = "sound"
	TagMusic      = "music"
	TagScript     = "script"
)

// MakeName joins a tag and a base name.
func MakeName(tag, name string) string {
	return tag + Delimiter + name
}

// SplitName recovers the tag and base name. Only the first delimiter splits,
// so base names may contain the delimiter themselves.
func SplitName(full string) (tag, name string, err error) {
	tag, name, ok := strings.Cut(full, Delimiter)
	if !ok || tag == "" || name == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidName, full)
	}
	return tag, name, nil
}
