package resources

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majo33/atom/internal/core/meta"
)

func materialFiles(t *testing.T) fstest.MapFS {
	files := fstest.MapFS{
		"images/brick.png": {Data: pngBytes(t, 8, 8)},
		"materials/skin.json": {Data: []byte(`{
			"type": "skin",
			"color": [1, 0.5, 0],
			"diffuse_map": "brick"
		}`)},
		"materials/glass.json":   {Data: []byte(`{"type": "glass"}`)},
		"materials/shiny.json":   {Data: []byte(`{"type": "phong", "shininess": "very", "specular": [0, 1, 0]}`)},
		"materials/untyped.json": {Data: []byte(`{"color": [1, 1, 1]}`)},
	}
	shaderFiles(files, "flat", "phong", "skin")
	return files
}

func TestSkinMaterial(t *testing.T) {
	f := newFixture(t, materialFiles(t))

	h, ok := f.svc.Material("skin")
	require.True(t, ok)

	skin, ok := h.Get().(*SkinMaterial)
	require.True(t, ok)
	assert.Equal(t, "skin", skin.Kind())
	assert.Equal(t, [3]float64{1, 0.5, 0}, skin.Color)
	require.True(t, skin.DiffuseMap.Valid())
	assert.Equal(t, "texture:brick", skin.DiffuseMap.Name())
	require.True(t, skin.Technique().Valid())
	_, ok = skin.Technique().Get().FindParam("diffuse")
	assert.True(t, ok)

	sources := h.Resource().Sources()
	for _, want := range []string{
		"file:materials/skin.json",
		"shader:skin",
		"file:shaders/skin.vs",
		"texture:brick",
		"image:brick",
		"file:images/brick.png",
	} {
		assert.Contains(t, sources, want)
	}
}

func TestMaterialReloadFollowsTexture(t *testing.T) {
	files := materialFiles(t)
	f := newFixture(t, files)

	h, ok := f.svc.Material("skin")
	require.True(t, ok)

	files["images/brick.png"] = &fstest.MapFile{Data: pngBytes(t, 32, 32)}
	report := f.svc.FileChanged("images/brick.png")

	assert.Equal(t, []string{"image:brick", "texture:brick", "material:skin"}, report.Reloaded)
	skin := h.Get().(*SkinMaterial)
	assert.Equal(t, 32, skin.DiffuseMap.Get().Width())
}

func TestUnknownMaterialType(t *testing.T) {
	f := newFixture(t, materialFiles(t))

	_, ok := f.svc.Material("glass")
	assert.False(t, ok)
	assert.False(t, f.svc.Contains("material:glass"))

	entries := f.logs.FilterMessage("can't load resource").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "material:glass", entries[0].ContextMap()["resource"])
	assert.Contains(t, entries[0].ContextMap()["error"], `"glass"`)
}

func TestMaterialWithoutType(t *testing.T) {
	f := newFixture(t, materialFiles(t))

	_, ok := f.svc.Material("untyped")
	assert.False(t, ok)
}

func TestBadPropertyKeepsDefault(t *testing.T) {
	f := newFixture(t, materialFiles(t))

	h, ok := f.svc.Material("shiny")
	require.True(t, ok)
	phong := h.Get().(*PhongMaterial)
	assert.Equal(t, 32.0, phong.Shininess)
	assert.Equal(t, [3]float64{0, 1, 0}, phong.Specular)
	assert.False(t, phong.DiffuseMap.Valid())

	warnings := f.logs.FilterMessage("can't read material property").All()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0].ContextMap()["error"], "shininess")
}

func TestYAMLMaterials(t *testing.T) {
	files := fstest.MapFS{
		"mats/plain.yaml": {Data: []byte("type: flat\ncolor: [0, 0, 1]\n")},
	}
	shaderFiles(files, "flat")
	paths := DefaultPaths()
	paths.Materials = "mats"
	paths.MaterialExt = "yaml"
	f := newFixture(t, files, WithPaths(paths))

	h, ok := f.svc.Material("plain")
	require.True(t, ok)
	flat := h.Get().(*FlatMaterial)
	assert.Equal(t, [3]float64{0, 0, 1}, flat.Color)
}

type toonMaterial struct {
	materialBase
	Bands float64
}

func (m *toonMaterial) Properties(*MaterialContext) meta.Class {
	return meta.Class{Name: "toon", Fields: []meta.Field{floatField("bands", &m.Bands)}}
}

func TestRegisterMaterialType(t *testing.T) {
	files := fstest.MapFS{"materials/cel.json": {Data: []byte(`{"type": "toon", "bands": 4}`)}}
	shaderFiles(files, "flat")
	f := newFixture(t, files)

	l, ok := f.svc.LoaderFor(TagMaterial)
	require.True(t, ok)
	materials := l.(*MaterialLoader)
	materials.Register("toon", func(ctx *MaterialContext) (Material, error) {
		tech, err := ctx.Technique("flat")
		if err != nil {
			return nil, err
		}
		return &toonMaterial{materialBase: materialBase{kind: "toon", technique: tech}, Bands: 2}, nil
	})
	assert.Equal(t, []string{"flat", "phong", "skin", "toon"}, materials.Kinds())

	h, ok := f.svc.Material("cel")
	require.True(t, ok)
	assert.Equal(t, 4.0, h.Get().(*toonMaterial).Bands)
}
