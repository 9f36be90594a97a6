package resources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/majo33/atom/internal/core/meta"
	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/video"
)

// Material is a render technique plus its parameters.
type Material interface {
	Kind() string
	Technique() Handle[*video.Technique]
	// Properties enumerates the settable parameters. Resource valued
	// properties are resolved through ctx so they are recorded as
	// dependencies of the material.
	Properties(ctx *MaterialContext) meta.Class
}

// MaterialCreator builds a material with default parameters.
type MaterialCreator func(ctx *MaterialContext) (Material, error)

// MaterialContext collects the resources a material pulls in while it is
// built.
type MaterialContext struct {
	s    *Service
	deps []*Resource
}

func (c *MaterialContext) Texture(name string) (Handle[*video.Texture], error) {
	h, ok := c.s.Texture(name)
	if !ok {
		return h, fmt.Errorf("%w: %s", ErrDependency, MakeName(TagTexture, name))
	}
	c.deps = append(c.deps, h.Resource())
	return h, nil
}

func (c *MaterialContext) Technique(name string) (Handle[*video.Technique], error) {
	h, ok := c.s.Technique(name)
	if !ok {
		return h, fmt.Errorf("%w: %s", ErrDependency, MakeName(TagShader, name))
	}
	c.deps = append(c.deps, h.Resource())
	return h, nil
}

// MaterialLoader reads <Materials>/<name>.<ext> and picks the constructor
// named by the document's "type" member.
type MaterialLoader struct {
	creators map[string]MaterialCreator
}

// NewMaterialLoader returns a loader with flat, phong and skin registered.
func NewMaterialLoader() *MaterialLoader {
	l := &MaterialLoader{creators: make(map[string]MaterialCreator)}
	l.Register("flat", NewFlatMaterial)
	l.Register("phong", NewPhongMaterial)
	l.Register("skin", NewSkinMaterial)
	return l
}

func (l *MaterialLoader) Register(kind string, create MaterialCreator) {
	l.creators[kind] = create
}

// Kinds lists registered material types in sorted order.
func (l *MaterialLoader) Kinds() []string {
	kinds := make([]string, 0, len(l.creators))
	for k := range l.creators {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func (l *MaterialLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.MaterialFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	doc, err := decodeDocument(filename, data)
	if err != nil {
		return nil, err
	}

	kind, ok := doc["type"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: %s: missing material type", ErrMalformed, filename)
	}
	create, ok := l.creators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMaterialType, kind)
	}

	ctx := &MaterialContext{s: s}
	mat, err := create(ctx)
	if err != nil {
		return nil, err
	}
	resName := MakeName(TagMaterial, name)
	for _, perr := range meta.Populate(doc, mat.Properties(ctx)) {
		if errors.Is(perr, meta.ErrMissing) {
			s.log.Debug("material property not set, keeping default", log.String("resource", resName), log.Error(perr))
			continue
		}
		s.log.Warn("can't read material property", log.String("resource", resName), log.Error(perr))
	}

	r := New(resName, mat)
	r.DependOnFile(filename)
	for _, dep := range ctx.deps {
		r.DependOnResource(dep)
	}
	return r, nil
}

func (l *MaterialLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

func decodeDocument(filename string, data []byte) (map[string]any, error) {
	var doc map[string]any
	var err error
	switch path.Ext(filename) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filename, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s: empty document", ErrMalformed, filename)
	}
	return doc, nil
}

type materialBase struct {
	kind      string
	technique Handle[*video.Technique]
}

func (m *materialBase) Kind() string                        { return m.kind }
func (m *materialBase) Technique() Handle[*video.Technique] { return m.technique }

func newMaterialBase(ctx *MaterialContext, kind string) (materialBase, error) {
	tech, err := ctx.Technique(kind)
	if err != nil {
		return materialBase{}, err
	}
	return materialBase{kind: kind, technique: tech}, nil
}

func vec3Field(name string, dst *[3]float64) meta.Field {
	return meta.Field{Name: name, Kind: meta.KindVec3, Set: func(v any) error {
		*dst = v.([3]float64)
		return nil
	}}
}

func floatField(name string, dst *float64) meta.Field {
	return meta.Field{Name: name, Kind: meta.KindFloat, Set: func(v any) error {
		*dst = v.(float64)
		return nil
	}}
}

func textureField(ctx *MaterialContext, name string, dst *Handle[*video.Texture]) meta.Field {
	return meta.Field{Name: name, Kind: meta.KindString, Set: func(v any) error {
		h, err := ctx.Texture(v.(string))
		if err != nil {
			return err
		}
		*dst = h
		return nil
	}}
}

// FlatMaterial is a single unlit color.
type FlatMaterial struct {
	materialBase
	Color [3]float64
}

func NewFlatMaterial(ctx *MaterialContext) (Material, error) {
	base, err := newMaterialBase(ctx, "flat")
	if err != nil {
		return nil, err
	}
	return &FlatMaterial{materialBase: base, Color: [3]float64{1, 1, 1}}, nil
}

func (m *FlatMaterial) Properties(*MaterialContext) meta.Class {
	return meta.Class{Name: "flat", Fields: []meta.Field{
		vec3Field("color", &m.Color),
	}}
}

// PhongMaterial is the classic ambient, diffuse and specular model.
type PhongMaterial struct {
	materialBase
	Ambient    [3]float64
	Diffuse    [3]float64
	Specular   [3]float64
	Shininess  float64
	DiffuseMap Handle[*video.Texture]
}

func NewPhongMaterial(ctx *MaterialContext) (Material, error) {
	base, err := newMaterialBase(ctx, "phong")
	if err != nil {
		return nil, err
	}
	return &PhongMaterial{
		materialBase: base,
		Ambient:      [3]float64{0.1, 0.1, 0.1},
		Diffuse:      [3]float64{1, 1, 1},
		Specular:     [3]float64{1, 1, 1},
		Shininess:    32,
	}, nil
}

func (m *PhongMaterial) Properties(ctx *MaterialContext) meta.Class {
	return meta.Class{Name: "phong", Fields: []meta.Field{
		vec3Field("ambient", &m.Ambient),
		vec3Field("diffuse", &m.Diffuse),
		vec3Field("specular", &m.Specular),
		floatField("shininess", &m.Shininess),
		textureField(ctx, "diffuse_map", &m.DiffuseMap),
	}}
}

// SkinMaterial is used by skinned meshes.
type SkinMaterial struct {
	materialBase
	Color      [3]float64
	DiffuseMap Handle[*video.Texture]
}

func NewSkinMaterial(ctx *MaterialContext) (Material, error) {
	base, err := newMaterialBase(ctx, "skin")
	if err != nil {
		return nil, err
	}
	return &SkinMaterial{materialBase: base, Color: [3]float64{1, 1, 1}}, nil
}

func (m *SkinMaterial) Properties(ctx *MaterialContext) meta.Class {
	return meta.Class{Name: "skin", Fields: []meta.Field{
		vec3Field("color", &m.Color),
		textureField(ctx, "diffuse_map", &m.DiffuseMap),
	}}
}
