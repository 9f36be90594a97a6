package resources

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/majo33/atom/internal/core/video"
)

// RawMesh is the CPU side mesh description read from a .mesh YAML file.
type RawMesh struct {
	Vertices   []float32 `yaml:"vertices"`
	Normals    []float32 `yaml:"normals,omitempty"`
	Indices    []uint32  `yaml:"indices"`
	BoneIndex  []uint32  `yaml:"bone_index,omitempty"`
	BoneWeight []float32 `yaml:"bone_weight,omitempty"`
	Bones      []Bone    `yaml:"bones,omitempty"`
}

type Bone struct {
	Name   string    `yaml:"name"`
	Parent int       `yaml:"parent"`
	Head   []float32 `yaml:"head,omitempty"`
}

// FindBone returns the index of the named bone or -1.
func (m *RawMesh) FindBone(name string) int {
	for i, b := range m.Bones {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// RawMeshLoader parses <Meshes>/<name>.mesh.
type RawMeshLoader struct{}

func (RawMeshLoader) CreateResource(s *Service, name string) (*Resource, error) {
	filename := s.paths.RawMeshFile(name)
	data, err := fs.ReadFile(s.fsys, filename)
	if err != nil {
		return nil, err
	}
	var raw RawMesh
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, filename, err)
	}
	if len(raw.Vertices) == 0 || len(raw.Indices) == 0 {
		return nil, fmt.Errorf("%w: %s: vertices and indices are required", ErrMalformed, filename)
	}
	r := New(MakeName(TagRawMesh, name), &raw)
	r.DependOnFile(filename)
	return r, nil
}

func (l RawMeshLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

// MeshLoader uploads the raw mesh of the same name, one buffer per array.
type MeshLoader struct{}

func (MeshLoader) CreateResource(s *Service, name string) (*Resource, error) {
	raw, ok := s.RawMesh(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDependency, MakeName(TagRawMesh, name))
	}
	src := raw.Get()

	mesh := video.NewMesh(s.video)
	streams := []struct {
		id   video.StreamID
		data []byte
	}{
		{video.StreamVertex, floatBytes(src.Vertices)},
		{video.StreamNormal, floatBytes(src.Normals)},
		{video.StreamIndex, uintBytes(src.Indices)},
		{video.StreamBoneIndex, uintBytes(src.BoneIndex)},
		{video.StreamBoneWeight, floatBytes(src.BoneWeight)},
	}
	for _, st := range streams {
		if len(st.data) == 0 {
			continue
		}
		if err := mesh.AddStream(st.id, st.data); err != nil {
			mesh.Release()
			return nil, err
		}
	}

	r := New(MakeName(TagMesh, name), mesh)
	r.DependOnResource(raw.Resource())
	return r, nil
}

func (l MeshLoader) ReloadResource(s *Service, r *Resource) error {
	return rebuild(s, r, l.CreateResource)
}

func floatBytes(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

func uintBytes(v []uint32) []byte {
	out := make([]byte, 4*len(v))
	for i, u := range v {
		binary.LittleEndian.PutUint32(out[4*i:], u)
	}
	return out
}
