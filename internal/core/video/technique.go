package video

import (
	"fmt"
	"sort"
)

// Technique is a linked shader program.
type Technique struct {
	backend  Backend
	name     string
	program  Handle
	uniforms []Uniform
}

// NewTechnique compiles every provided stage and links them. Vertex and pixel
// stages are mandatory. Intermediate shader objects are destroyed once the
// program is linked or the build fails.
func NewTechnique(backend Backend, name string, sources map[ShaderStage]string) (*Technique, error) {
	for _, required := range []ShaderStage{StageVertex, StagePixel} {
		if _, ok := sources[required]; !ok {
			return nil, fmt.Errorf("technique %q: missing %s stage", name, required)
		}
	}

	stages := make([]ShaderStage, 0, len(sources))
	for stage := range sources {
		stages = append(stages, stage)
	}
	sort.Slice(stages, func(i, j int) bool { return stages[i] < stages[j] })

	shaders := make([]Handle, 0, len(stages))
	defer func() {
		for _, s := range shaders {
			backend.Destroy(s)
		}
	}()

	for _, stage := range stages {
		h, err := backend.CompileShader(stage, sources[stage])
		if err != nil {
			return nil, fmt.Errorf("technique %q: %w", name, err)
		}
		shaders = append(shaders, h)
	}

	program, uniforms, err := backend.LinkProgram(shaders...)
	if err != nil {
		return nil, fmt.Errorf("technique %q: %w", name, err)
	}

	return &Technique{backend: backend, name: name, program: program, uniforms: uniforms}, nil
}

func (t *Technique) Name() string        { return t.name }
func (t *Technique) Program() Handle     { return t.program }
func (t *Technique) Uniforms() []Uniform { return t.uniforms }
func (t *Technique) Valid() bool         { return t.program != 0 && t.backend.Valid(t.program) }

// FindParam looks up an active uniform by name.
func (t *Technique) FindParam(name string) (Uniform, bool) {
	for _, u := range t.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

func (t *Technique) Release() {
	if t.program != 0 {
		t.backend.Destroy(t.program)
		t.program = 0
	}
}
