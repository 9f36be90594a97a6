// Package video holds the graphics collaborator contract and the payload
// types the resource service builds on top of it. Only handle bookkeeping
// lives here; the API binding itself is behind Backend.
package video

import (
	"errors"
	"image"
)

var (
	ErrInvalidHandle = errors.New("invalid video handle")
	ErrCompile       = errors.New("shader compilation failed")
	ErrLink          = errors.New("program link failed")
	ErrEmptyBuffer   = errors.New("empty buffer data")
)

// Handle identifies a backend object. Zero is never valid.
type Handle uint32

// ShaderStage selects the pipeline stage a source is compiled for.
type ShaderStage uint8

const (
	StageVertex ShaderStage = iota
	StagePixel
	StageGeometry
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StagePixel:
		return "pixel"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// UniformType mirrors the subset of shader uniform types the engine binds.
type UniformType uint8

const (
	UniformUnknown UniformType = iota
	UniformFloat
	UniformVec2
	UniformVec3
	UniformVec4
	UniformMat3
	UniformMat4
	UniformSampler2D
)

// Uniform is an active program parameter discovered at link time.
type Uniform struct {
	Name     string
	Type     UniformType
	Location int32
}

// Backend is the narrow graphics API surface used by the core.
type Backend interface {
	CreateTexture(img image.Image) (Handle, error)
	CompileShader(stage ShaderStage, source string) (Handle, error)
	LinkProgram(shaders ...Handle) (Handle, []Uniform, error)
	CreateBuffer(data []byte) (Handle, error)
	Destroy(h Handle)
	Valid(h Handle) bool
}
