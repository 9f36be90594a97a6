package video

import (
	"fmt"
	"image"
	"regexp"
	"strings"
	"sync"
)

var uniformPattern = regexp.MustCompile(`(?m)^\s*uniform\s+(\w+)\s+(\w+)\s*;`)

type objectKind uint8

const (
	kindTexture objectKind = iota + 1
	kindShader
	kindProgram
	kindBuffer
)

type object struct {
	kind     objectKind
	source   string
	uniforms []Uniform
}

// Headless is an in-memory Backend. It validates inputs the way a driver
// would (a shader needs an entry point, a program needs one vertex and one
// pixel stage) and counts created objects, which makes it suitable for tests
// and for running the engine without a display.
type Headless struct {
	mu      sync.Mutex
	next    Handle
	objects map[Handle]object
	created map[objectKind]int
}

var _ Backend = (*Headless)(nil)

func NewHeadless() *Headless {
	return &Headless{
		objects: make(map[Handle]object),
		created: make(map[objectKind]int),
	}
}

func (h *Headless) alloc(o object) Handle {
	h.next++
	h.objects[h.next] = o
	h.created[o.kind]++
	return h.next
}

func (h *Headless) CreateTexture(img image.Image) (Handle, error) {
	if img == nil || img.Bounds().Empty() {
		return 0, fmt.Errorf("create texture: %w", ErrInvalidHandle)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(object{kind: kindTexture}), nil
}

func (h *Headless) CompileShader(stage ShaderStage, source string) (Handle, error) {
	if !strings.Contains(source, "main") {
		return 0, fmt.Errorf("%w: %s stage has no entry point", ErrCompile, stage)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(object{kind: kindShader, source: source}), nil
}

func (h *Headless) LinkProgram(shaders ...Handle) (Handle, []Uniform, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(shaders) < 2 {
		return 0, nil, fmt.Errorf("%w: need at least two stages", ErrLink)
	}
	var uniforms []Uniform
	seen := make(map[string]bool)
	for _, s := range shaders {
		o, ok := h.objects[s]
		if !ok || o.kind != kindShader {
			return 0, nil, fmt.Errorf("%w: shader %d", ErrInvalidHandle, s)
		}
		for _, m := range uniformPattern.FindAllStringSubmatch(o.source, -1) {
			if seen[m[2]] {
				continue
			}
			seen[m[2]] = true
			uniforms = append(uniforms, Uniform{
				Name:     m[2],
				Type:     uniformType(m[1]),
				Location: int32(len(uniforms)),
			})
		}
	}
	program := h.alloc(object{kind: kindProgram, uniforms: uniforms})
	return program, uniforms, nil
}

func (h *Headless) CreateBuffer(data []byte) (Handle, error) {
	if len(data) == 0 {
		return 0, ErrEmptyBuffer
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.alloc(object{kind: kindBuffer}), nil
}

func (h *Headless) Destroy(handle Handle) {
	h.mu.Lock()
	delete(h.objects, handle)
	h.mu.Unlock()
}

func (h *Headless) Valid(handle Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.objects[handle]
	return ok
}

// Live reports how many objects are currently allocated.
func (h *Headless) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.objects)
}

// TexturesCreated reports how many textures were ever created.
func (h *Headless) TexturesCreated() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created[kindTexture]
}

// ProgramsLinked reports how many programs were ever linked.
func (h *Headless) ProgramsLinked() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.created[kindProgram]
}

func uniformType(glsl string) UniformType {
	switch glsl {
	case "float":
		return UniformFloat
	case "vec2":
		return UniformVec2
	case "vec3":
		return UniformVec3
	case "vec4":
		return UniformVec4
	case "mat3":
		return UniformMat3
	case "mat4":
		return UniformMat4
	case "sampler2D":
		return UniformSampler2D
	default:
		return UniformUnknown
	}
}
