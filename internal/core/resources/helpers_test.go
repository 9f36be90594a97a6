package resources

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/majo33/atom/internal/core/observability/log"
	"github.com/majo33/atom/internal/core/video"
)

// countingFS records every Open so tests can assert on file I/O. It
// deliberately exposes only Open, so fs.ReadFile goes through it.
type countingFS struct {
	files fstest.MapFS
	opens map[string]int
}

func newCountingFS(files fstest.MapFS) *countingFS {
	return &countingFS{files: files, opens: make(map[string]int)}
}

func (c *countingFS) Open(name string) (fs.File, error) {
	c.opens[name]++
	return c.files.Open(name)
}

type fixture struct {
	svc   *Service
	fs    *countingFS
	video *video.Headless
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T, files fstest.MapFS, opts ...Option) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	cfs := newCountingFS(files)
	vb := video.NewHeadless()
	opts = append([]Option{
		WithFS(cfs),
		WithVideo(vb),
		WithLogger(log.FromZap(zap.New(core))),
	}, opts...)
	return &fixture{svc: NewService(opts...), fs: cfs, video: vb, logs: logs}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.NRGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

const vertexSrc = `
uniform mat4 mvp;
void main() {}
`

const pixelSrc = `
uniform vec3 color;
uniform sampler2D diffuse;
void main() {}
`

func shaderFiles(files fstest.MapFS, names ...string) {
	for _, n := range names {
		files["shaders/"+n+".vs"] = &fstest.MapFile{Data: []byte(vertexSrc)}
		files["shaders/"+n+".ps"] = &fstest.MapFile{Data: []byte(pixelSrc)}
	}
}
