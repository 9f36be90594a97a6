package filewatch

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestPollReportsContentChanges(t *testing.T) {
	fsys := fstest.MapFS{
		"images/brick.png": {Data: []byte("v1")},
		"shaders/flat.vs":  {Data: []byte("void main() {}")},
	}
	p := NewPoller(fsys)
	p.Track("images/brick.png")
	p.Track("shaders/flat.vs")

	assert.Empty(t, p.Poll())

	fsys["images/brick.png"] = &fstest.MapFile{Data: []byte("v2")}
	assert.Equal(t, []string{"images/brick.png"}, p.Poll())
	assert.Empty(t, p.Poll())

	// same bytes rewritten are not a change
	fsys["shaders/flat.vs"] = &fstest.MapFile{Data: []byte("void main() {}")}
	assert.Empty(t, p.Poll())
}

func TestPollReportsDeletionOnce(t *testing.T) {
	fsys := fstest.MapFS{"sounds/hit.ogg": {Data: []byte("OggS")}}
	p := NewPoller(fsys)
	p.Track("sounds/hit.ogg")

	delete(fsys, "sounds/hit.ogg")
	assert.Equal(t, []string{"sounds/hit.ogg"}, p.Poll())
	assert.Empty(t, p.Poll())

	fsys["sounds/hit.ogg"] = &fstest.MapFile{Data: []byte("OggS")}
	assert.Equal(t, []string{"sounds/hit.ogg"}, p.Poll())
}

func TestSyncReplacesTrackedSet(t *testing.T) {
	fsys := fstest.MapFS{
		"a": {Data: []byte("a")},
		"b": {Data: []byte("b")},
	}
	p := NewPoller(fsys)
	p.Track("a")
	p.Sync([]string{"b", "missing"})
	assert.Equal(t, []string{"b", "missing"}, p.Tracked())

	p.Sync([]string{"b"})
	assert.Equal(t, []string{"b"}, p.Tracked())
}
