package video

import "fmt"

// StreamID names a vertex attribute or index stream of a Mesh.
type StreamID uint8

const (
	StreamVertex StreamID = iota
	StreamNormal
	StreamIndex
	StreamBoneIndex
	StreamBoneWeight
)

// Mesh is a set of GPU buffers, one per stream.
type Mesh struct {
	backend Backend
	streams map[StreamID]Handle
}

func NewMesh(backend Backend) *Mesh {
	return &Mesh{backend: backend, streams: make(map[StreamID]Handle)}
}

// AddStream uploads data into a new buffer, replacing any previous stream.
func (m *Mesh) AddStream(id StreamID, data []byte) error {
	h, err := m.backend.CreateBuffer(data)
	if err != nil {
		return fmt.Errorf("mesh stream %d: %w", id, err)
	}
	if old, ok := m.streams[id]; ok {
		m.backend.Destroy(old)
	}
	m.streams[id] = h
	return nil
}

func (m *Mesh) Stream(id StreamID) (Handle, bool) {
	h, ok := m.streams[id]
	return h, ok
}

func (m *Mesh) StreamCount() int { return len(m.streams) }

func (m *Mesh) Release() {
	for id, h := range m.streams {
		m.backend.Destroy(h)
		delete(m.streams, id)
	}
}
