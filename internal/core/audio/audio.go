// Package audio is the audio collaborator contract. Decoding and playback are
// the backend's business; the core only hands over file contents and keeps the
// resulting handles.
package audio

import (
	"errors"
	"sync"
)

var ErrEmptyData = errors.New("empty audio data")

type Handle uint32

// Backend is the narrow audio API surface used by the core.
type Backend interface {
	// LoadSound decodes a fully buffered effect.
	LoadSound(data []byte) (Handle, error)
	// OpenMusic prepares a streamed track.
	OpenMusic(data []byte) (Handle, error)
	Destroy(h Handle)
	Valid(h Handle) bool
}

// Sound is a short, fully decoded effect.
type Sound struct {
	backend Backend
	handle  Handle
}

func NewSound(backend Backend, data []byte) (*Sound, error) {
	h, err := backend.LoadSound(data)
	if err != nil {
		return nil, err
	}
	return &Sound{backend: backend, handle: h}, nil
}

func (s *Sound) Handle() Handle { return s.handle }
func (s *Sound) Valid() bool    { return s.handle != 0 && s.backend.Valid(s.handle) }

func (s *Sound) Release() {
	if s.handle != 0 {
		s.backend.Destroy(s.handle)
		s.handle = 0
	}
}

// Music is a streamed track.
type Music struct {
	backend Backend
	handle  Handle
}

func NewMusic(backend Backend, data []byte) (*Music, error) {
	h, err := backend.OpenMusic(data)
	if err != nil {
		return nil, err
	}
	return &Music{backend: backend, handle: h}, nil
}

func (m *Music) Handle() Handle { return m.handle }
func (m *Music) Valid() bool    { return m.handle != 0 && m.backend.Valid(m.handle) }

func (m *Music) Release() {
	if m.handle != 0 {
		m.backend.Destroy(m.handle)
		m.handle = 0
	}
}

// Headless keeps audio data in memory without playing it.
type Headless struct {
	mu   sync.Mutex
	next Handle
	data map[Handle][]byte
}

var _ Backend = (*Headless)(nil)

func NewHeadless() *Headless {
	return &Headless{data: make(map[Handle][]byte)}
}

func (h *Headless) store(data []byte) (Handle, error) {
	if len(data) == 0 {
		return 0, ErrEmptyData
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.next++
	h.data[h.next] = append([]byte(nil), data...)
	return h.next, nil
}

func (h *Headless) LoadSound(data []byte) (Handle, error) { return h.store(data) }
func (h *Headless) OpenMusic(data []byte) (Handle, error) { return h.store(data) }

func (h *Headless) Destroy(handle Handle) {
	h.mu.Lock()
	delete(h.data, handle)
	h.mu.Unlock()
}

func (h *Headless) Valid(handle Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.data[handle]
	return ok
}
