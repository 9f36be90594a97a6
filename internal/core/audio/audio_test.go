package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundAndMusic(t *testing.T) {
	b := NewHeadless()

	s, err := NewSound(b, []byte("OggS"))
	require.NoError(t, err)
	assert.True(t, s.Valid())

	m, err := NewMusic(b, []byte("OggS"))
	require.NoError(t, err)
	assert.NotEqual(t, s.Handle(), m.Handle())

	s.Release()
	s.Release()
	assert.False(t, s.Valid())
	assert.True(t, m.Valid())

	_, err = NewSound(b, nil)
	assert.ErrorIs(t, err, ErrEmptyData)
}
