package termisu

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadBytePeekThenConsume(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	_, _ = w.Write([]byte("hi"))
	w.Close()

	reader := NewReader(int(r.Fd()))
	b, ok, err := reader.PeekByte()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('h'), b)

	b, ok, err = reader.ReadByte()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('h'), b)

	b, ok, err = reader.ReadByte()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, byte('i'), b)
}

func TestReaderEOFIsEmptyNotError(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	w.Close() // EOF immediately

	reader := NewReader(int(r.Fd()))
	_, ok, err := reader.ReadByte()
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderReadBytesStopsShortAtEOF(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	_, _ = w.Write([]byte("ab"))
	w.Close()

	reader := NewReader(int(r.Fd()))
	got, err := reader.ReadBytes(10)
	assert.NoError(t, err)
	assert.Equal(t, []byte("ab"), got)
}
