package salt

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Generate(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	a, err := g.Generate(DefaultLength)
	require.NoError(t, err)
	assert.Len(t, a, 16)

	b, err := g.Generate(DefaultLength)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	empty, err := g.Generate(0)
	assert.NoError(t, err)
	assert.Len(t, empty, 0)
}

func TestGenerator_Source(t *testing.T) {
	g, err := NewGenerator(UseSource(bytes.NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})))
	require.NoError(t, err)
	s, err := g.Generate(8)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, s)
}

func TestGenerator_Neg(t *testing.T) {
	_, err := NewGenerator(UseSource(nil))
	assert.Error(t, err)

	g, err := NewGenerator(UseSource(bytes.NewBuffer(nil)))
	require.NoError(t, err)
	_, err = g.Generate(10)
	assert.True(t, IsRngError(err))
	assert.ErrorIs(t, err, io.EOF)

	g, err = NewGenerator(UseSource(bytes.NewReader([]byte{1, 2, 3})))
	require.NoError(t, err)
	_, err = g.Generate(10)
	assert.True(t, IsRngError(err))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	g, err = NewGenerator()
	require.NoError(t, err)
	_, err = g.Generate(-1)
	assert.Error(t, err)
	assert.False(t, IsRngError(err))
}
