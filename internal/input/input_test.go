package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_skipsBlankLines(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("\n  \nid + id\n\nid\n"))
	defer r.Close()

	line, err := r.ReadTokens()
	assert.NoError(err)
	assert.Equal("id + id", line)

	line, err = r.ReadTokens()
	assert.NoError(err)
	assert.Equal("id", line)

	_, err = r.ReadTokens()
	assert.Equal(io.EOF, err)
}

func Test_DirectReader_lastLineWithoutNewline(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("a b"))
	defer r.Close()

	line, err := r.ReadTokens()
	assert.NoError(err)
	assert.Equal("a b", line)

	_, err = r.ReadTokens()
	assert.Equal(io.EOF, err)
}

func Test_DirectReader_trimsSurroundingSpace(t *testing.T) {
	assert := assert.New(t)

	r := NewDirectReader(strings.NewReader("   ( id )  \n"))
	defer r.Close()

	line, err := r.ReadTokens()
	assert.NoError(err)
	assert.Equal("( id )", line)
}
