package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_populatesDefaults(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "lrone.toml")
	contents := "grammar = \"arith.grammar\"\ncol-width = 24\nbench = false\n"
	assert.NoError(os.WriteFile(path, []byte(contents), 0o644))

	d, err := Load(path)
	assert.NoError(err)
	assert.Equal("arith.grammar", d.Grammar)
	assert.Equal(24, d.ColWidth)
	assert.False(d.Bench)
}

func Test_Load_missingFile_returnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	assert.Error(t, err)
}
