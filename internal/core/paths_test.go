package core

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathsFollowHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, home, HomeDir())
	assert.Equal(t, filepath.Join(home, ".pathcomplete"), DataDir())
	assert.Equal(t, filepath.Join(home, ".pathcomplete", "pathcomplete.log"), LogFile())
	assert.Equal(t, filepath.Join(home, ".pathcomplete.yaml"), ConfigFile())
}
