package terminal

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinesFor(t *testing.T) {
	assert.Equal(t, 1, LinesFor(0, 80))
	assert.Equal(t, 1, LinesFor(80, 80))
	assert.Equal(t, 2, LinesFor(81, 80))
	assert.Equal(t, 3, LinesFor(100, 40))
	assert.Equal(t, 2, LinesFor(100, 0))
}

func TestIsInteractiveOnRegularFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	assert.False(t, IsInteractive(f))
	assert.False(t, IsInteractive(nil))
}
