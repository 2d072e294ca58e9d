package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(3, &buf)
	bar.Update(1, 0)
	bar.Update(1, 1)
	bar.Update(2, 1)
	bar.Finish()

	require.Contains(t, buf.String(), "Running tests:")
}
