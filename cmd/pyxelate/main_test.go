package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	fatihcolor "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			c := color.NRGBA{R: 0xff, A: 0xff}
			if x >= 5 {
				c = color.NRGBA{B: 0xff, A: 0xff}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// 🧪 TestRootCommand runs the command end to end against a small directory
func TestRootCommand(t *testing.T) {
	prev := fatihcolor.NoColor
	fatihcolor.NoColor = true
	t.Cleanup(func() { fatihcolor.NoColor = prev })

	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "pyxelated")
	writeTestPNG(t, filepath.Join(input, "a.png"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--input", input,
		"--output", output,
		"--factor", "5",
		"--scaling", "2",
		"--colors", "2",
		"--dither=false",
		"--config", filepath.Join(t.TempDir(), "absent.yaml"),
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "1 relevant files found")
	assert.FileExists(t, filepath.Join(output, "a.png"))
}

// 🧪 TestRootCommandConfigFile tests file-provided defaults with flag override
func TestRootCommandConfigFile(t *testing.T) {
	prev := fatihcolor.NoColor
	fatihcolor.NoColor = true
	t.Cleanup(func() { fatihcolor.NoColor = prev })

	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "pyxelated")
	writeTestPNG(t, filepath.Join(input, "a.png"))

	cfgPath := filepath.Join(t.TempDir(), ".pyxelate.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("factor: 5\nscaling: 3\ncolors: 2\ndither: false\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"--input", input,
		"--output", output,
		"--scaling", "2", // explicit flag beats the file's scaling
		"--config", cfgPath,
	})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.FileExists(t, filepath.Join(output, "a.png"))
}

// 🧪 TestRootCommandInvalidFlags tests validation failures
func TestRootCommandInvalidFlags(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--colors", "1"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colors")
}
