package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.png")
	thumb := filepath.Join(dir, "thumb.png")

	err := newApp().Run([]string{
		"pbr", "--env-file", "",
		"render",
		"--width", "8", "--height", "6",
		"--spp", "1", "--max-depth", "2", "--block-height", "4",
		"--out", out,
		"--thumbnail", thumb, "--thumbnail-size", "4",
		"spheres",
	})
	if err != nil {
		t.Fatal(err)
	}

	cfg := decodePNGConfig(t, out)
	if cfg.Width != 8 || cfg.Height != 6 {
		t.Fatalf("expected 8x6 frame; got %dx%d", cfg.Width, cfg.Height)
	}

	cfg = decodePNGConfig(t, thumb)
	if cfg.Width > 4 || cfg.Height > 4 {
		t.Fatalf("expected thumbnail to fit in 4x4; got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRenderCommandUsesEnvFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "frame.ppm")
	envFile := filepath.Join(dir, "render.env")

	payload := "PBR_WIDTH=5\nPBR_HEIGHT=3\nPBR_SPP=1\nPBR_MAX_DEPTH=1\n"
	if err := os.WriteFile(envFile, []byte(payload), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"PBR_WIDTH", "PBR_HEIGHT", "PBR_SPP", "PBR_MAX_DEPTH"} {
		name := name
		t.Cleanup(func() { os.Unsetenv(name) })
	}

	err := newApp().Run([]string{"pbr", "--env-file", envFile, "render", "-o", out, "cornell"})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	expHeader := []byte("P6 5 3 255\n")
	if !bytes.HasPrefix(data, expHeader) {
		t.Fatalf("expected ppm header %q; got %q", expHeader, data[:len(expHeader)])
	}
	if exp := len(expHeader) + 5*3*3; len(data) != exp {
		t.Fatalf("expected %d bytes; got %d", exp, len(data))
	}
}

func TestRenderCommandErrors(t *testing.T) {
	type spec struct {
		args   []string
		expErr string
	}

	dir := t.TempDir()
	specs := []spec{
		{[]string{"pbr", "--env-file", "", "render"}, "missing scene argument"},
		{[]string{"pbr", "--env-file", "", "render", "--origin", "middle", "cornell"}, "unknown row origin"},
		{[]string{"pbr", "--env-file", "", "render", "--spp", "0", "cornell"}, "--spp must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--spp", "-1", "spheres"}, "--spp must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--width", "-1", "spheres"}, "--width must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--height", "-1", "spheres"}, "--height must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--max-depth", "-1", "cornell"}, "--max-depth must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--max-depth", "0", "cornell"}, "--max-depth must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--max-depth", "100000", "cornell"}, "max depth must not exceed"},
		{[]string{"pbr", "--env-file", "", "render", "--block-height", "-1", "spheres"}, "--block-height must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "--thumbnail", filepath.Join(dir, "t.png"), "--thumbnail-size", "-4", "spheres"}, "--thumbnail-size must be positive"},
		{[]string{"pbr", "--env-file", "", "render", "-o", filepath.Join(dir, "frame.gif"), "--width", "2", "--height", "2", "--spp", "1", "cornell"}, "unsupported"},
		{[]string{"pbr", "--env-file", filepath.Join(dir, "missing.env"), "scenes"}, "could not load env file"},
		{[]string{"pbr", "--env-file", "", "--log-level", "chatty", "scenes"}, "unknown level"},
		{[]string{"pbr", "--env-file", "", "scene-info", filepath.Join(dir, "missing.scene")}, "no such file"},
	}

	for index, s := range specs {
		err := newApp().Run(s.args)
		if err == nil || !strings.Contains(err.Error(), s.expErr) {
			t.Fatalf("[spec %d] expected error containing %q; got %v", index, s.expErr, err)
		}
	}
}

func TestSceneCommands(t *testing.T) {
	if err := newApp().Run([]string{"pbr", "--env-file", "", "scenes"}); err != nil {
		t.Fatal(err)
	}
	if err := newApp().Run([]string{"pbr", "--env-file", "", "scene-info", "cornell"}); err != nil {
		t.Fatal(err)
	}
}

func decodePNGConfig(t *testing.T, path string) pngConfig {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatal(err)
	}
	return pngConfig{cfg.Width, cfg.Height}
}

type pngConfig struct {
	Width, Height int
}
