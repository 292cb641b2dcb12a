package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestApp_Commands(t *testing.T) {
	app := newApp()
	for _, name := range []string{"render", "scenes", "serve"} {
		if app.Command(name) == nil {
			t.Errorf("Expected command %q", name)
		}
	}
}

func TestApp_VerboseFlags(t *testing.T) {
	tests := [][]string{
		{"pathtracer", "-v", "scenes"},
		{"pathtracer", "-vv", "scenes"},
		{"pathtracer", "--version"},
	}

	for _, args := range tests {
		app := newApp()
		app.Writer = &bytes.Buffer{}
		if err := app.Run(args); err != nil {
			t.Errorf("%v: unexpected error: %v", args, err)
		}
	}
	log.SetLevel(log.Notice)
}

func TestApp_Scenes(t *testing.T) {
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out

	if err := app.Run([]string{"pathtracer", "scenes"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(out.String(), name) {
			t.Errorf("Expected %q in scene listing", name)
		}
	}
}

func TestApp_Render(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		extra []string
	}{
		{"png with bvh", "frame.png", nil},
		{"ppm without bvh", "frame.ppm", []string{"--no-bvh"}},
		{"normals with sah", "frame.bmp", []string{"--integrator", "surface-normal", "--split", "sah"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "nested", tt.file)
			args := []string{
				"pathtracer", "render",
				"--scene", "three-spheres",
				"--width", "16", "--height", "9",
				"--spp", "2", "--depth", "4", "--workers", "3",
				"--out", out,
			}
			args = append(args, tt.extra...)

			if err := newApp().Run(args); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if info, err := os.Stat(out); err != nil || info.Size() == 0 {
				t.Errorf("Expected non-empty output file, got %v", err)
			}
		})
	}
}

func TestApp_RenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown scene", []string{"--scene", "cornell"}},
		{"zero samples", []string{"--spp", "0"}},
		{"unsupported output", []string{"--out", "frame.gif"}},
		{"unknown split", []string{"--split", "median"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"pathtracer", "render", "--width", "4", "--height", "2", "--spp", "1"}, tt.args...)
			if err := newApp().Run(args); err == nil {
				t.Error("Expected error")
			}
		})
	}
}
