package renderer

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
)

func twoSphereWorld() core.Hittable {
	return geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.MustLambertian(core.NewVec3(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.MustLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)
}

func testConfig(width, height, workers int) RenderConfig {
	return RenderConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 1,
		MaxDepth:        1,
		NumWorkers:      workers,
		Seed:            7,
		Pattern:         core.PatternRegular,
		Integrator:      integrator.NamePathTracing,
	}
}

func newTestScheduler(t *testing.T, world core.Hittable, integ integrator.Integrator, config RenderConfig) *Scheduler {
	t.Helper()
	camera, err := NewCamera(pinholeConfig())
	if err != nil {
		t.Fatalf("Unexpected camera error: %v", err)
	}
	scheduler, err := NewScheduler(world, camera, integ, config)
	if err != nil {
		t.Fatalf("Unexpected scheduler error: %v", err)
	}
	return scheduler
}

func TestScheduler_TwoSphereScene(t *testing.T) {
	for _, workers := range []int{1, 4} {
		config := testConfig(20, 10, workers)
		world := twoSphereWorld()
		scheduler := newTestScheduler(t, world, nil, config)

		fb, stats, err := scheduler.Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if stats.TotalPixels() != 200 || stats.TotalSamples() != 200 {
			t.Errorf("workers=%d: unexpected stats %+v", workers, stats)
		}

		camera, _ := NewCamera(pinholeConfig())
		misses := 0
		for row := 0; row < config.Height; row++ {
			for col := 0; col < config.Width; col++ {
				// Regular pattern with one sample shoots through the pixel center
				u := (float64(col) + 0.5) / float64(config.Width)
				v := (float64(row) + 0.5) / float64(config.Height)
				ray := camera.GetRay(u, v, nil)

				if _, hit := world.Hit(ray, integrator.ShadowEpsilon, math.Inf(1)); hit {
					continue
				}
				misses++
				expected := integrator.SkyGradient(ray).Sqrt()
				if fb.At(row, col).Subtract(expected).Length() > 1e-9 {
					t.Errorf("workers=%d: pixel (%d,%d) expected background %v, got %v", workers, row, col, expected, fb.At(row, col))
				}
			}
		}
		if misses == 0 {
			t.Fatal("Expected some pixels to see the sky")
		}

		// The center pixel looks at the small sphere
		centerRow, centerCol := config.Height/2, config.Width/2
		u := (float64(centerCol) + 0.5) / float64(config.Width)
		v := (float64(centerRow) + 0.5) / float64(config.Height)
		background := integrator.SkyGradient(camera.GetRay(u, v, nil)).Sqrt()
		if fb.At(centerRow, centerCol).Subtract(background).Length() < 1e-3 {
			t.Errorf("workers=%d: expected center pixel to differ from the background", workers)
		}
	}
}

func TestScheduler_Deterministic(t *testing.T) {
	config := testConfig(16, 8, 3)
	config.SamplesPerPixel = 4
	config.MaxDepth = 10
	config.Pattern = core.PatternJittered

	render := func() *Framebuffer {
		fb, _, err := newTestScheduler(t, twoSphereWorld(), nil, config).Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		return fb
	}

	first, second := render(), render()
	for i := range first.Pix {
		if first.Pix[i] != second.Pix[i] {
			t.Fatalf("Renders differ at component %d: %f vs %f", i, first.Pix[i], second.Pix[i])
		}
	}

	config.Seed++
	third := render()
	same := true
	for i := range first.Pix {
		if first.Pix[i] != third.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Expected a different seed to change the image")
	}
}

// panicIntegrator panics on the first ray whose direction points left of center
type panicIntegrator struct{}

func (panicIntegrator) RayColor(ray core.Ray, world core.Hittable, sampler core.Sampler) core.Vec3 {
	if ray.Direction.X < -1.5 {
		panic("integrator exploded")
	}
	return core.Vec3{}
}

func TestScheduler_WorkerPanicFailsRender(t *testing.T) {
	tests := []struct {
		name    string
		workers int
	}{
		{"serial", 1},
		{"parallel", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := newTestScheduler(t, twoSphereWorld(), panicIntegrator{}, testConfig(20, 10, tt.workers))

			fb, _, err := scheduler.Render(context.Background(), nil)
			if !errors.Is(err, ErrWorkerPanic) {
				t.Fatalf("Expected ErrWorkerPanic, got %v", err)
			}
			if fb != nil {
				t.Error("Expected no framebuffer from a failed render")
			}
		})
	}
}

func TestScheduler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 3} {
		scheduler := newTestScheduler(t, twoSphereWorld(), nil, testConfig(8, 4, workers))
		if _, _, err := scheduler.Render(ctx, nil); !errors.Is(err, ErrInterrupted) {
			t.Errorf("workers=%d: expected ErrInterrupted, got %v", workers, err)
		}
	}
}

func TestScheduler_ReportsProgress(t *testing.T) {
	config := testConfig(6, 4, 1)
	progress := make(chan Progress, config.Width*config.Height)
	scheduler := newTestScheduler(t, twoSphereWorld(), nil, config)

	if _, _, err := scheduler.Render(context.Background(), progress); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	close(progress)

	count := 0
	var last Progress
	for update := range progress {
		count++
		last = update
	}
	if count != config.Width*config.Height {
		t.Errorf("Expected %d progress updates, got %d", config.Width*config.Height, count)
	}
	if last.Done != last.Total {
		t.Errorf("Expected final update to be complete, got %+v", last)
	}
}

func TestScheduler_FullProgressChannelDoesNotBlock(t *testing.T) {
	progress := make(chan Progress) // never read
	scheduler := newTestScheduler(t, twoSphereWorld(), nil, testConfig(6, 4, 2))

	if _, _, err := scheduler.Render(context.Background(), progress); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestScheduler_Assemble(t *testing.T) {
	scheduler := newTestScheduler(t, twoSphereWorld(), nil, testConfig(2, 1, 1))
	white := core.NewVec3(1, 1, 1)

	overlap := []PartitionResult{
		{ID: 0, Rows: []int{0, 0}, Cols: []int{0, 1}, Colors: []core.Vec3{white, white}},
		{ID: 1, Rows: []int{0}, Cols: []int{1}, Colors: []core.Vec3{white}},
	}
	if _, err := scheduler.assemble(overlap); !errors.Is(err, ErrPixelOverwrite) {
		t.Errorf("Expected ErrPixelOverwrite, got %v", err)
	}

	missing := []PartitionResult{
		{ID: 0, Rows: []int{0}, Cols: []int{0}, Colors: []core.Vec3{white}},
	}
	if _, err := scheduler.assemble(missing); !errors.Is(err, ErrPixelMissing) {
		t.Errorf("Expected ErrPixelMissing, got %v", err)
	}
}

func TestNewScheduler_InvalidConfig(t *testing.T) {
	camera, _ := NewCamera(pinholeConfig())

	tests := []struct {
		name   string
		modify func(c *RenderConfig)
	}{
		{"zero width", func(c *RenderConfig) { c.Width = 0 }},
		{"pixel count overflows", func(c *RenderConfig) { c.Width, c.Height = math.MaxInt/2, 4 }},
		{"zero samples", func(c *RenderConfig) { c.SamplesPerPixel = 0 }},
		{"zero depth", func(c *RenderConfig) { c.MaxDepth = 0 }},
		{"zero workers", func(c *RenderConfig) { c.NumWorkers = 0 }},
		{"unknown pattern", func(c *RenderConfig) { c.Pattern = "poisson" }},
		{"unknown integrator", func(c *RenderConfig) { c.Integrator = "bdpt" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := testConfig(4, 4, 1)
			tt.modify(&config)
			if _, err := NewScheduler(twoSphereWorld(), camera, nil, config); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}
