package renderer

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// PartitionResult contains the colors a worker computed for one partition.
// Colors[k] belongs to pixel (Rows[k], Cols[k]).
type PartitionResult struct {
	ID     int
	Rows   []int
	Cols   []int
	Colors []core.Vec3
	Stats  WorkerStat
	Error  error
}

// PixelRenderer evaluates every pixel of a partition: it averages
// SamplesPerPixel integrator samples, applies gamma 2 and clamps to [0,1].
type PixelRenderer struct {
	world      core.Hittable
	camera     *Camera
	integrator integrator.Integrator
	pattern    core.PixelPattern
	width      int
	height     int
	samples    int
}

// NewPixelRenderer creates a renderer for the given world and camera
func NewPixelRenderer(world core.Hittable, camera *Camera, integ integrator.Integrator, config RenderConfig) (*PixelRenderer, error) {
	pattern, err := core.PatternByName(config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &PixelRenderer{
		world:      world,
		camera:     camera,
		integrator: integ,
		pattern:    pattern,
		width:      config.Width,
		height:     config.Height,
		samples:    config.SamplesPerPixel,
	}, nil
}

// RenderPartition renders all pixels of a partition with the given sampler.
// Cancellation is checked between pixels.
func (pr *PixelRenderer) RenderPartition(ctx context.Context, partition Partition, sampler core.Sampler, progress chan<- Progress) (PartitionResult, error) {
	start := time.Now()
	result := PartitionResult{
		ID:     partition.ID,
		Rows:   partition.Rows,
		Cols:   partition.Cols,
		Colors: make([]core.Vec3, partition.Len()),
	}

	offsets := make([]core.Vec2, pr.samples)
	for k := range partition.Rows {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("%w: partition %d: %v", ErrInterrupted, partition.ID, err)
		}

		result.Colors[k] = pr.renderPixel(partition.Rows[k], partition.Cols[k], offsets, sampler)
		reportProgress(progress, Progress{PartitionID: partition.ID, Done: k + 1, Total: partition.Len()})
	}

	result.Stats = WorkerStat{
		PartitionID: partition.ID,
		Pixels:      partition.Len(),
		Samples:     partition.Len() * pr.samples,
		RenderTime:  time.Since(start),
	}
	return result, nil
}

// renderTask renders a task with its own seeded sampler and turns a panic into
// an error result
func (pr *PixelRenderer) renderTask(ctx context.Context, task PartitionTask, progress chan<- Progress) (result PartitionResult) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("partition %d panicked: %v\n%s", task.Partition.ID, r, debug.Stack())
			result = PartitionResult{
				ID:    task.Partition.ID,
				Error: fmt.Errorf("%w: partition %d: %v", ErrWorkerPanic, task.Partition.ID, r),
			}
		}
	}()

	result, err := pr.RenderPartition(ctx, task.Partition, core.NewSeededSampler(task.Seed), progress)
	result.Error = err
	return result
}

func (pr *PixelRenderer) renderPixel(row, col int, offsets []core.Vec2, sampler core.Sampler) core.Vec3 {
	pr.pattern.Fill(offsets, sampler)

	var sum core.Vec3
	for _, offset := range offsets {
		u := (float64(col) + offset.X) / float64(pr.width)
		v := (float64(row) + offset.Y) / float64(pr.height)
		ray := pr.camera.GetRay(u, v, sampler)

		// A degenerate sample contributes black instead of poisoning the pixel
		if c := pr.integrator.RayColor(ray, pr.world, sampler); !c.HasNaN() {
			sum = sum.Add(c)
		}
	}

	return sum.Divide(float64(len(offsets))).Sqrt().Clamp(0, 1)
}
