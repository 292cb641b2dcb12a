package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("renderer")

// Scheduler splits an image into one partition per worker, renders the
// partitions in parallel and assembles the framebuffer.
type Scheduler struct {
	config     RenderConfig
	partitions []Partition
	renderer   *PixelRenderer
}

// NewScheduler creates a scheduler. A nil integrator is resolved from the
// configuration's integrator name and max depth.
func NewScheduler(world core.Hittable, camera *Camera, integ integrator.Integrator, config RenderConfig) (*Scheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if world == nil || camera == nil {
		return nil, fmt.Errorf("%w: world and camera are required", ErrInvalidConfig)
	}
	if integ == nil {
		var err error
		if integ, err = integrator.ByName(config.Integrator, config.MaxDepth); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	partitions, err := SplitPixels(config.Width, config.Height, config.NumWorkers)
	if err != nil {
		return nil, err
	}
	renderer, err := NewPixelRenderer(world, camera, integ, config)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		config:     config,
		partitions: partitions,
		renderer:   renderer,
	}, nil
}

// Partitions returns the pixel partitions the scheduler renders
func (s *Scheduler) Partitions() []Partition {
	return s.partitions
}

// Render renders the full image. Progress updates are sent on progress when it
// is not nil. Any partition failure fails the whole render.
func (s *Scheduler) Render(ctx context.Context, progress chan<- Progress) (*Framebuffer, FrameStats, error) {
	start := time.Now()
	logger.Infof(
		"rendering %dx%d at %d spp with %d partitions",
		s.config.Width, s.config.Height, s.config.SamplesPerPixel, len(s.partitions),
	)

	var results []PartitionResult
	var err error
	if len(s.partitions) == 1 {
		results, err = s.renderSerial(ctx, progress)
	} else {
		results, err = s.renderParallel(ctx, progress)
	}
	if err != nil {
		return nil, FrameStats{}, err
	}

	fb, err := s.assemble(results)
	if err != nil {
		return nil, FrameStats{}, err
	}

	stats := FrameStats{
		Workers:    make([]WorkerStat, len(results)),
		RenderTime: time.Since(start),
	}
	for _, result := range results {
		stats.Workers[result.ID] = result.Stats
	}

	logger.Infof("rendered %d samples in %s", stats.TotalSamples(), stats.RenderTime)
	return fb, stats, nil
}

// renderSerial renders the only partition in the calling goroutine
func (s *Scheduler) renderSerial(ctx context.Context, progress chan<- Progress) ([]PartitionResult, error) {
	p := s.partitions[0]
	result := s.renderer.renderTask(ctx, PartitionTask{Partition: p, Seed: s.seedFor(p)}, progress)
	if result.Error != nil {
		return nil, result.Error
	}
	return []PartitionResult{result}, nil
}

// renderParallel dispatches one task per partition to the worker pool. The first
// failure cancels the remaining partitions.
func (s *Scheduler) renderParallel(ctx context.Context, progress chan<- Progress) ([]PartitionResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := NewWorkerPool(s.renderer, len(s.partitions), len(s.partitions), progress)
	pool.Start(ctx)
	for _, p := range s.partitions {
		pool.SubmitTask(PartitionTask{Partition: p, Seed: s.seedFor(p)})
	}

	results := make([]PartitionResult, 0, len(s.partitions))
	var firstErr error
	for range s.partitions {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = result.Error
			cancel()
		}
		results = append(results, result)
	}
	pool.Stop()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (s *Scheduler) seedFor(p Partition) int64 {
	return s.config.Seed + int64(p.ID)
}

// assemble writes every partition into a framebuffer, checking that each pixel
// is written exactly once.
func (s *Scheduler) assemble(results []PartitionResult) (*Framebuffer, error) {
	fb := NewFramebuffer(s.config.Width, s.config.Height)
	written := make([]bool, s.config.Width*s.config.Height)

	for _, result := range results {
		for k, color := range result.Colors {
			row, col := result.Rows[k], result.Cols[k]
			index := row*s.config.Width + col
			if written[index] {
				return nil, fmt.Errorf("%w: (%d, %d) in partition %d", ErrPixelOverwrite, row, col, result.ID)
			}
			written[index] = true
			fb.Set(row, col, color)
		}
	}

	for index, ok := range written {
		if !ok {
			return nil, fmt.Errorf("%w: (%d, %d)", ErrPixelMissing, index/s.config.Width, index%s.config.Width)
		}
	}
	return fb, nil
}
