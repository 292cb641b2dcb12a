package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderOptions collects everything the render command needs
type RenderOptions struct {
	Scene        string
	Out          string
	Config       renderer.RenderConfig
	SceneOptions scene.Options
}

// renderOptionsFromContext maps command flags onto render options. A worker
// count of zero selects defaultWorkers.
func renderOptionsFromContext(ctx *cli.Context, defaultWorkers int) (RenderOptions, error) {
	opts := RenderOptions{
		Scene:        ctx.String("scene"),
		Out:          ctx.String("out"),
		Config:       renderer.DefaultRenderConfig(),
		SceneOptions: scene.DefaultOptions(),
	}
	if opts.Scene == "" {
		return opts, errors.New("missing scene name")
	}

	opts.Config.Width = ctx.Int("width")
	opts.Config.Height = ctx.Int("height")
	opts.Config.SamplesPerPixel = ctx.Int("spp")
	opts.Config.MaxDepth = ctx.Int("depth")
	opts.Config.NumWorkers = ctx.Int("workers")
	opts.Config.Seed = ctx.Int64("seed")
	opts.Config.Pattern = ctx.String("pattern")
	opts.Config.Integrator = ctx.String("integrator")
	if opts.Config.NumWorkers == 0 {
		opts.Config.NumWorkers = defaultWorkers
	}
	if err := opts.Config.Validate(); err != nil {
		return opts, err
	}

	opts.SceneOptions.Seed = ctx.Int64("scene-seed")
	opts.SceneOptions.AspectRatio = opts.Config.AspectRatio()
	opts.SceneOptions.UseBVH = !ctx.Bool("no-bvh")
	opts.SceneOptions.Split = ctx.String("split")

	if opts.Out == "" {
		opts.Out = defaultOutputPath(opts.Scene, time.Now())
	}
	if _, err := imageio.FormatFromPath(opts.Out); err != nil {
		return opts, err
	}
	return opts, nil
}

func defaultOutputPath(sceneName string, now time.Time) string {
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

// RenderFrame renders a still frame of a registered scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	info := GetSystemInfo()
	logSystemInfo(info)

	opts, err := renderOptionsFromContext(ctx, info.PhysicalCores)
	if err != nil {
		return err
	}

	sc, err := scene.Build(opts.Scene, opts.SceneOptions)
	if err != nil {
		return err
	}
	if bvh, ok := sc.World.(*geometry.BVHNode); ok {
		stats := bvh.Stats()
		logger.Infof("bvh: %d nodes over %d primitives, max depth %d", stats.Nodes, stats.Primitives, stats.MaxDepth)
	}

	scheduler, err := sc.NewScheduler(opts.Config)
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := make(chan renderer.Progress, 256)
	reporterDone := make(chan struct{})
	go func() {
		defer close(reporterDone)
		logProgress(progress, opts.Config.Width*opts.Config.Height)
	}()

	logger.Noticef("rendering %q at %dx%d, %d spp, %d workers", opts.Scene, opts.Config.Width, opts.Config.Height, opts.Config.SamplesPerPixel, opts.Config.NumWorkers)
	fb, stats, err := scheduler.Render(sigCtx, progress)
	close(progress)
	<-reporterDone
	if err != nil {
		return err
	}

	displayFrameStats(stats)

	if err := os.MkdirAll(filepath.Dir(opts.Out), 0755); err != nil {
		return err
	}
	if err := imageio.Save(opts.Out, fb.ToRGBA()); err != nil {
		return err
	}
	logger.Noticef("wrote %s", opts.Out)
	return nil
}

// progressTracker turns per-partition progress updates into a frame-wide
// completion percentage.
type progressTracker struct {
	total    int
	done     map[int]int
	sum      int
	reported int // last reported multiple of 10 percent
}

func newProgressTracker(total int) *progressTracker {
	return &progressTracker{total: total, done: make(map[int]int)}
}

// update records p and returns the completion percentage whenever a new
// 10 percent step is crossed.
func (t *progressTracker) update(p renderer.Progress) (int, bool) {
	if t.total <= 0 {
		return 0, false
	}
	if prev := t.done[p.PartitionID]; p.Done > prev {
		t.sum += p.Done - prev
		t.done[p.PartitionID] = p.Done
	}

	step := (100 * t.sum / t.total) / 10 * 10
	if step <= t.reported {
		return 0, false
	}
	t.reported = step
	return step, true
}

// logProgress drains progress until it is closed
func logProgress(progress <-chan renderer.Progress, totalPixels int) {
	tracker := newProgressTracker(totalPixels)
	for p := range progress {
		if percent, ok := tracker.update(p); ok {
			logger.Infof("%3d%% complete", percent)
		}
	}
}

func formatFrameStats(stats renderer.FrameStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Partition", "Pixels", "Samples", "% of frame", "Render time"})
	totalPixels := stats.TotalPixels()
	for _, stat := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", stat.PartitionID),
			fmt.Sprintf("%d", stat.Pixels),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%02.1f %%", stat.FramePercent(totalPixels)),
			stat.RenderTime.String(),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d", totalPixels), fmt.Sprintf("%d", stats.TotalSamples()), "TOTAL", stats.RenderTime.String()})

	table.Render()
	return buf.String()
}

func displayFrameStats(stats renderer.FrameStats) {
	logger.Noticef("frame statistics\n%s", formatFrameStats(stats))
}
