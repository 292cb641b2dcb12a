package main

import (
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func newApp() *cli.App {
	// The default "version, v" flag would clash with the global -v flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render sphere scenes with a parallel monte carlo path tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame of a scene",
			Description: `
Build one of the registered scenes, split the image into one partition per
worker and path trace every partition in parallel. The finished frame is
written to the output file; its extension selects png, ppm, bmp or tiff.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "random-spheres",
					Usage: "scene to render (see the scenes command)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 400,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 225,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 50,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: integrator.DefaultMaxDepth,
					Usage: "maximum scatter events per path",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "number of parallel partitions, 0 uses one per physical core",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "base seed of the per-partition samplers",
				},
				cli.Int64Flag{
					Name:  "scene-seed",
					Value: 1,
					Usage: "seed for randomly generated scene content",
				},
				cli.StringFlag{
					Name:  "pattern",
					Value: core.PatternRandom,
					Usage: "pixel sampling pattern",
				},
				cli.StringFlag{
					Name:  "integrator",
					Value: integrator.NamePathTracing,
					Usage: "integrator used to shade camera rays",
				},
				cli.StringFlag{
					Name:  "split",
					Value: geometry.SplitRandomAxis,
					Usage: "bvh split strategy",
				},
				cli.BoolFlag{
					Name:  "no-bvh",
					Usage: "intersect against a flat object list",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output image, defaults to output/<scene>/render_<timestamp>.png",
				},
			},
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the available scenes and option values",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve rendered previews over http",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "addr",
					Value: "localhost:8080",
					Usage: "listen address",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "default number of parallel partitions, 0 uses one per physical core",
				},
				cli.IntFlag{
					Name:  "max-pixels",
					Usage: "largest image a request may ask for",
				},
				cli.IntFlag{
					Name:  "max-spp",
					Usage: "largest sample count a request may ask for",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}
