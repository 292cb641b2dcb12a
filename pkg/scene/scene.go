package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var logger = log.New("scene")

var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene contains everything needed to render: the world and how to look at it
type Scene struct {
	Name         string
	World        core.Hittable
	CameraConfig renderer.CameraConfig
	Objects      int // Number of top level objects in the world
}

// Options control how a scene is built
type Options struct {
	Seed        int64   // Seed for randomly generated scene content
	AspectRatio float64 // Camera aspect ratio, 16:9 when zero
	UseBVH      bool    // Wrap the objects in a BVH instead of a flat list
	Split       string  // BVH split strategy name
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Seed:        1,
		AspectRatio: 16.0 / 9.0,
		UseBVH:      true,
		Split:       geometry.SplitRandomAxis,
	}
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// A builder returns the objects of a scene and a camera framing them
type builder func(random *rand.Rand) ([]core.Hittable, renderer.CameraConfig)

type entry struct {
	description string
	build       builder
}

var registry = map[string]entry{
	"random-spheres": {"ground, a 22x22 grid of small random spheres and three large spheres", randomSpheres},
	"moving-spheres": {"random spheres whose diffuse members rise during the shutter interval", movingSpheres},
	"three-spheres":  {"lambertian, fuzzy metal and hollow glass spheres on a ground sphere", threeSpheres},
	"two-spheres":    {"one diffuse sphere on a ground sphere seen along -z", twoSpheres},
}

// Names lists every registered scene in alphabetical order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List describes every registered scene in alphabetical order
func List() []SceneInfo {
	var infos []SceneInfo
	for _, name := range Names() {
		infos = append(infos, SceneInfo{Name: name, Description: registry[name].description})
	}
	return infos
}

// Build creates the named scene
func Build(name string, opts Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}

	objects, cameraConfig := e.build(rand.New(rand.NewSource(opts.Seed)))
	cameraConfig.AspectRatio = opts.AspectRatio
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = 16.0 / 9.0
	}

	var world core.Hittable = geometry.NewHitableList(objects...)
	if opts.UseBVH {
		strategy, err := geometry.SplitByName(opts.Split, opts.Seed)
		if err != nil {
			return nil, err
		}
		// Boxes must cover every time the camera can sample
		if world, err = geometry.NewBVH(objects, cameraConfig.Time0, cameraConfig.Time1, strategy); err != nil {
			return nil, fmt.Errorf("scene %q: %w", name, err)
		}
	}

	logger.Infof("built scene %s with %d objects (bvh: %t)", name, len(objects), opts.UseBVH)
	return &Scene{
		Name:         name,
		World:        world,
		CameraConfig: cameraConfig,
		Objects:      len(objects),
	}, nil
}

// NewScheduler frames the scene for the configured image and returns a
// scheduler ready to render it
func (s *Scene) NewScheduler(config renderer.RenderConfig) (*renderer.Scheduler, error) {
	cameraConfig := s.CameraConfig
	if config.Width > 0 && config.Height > 0 {
		cameraConfig.AspectRatio = config.AspectRatio()
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return renderer.NewScheduler(s.World, camera, nil, config)
}
