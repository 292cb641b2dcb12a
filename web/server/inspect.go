package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/labstack/echo/v4"
)

// InspectResponse describes what the camera sees through one pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// materialInfo names a material and lists its parameters
func materialInfo(mat core.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vecArray(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties
	}

	properties["type"] = fmt.Sprintf("%T", mat)
	return "unknown", properties
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", renderer.Quantize(c.X), renderer.Quantize(c.Y), renderer.Quantize(c.Z))
}

// handleInspect casts the center ray of pixel (x, y), with y counted from the
// top of the image, and reports the closest hit.
func (s *Server) handleInspect(c echo.Context) error {
	req, err := s.parseRenderRequest(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	x, y := -1, -1
	if err := queryInt(c, "x", &x); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := queryInt(c, "y", &y); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if x < 0 || x >= req.Config.Width || y < 0 || y >= req.Config.Height {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("pixel (%d, %d) outside %dx%d image", x, y, req.Config.Width, req.Config.Height))
	}

	sc, err := buildScene(req.Scene, req.SceneSeed, req.Config)
	if err != nil {
		return err
	}

	// A pinhole at the shutter opening gives a repeatable ray
	cameraConfig := sc.CameraConfig
	cameraConfig.AspectRatio = req.Config.AspectRatio()
	cameraConfig.Aperture = 0
	cameraConfig.Time1 = cameraConfig.Time0
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	row := req.Config.Height - 1 - y
	u := (float64(x) + 0.5) / float64(req.Config.Width)
	v := (float64(row) + 0.5) / float64(req.Config.Height)
	ray := camera.GetRay(u, v, nil)

	hit, ok := sc.World.Hit(ray, integrator.ShadowEpsilon, math.Inf(1))
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, properties := materialInfo(hit.Material)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vecArray(hit.Point),
		Normal:       vecArray(hit.Normal),
		Distance:     hit.T * ray.Direction.Length(),
		Properties:   properties,
	})
}
