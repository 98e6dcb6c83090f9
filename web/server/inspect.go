package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// centerSampler aims camera rays through pixel centers with no lens or time jitter
type centerSampler struct{}

func (centerSampler) Get1D() float64   { return 0.5 }
func (centerSampler) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", renderer.ToByte(c.X), renderer.ToByte(c.Y), renderer.ToByte(c.Z))
}

// inspectPixel casts a ray through the center of pixel (x, y) and returns the first hit
func inspectPixel(sceneObj *scene.Scene, x, y int) (*material.HitRecord, bool) {
	sampler := centerSampler{}
	ray := sceneObj.Camera().GetRay(x, y, sampler)
	return sceneObj.World().Hit(ray, core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1)), sampler)
}

// extractMaterialInfo describes a material, evaluating textures at the hit
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		describeColorSource(properties, "albedo", m.Albedo, hit)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec3Array(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		describeColorSource(properties, "emission", m.Emission, hit)
		return "diffuse_light", properties

	case *material.Isotropic:
		describeColorSource(properties, "albedo", m.Albedo, hit)
		return "isotropic", properties

	case *material.Mix:
		material1Type, material1Props := extractMaterialInfo(m.Material1, hit)
		material2Type, material2Props := extractMaterialInfo(m.Material2, hit)
		properties["material1"] = map[string]interface{}{
			"type":       material1Type,
			"properties": material1Props,
		}
		properties["material2"] = map[string]interface{}{
			"type":       material2Type,
			"properties": material2Props,
		}
		properties["ratio"] = m.Ratio
		properties["description"] = fmt.Sprintf("%.0f%% %s, %.0f%% %s",
			(1-m.Ratio)*100, material1Type, m.Ratio*100, material2Type)
		return "mixed", properties

	case nil:
		return "none", properties

	default:
		return "unknown", properties
	}
}

func describeColorSource(properties map[string]interface{}, key string, source material.ColorSource, hit *material.HitRecord) {
	color := source.Evaluate(hit.UV, hit.Point)
	properties[key] = vec3Array(color)
	properties["color"] = hexColor(color)

	switch source.(type) {
	case *material.SolidColor:
		properties["texture"] = "solid"
	case *material.CheckerTexture:
		properties["texture"] = "checker"
	case *material.NoiseTexture:
		properties["texture"] = "noise"
	case *material.ImageTexture:
		properties["texture"] = "image"
	default:
		properties["texture"] = "unknown"
	}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()
	sceneName := values.Get("scene")
	if sceneName == "" {
		sceneName = "cornell"
	}
	width, err := parseIntParam(values, "width", 0, minWidth, maxWidth)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sceneObj, err := createScene(sceneName, width, renderer.DefaultRenderConfig().Seed, renderer.NewNopLogger())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	pixelX, err := strconv.Atoi(values.Get("x"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	pixelY, err := strconv.Atoi(values.Get("y"))
	if err != nil {
		return jsonError(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	camera := sceneObj.Camera()
	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		return jsonError(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	hit, ok := inspectPixel(sceneObj, pixelX, pixelY)
	if !ok {
		return c.JSON(http.StatusOK, InspectResponse{Hit: false})
	}

	materialType, materialProps := extractMaterialInfo(hit.Material, hit)
	return c.JSON(http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		Point:        vec3Array(hit.Point),
		Normal:       vec3Array(hit.Normal),
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   materialProps,
	})
}
