package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom      core.Vec3 // Camera position
	LookAt        core.Vec3 // Point the camera is looking at
	Up            core.Vec3 // Up direction (usually (0,1,0))
	Width         int       // Image width in pixels
	AspectRatio   float64   // Width / height
	VFov          float64   // Vertical field of view in degrees
	DefocusAngle  float64   // Variation angle of rays through each pixel in degrees, 0 for a pinhole
	FocusDistance float64   // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns a pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		LookFrom:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          90,
		DefocusAngle:  0,
		FocusDistance: 10,
	}
}

// Camera generates jittered primary rays. It is immutable once created.
type Camera struct {
	config   CameraConfig
	height   int
	center   core.Vec3
	pixel00  core.Vec3 // Center of pixel (0, 0), the upper-left pixel
	deltaU   core.Vec3 // Offset to the pixel to the right
	deltaV   core.Vec3 // Offset to the pixel below
	defocusU core.Vec3 // Defocus disk horizontal radius
	defocusV core.Vec3 // Defocus disk vertical radius
}

// NewCamera creates a camera from config
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.Width <= 0 {
		return nil, fmt.Errorf("%w: camera width must be positive, got %d", ErrInvalidConfig, config.Width)
	}
	if config.AspectRatio <= 0 {
		return nil, fmt.Errorf("%w: aspect ratio must be positive, got %v", ErrInvalidConfig, config.AspectRatio)
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("%w: vertical field of view must be in (0, 180), got %v", ErrInvalidConfig, config.VFov)
	}
	if config.FocusDistance <= 0 {
		return nil, fmt.Errorf("%w: focus distance must be positive, got %v", ErrInvalidConfig, config.FocusDistance)
	}
	forward := config.LookFrom.Subtract(config.LookAt)
	if forward.NearZero() {
		return nil, fmt.Errorf("%w: LookFrom and LookAt coincide", ErrInvalidConfig)
	}
	if config.Up.Cross(forward).NearZero() {
		return nil, fmt.Errorf("%w: Up is parallel to the view direction", ErrInvalidConfig)
	}

	height := max(1, int(float64(config.Width)/config.AspectRatio))

	// Viewport dimensions on the focus plane
	h := math.Tan(degreesToRadians(config.VFov) / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * float64(config.Width) / float64(height)

	// Orthonormal camera basis
	w := forward.Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	viewportU := u.Multiply(viewportWidth)
	viewportV := v.Multiply(-viewportHeight)
	deltaU := viewportU.Divide(float64(config.Width))
	deltaV := viewportV.Divide(float64(height))

	upperLeft := config.LookFrom.
		Subtract(w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	pixel00 := upperLeft.Add(deltaU.Add(deltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(degreesToRadians(config.DefocusAngle/2))

	return &Camera{
		config:   config,
		height:   height,
		center:   config.LookFrom,
		pixel00:  pixel00,
		deltaU:   deltaU,
		deltaV:   deltaV,
		defocusU: u.Multiply(defocusRadius),
		defocusV: v.Multiply(defocusRadius),
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.Width }

// Height returns the image height in pixels, at least 1
func (c *Camera) Height() int { return c.height }

// Config returns the configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// GetRay returns a ray for pixel (i, j), with (0, 0) at the upper left.
// The ray passes through a random point of the pixel square, starts on the
// defocus disk and carries a random time in [0, 1).
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00.
		Add(c.deltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.deltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		p := core.RandomInUnitDisk(sampler)
		origin = c.center.Add(c.defocusU.Multiply(p.X)).Add(c.defocusV.Multiply(p.Y))
	}

	return core.NewRayAtTime(origin, pixelSample.Subtract(origin), sampler.Get1D())
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
