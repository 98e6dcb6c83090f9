package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Request limits
const (
	minWidth   = 16
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 500
)

// Server renders built-in scenes over HTTP. Each request is one batch render.
type Server struct {
	port    int
	echo    *echo.Echo
	logger  core.Logger
	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	s := &Server{
		port:   port,
		echo:   echo.New(),
		logger: renderer.NewDefaultLogger(),
	}
	s.echo.HideBanner = true
	s.echo.Use(corsMiddleware)

	// API endpoints
	s.echo.GET("/api/health", s.handleHealth)
	s.echo.GET("/api/scenes", s.handleScenes)
	s.echo.GET("/api/scene-config", s.handleSceneConfig)
	s.echo.GET("/api/render", s.handleRender)
	s.echo.GET("/api/inspect", s.handleInspect)
	return s
}

// Handler exposes the routes for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens until the server is shut down
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s\n", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func corsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Response().Header().Set("Access-Control-Allow-Origin", "*")
		c.Response().Header().Set("Access-Control-Allow-Methods", "GET")
		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusOK)
		}
		return next(c)
	}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene ID (e.g., "cornell")
	Width   int    `json:"width"`   // Image width, 0 keeps the scene's width
	Samples int    `json:"samples"` // Samples per pixel, 0 keeps the scene's value
	Depth   int    `json:"depth"`   // Maximum bounce depth, 0 keeps the scene's value
	Seed    int64  `json:"seed"`
	Format  string `json:"format"` // "png" or "ppm"
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	TotalSamples     int64   `json:"totalSamples"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
}

func newStats(rs renderer.RenderStats) Stats {
	return Stats{
		Width:            rs.Width,
		Height:           rs.Height,
		SamplesPerPixel:  rs.SamplesPerPixel,
		TotalSamples:     int64(rs.TotalSamples),
		Workers:          rs.NumWorkers,
		ElapsedMs:        rs.Duration.Milliseconds(),
		SamplesPerSecond: rs.SamplesPerSecond(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes by group
func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.ListScenes())
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneName := c.QueryParam("scene")
	if sceneName == "" {
		sceneName = "cornell"
	}

	sceneObj, err := scene.New(sceneName, scene.Options{Logger: renderer.NewNopLogger()})
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	sampling := sceneObj.Sampling()
	response := map[string]interface{}{
		"scene":      sceneName,
		"primitives": sceneObj.PrimitiveCount(),
		"defaults": map[string]interface{}{
			"width":           sceneObj.Camera().Width(),
			"height":          sceneObj.Camera().Height(),
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minWidth, "max": maxWidth},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	}
	return c.JSON(http.StatusOK, response)
}

// handleRender renders the requested scene and returns the encoded image.
// PPM rows stream as they complete; PNG is written once the render finishes.
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return jsonError(c, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewRenderLogger(renderID, s.logger)

	rt, err := s.createRaytracer(req, logger)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	// Client disconnects cancel the render
	ctx := c.Request().Context()
	res := c.Response()
	res.Header().Set("X-Render-Id", renderID)

	switch req.Format {
	case "ppm":
		res.Header().Set(echo.HeaderContentType, "image/x-portable-pixmap")
		res.WriteHeader(http.StatusOK)
		ppm, err := renderer.NewPPMWriter(res, rt.Width(), rt.Height())
		if err != nil {
			return err
		}
		stats, err := rt.Render(ctx, ppm)
		if err == nil {
			err = ppm.Close()
		}
		if err != nil {
			// Headers are already sent
			logger.Printf("Render failed: %v\n", err)
			return nil
		}
		logger.Printf("Streamed %d samples\n", stats.TotalSamples)
		return nil
	default:
		buffer := renderer.NewImageBuffer(rt.Width(), rt.Height())
		stats, err := rt.Render(ctx, buffer)
		if err != nil {
			return jsonError(c, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		}
		res.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
		res.Header().Set(echo.HeaderContentType, "image/png")
		res.WriteHeader(http.StatusOK)
		return buffer.WritePNG(res)
	}
}

// createRaytracer builds the requested scene with the request's overrides applied
func (s *Server) createRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := createScene(req.Scene, req.Width, req.Seed, logger)
	if err != nil {
		return nil, err
	}

	sampling := sceneObj.Sampling()
	config := renderer.RenderConfig{
		SamplesPerPixel: sampling.SamplesPerPixel,
		MaxDepth:        sampling.MaxDepth,
		Seed:            req.Seed,
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		config.MaxDepth = req.Depth
	}

	// Performance warning
	if sceneObj.Camera().Width()*sceneObj.Camera().Height() > 800*600 && config.SamplesPerPixel > 100 {
		logger.Printf("Render warning: Large image with high samples may render slowly\n")
	}

	return renderer.NewRaytracer(sceneObj, config, logger)
}

// createScene builds a catalog scene seeded for reproducible layouts
func createScene(name string, width int, seed int64, logger core.Logger) (*scene.Scene, error) {
	sceneObj, err := scene.New(name, scene.Options{
		Sampler: core.NewSeededSampler(seed),
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	if width > 0 {
		return sceneObj.WithWidth(width)
	}
	return sceneObj, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene"), Format: values.Get("format")}
	if req.Scene == "" {
		req.Scene = "cornell"
	}
	switch req.Format {
	case "":
		req.Format = "png"
	case "png", "ppm":
	default:
		return nil, fmt.Errorf("unknown format: %s", req.Format)
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if value := values.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
	} else {
		req.Seed = renderer.DefaultRenderConfig().Seed
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func jsonError(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
