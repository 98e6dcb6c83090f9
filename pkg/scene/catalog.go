package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by New for names not in the catalog
var ErrUnknownScene = errors.New("unknown scene")

// Options carries inputs shared by scene constructors
type Options struct {
	Sampler     core.Sampler // Drives random scene layout and noise tables; seeded 42 when nil
	TexturePath string       // Image for the earth texture; a missing image renders cyan
	MeshPath    string       // PLY mesh for the mesh scene; a pyramid is used when empty
	Logger      core.Logger  // Receives load warnings; silent when nil
}

func (o Options) withDefaults() Options {
	if o.Sampler == nil {
		o.Sampler = core.NewSeededSampler(42)
	}
	if o.Logger == nil {
		o.Logger = renderer.NewNopLogger()
	}
	return o
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by New
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

type catalogEntry struct {
	info SceneInfo
	new  func(opts Options) (*Scene, error)
}

var catalog = []catalogEntry{
	{SceneInfo{ID: "three-spheres", Description: "Glass and metal spheres on a diffuse ground", Group: "Basics"}, NewThreeSpheresScene},
	{SceneInfo{ID: "bouncing-spheres", Description: "Random field of moving, metal and glass spheres", Group: "Basics"}, NewBouncingSpheresScene},
	{SceneInfo{ID: "checkered-spheres", Description: "Two spheres sharing a 3D checker texture", Group: "Textures"}, NewCheckeredSpheresScene},
	{SceneInfo{ID: "perlin-spheres", Description: "Marble-like Perlin turbulence", Group: "Textures"}, NewPerlinSpheresScene},
	{SceneInfo{ID: "earth", Description: "Image-textured globe", Group: "Textures"}, NewEarthScene},
	{SceneInfo{ID: "quads", Description: "Five colored quads around the camera", Group: "Primitives"}, NewQuadsScene},
	{SceneInfo{ID: "primitives", Description: "Disks, triangles, a triangle mesh and a mixed material", Group: "Primitives"}, NewPrimitivesScene},
	{SceneInfo{ID: "mesh", Description: "A PLY triangle mesh on a checker floor", Group: "Primitives"}, NewMeshScene},
	{SceneInfo{ID: "simple-light", Description: "Perlin spheres lit by a quad and a sphere light", Group: "Lighting"}, NewSimpleLightScene},
	{SceneInfo{ID: "cornell", Description: "Cornell box with two rotated boxes", Group: "Lighting"}, NewCornellScene},
	{SceneInfo{ID: "cornell-smoke", Description: "Cornell box with smoke and fog blocks", Group: "Lighting"}, NewCornellSmokeScene},
	{SceneInfo{ID: "final", Description: "Every feature in one scene", Group: "Showcase"}, NewFinalScene},
}

// New creates the named built-in scene
func New(name string, opts Options) (*Scene, error) {
	for _, entry := range catalog {
		if entry.info.ID == name {
			return entry.new(opts)
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// Names returns the IDs of all built-in scenes in catalog order
func Names() []string {
	names := make([]string, len(catalog))
	for i, entry := range catalog {
		names[i] = entry.info.ID
	}
	return names
}

// ListScenes returns all built-in scenes, grouped by category in catalog order
func ListScenes() []SceneGroup {
	var groups []SceneGroup
	index := make(map[string]int)
	for _, entry := range catalog {
		info := entry.info
		info.DisplayName = titleCase(info.ID)

		i, ok := index[info.Group]
		if !ok {
			i = len(groups)
			index[info.Group] = i
			groups = append(groups, SceneGroup{Name: info.Group})
		}
		groups[i].Scenes = append(groups[i].Scenes, info)
	}
	return groups
}

// titleCase turns an ID like "cornell-smoke" into "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
