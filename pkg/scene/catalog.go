package scene

import (
	"fmt"
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type entry struct {
	description string
	create      func() (*Scene, error)
}

var builtins = map[string]entry{
	"default":       {"Diffuse sphere between fuzzy gold and brushed silver metal spheres", NewDefaultScene},
	"single-sphere": {"One diffuse sphere centered in front of the camera", NewSingleSphereScene},
	"spheregrid":    {"Grid of colored metal spheres receding from the camera", NewSphereGridScene},
}

// ListScenes returns all built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtins))
	for id, e := range builtins {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: e.description,
		})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// CreateScene builds the built-in scene with the given ID
func CreateScene(id string) (*Scene, error) {
	e, ok := builtins[id]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", id)
	}
	s, err := e.create()
	if err != nil {
		return nil, fmt.Errorf("failed to build scene %q: %w", id, err)
	}
	return s, nil
}

// titleCase converts a hyphen or underscore separated ID into words
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_'
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
