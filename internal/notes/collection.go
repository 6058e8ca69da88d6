package notes

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/starford/notepad/internal/apperr"
)

// collection maps note names to their content.
type collection map[string]string

// decodeCollection parses the persisted blob. An empty blob or JSON null is
// an empty collection.
func decodeCollection(raw string) (collection, error) {
	c := collection{}
	if raw == "" {
		return c, nil
	}
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrCorrupt, err)
	}
	if c == nil {
		c = collection{}
	}
	return c, nil
}

func (c collection) encode() (string, error) {
	data, err := json.Marshal(map[string]string(c))
	if err != nil {
		return "", fmt.Errorf("notes: encode collection: %w", err)
	}
	return string(data), nil
}

func (c collection) names() []string {
	return slices.Sorted(maps.Keys(c))
}
