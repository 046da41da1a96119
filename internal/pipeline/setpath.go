package pipeline

import (
	"fmt"
	"strings"
)

// SetByPath writes value into m at the dot-separated path, creating
// intermediate maps as needed. An existing scalar at an intermediate
// position is an error; an existing scalar at the leaf is overwritten.
func SetByPath(m map[string]any, path string, value any) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	keys := strings.Split(path, ".")
	node := m
	for i, key := range keys[:len(keys)-1] {
		child, ok := node[key]
		if !ok {
			next := map[string]any{}
			node[key] = next
			node = next
			continue
		}
		next, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("path %q: %q is not a map", path, strings.Join(keys[:i+1], "."))
		}
		node = next
	}
	node[keys[len(keys)-1]] = value
	return nil
}
