// Package identity resolves raw texture names to the canonical ids under which
// catalog entries are stored.
package identity

import (
	"slices"
	"strings"
)

// Graph maps a model id to the set of texture names it declares.
// It is read-only once built.
type Graph map[string][]string

// Users returns the ids of every model that references texture, sorted.
func (g Graph) Users(texture string) []string {
	var users []string
	for model, textures := range g {
		if slices.Contains(textures, texture) {
			users = append(users, model)
		}
	}
	slices.Sort(users)
	return users
}

// index inverts the graph into texture -> set of model ids.
func (g Graph) index() map[string]map[string]bool {
	idx := make(map[string]map[string]bool)
	for model, textures := range g {
		for _, tex := range textures {
			if idx[tex] == nil {
				idx[tex] = make(map[string]bool)
			}
			idx[tex][model] = true
		}
	}
	return idx
}

// Resolver maps texture names to canonical ids.
type Resolver struct {
	users map[string]map[string]bool
}

// NewResolver builds a Resolver over graph.
func NewResolver(graph Graph) *Resolver {
	return &Resolver{users: graph.index()}
}

// Resolve returns the canonical id of texture. A texture referenced by a model
// of the same name is its own id. Otherwise the last underscore-delimited
// segment is stripped ("acacia_log_top" -> "acacia_log"); the result is not
// checked against any known id.
func (r *Resolver) Resolve(texture string) string {
	if r.users[texture][texture] {
		return texture
	}
	return StripSuffix(texture)
}

// ResolveAll resolves every texture and groups the textures by id. Each
// group is sorted and free of duplicates.
func (r *Resolver) ResolveAll(textures []string) map[string][]string {
	groups := make(map[string][]string)
	for _, tex := range textures {
		id := r.Resolve(tex)
		if !slices.Contains(groups[id], tex) {
			groups[id] = append(groups[id], tex)
		}
	}
	for id := range groups {
		slices.Sort(groups[id])
	}
	return groups
}

// StripSuffix removes the last underscore-delimited segment of name. Names
// without an underscore are returned unchanged.
func StripSuffix(name string) string {
	i := strings.LastIndexByte(name, '_')
	if i <= 0 {
		return name
	}
	return name[:i]
}
