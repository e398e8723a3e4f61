package manifest

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// cargoManifest is the subset of Cargo.toml deadweight reads.
type cargoManifest struct {
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// parseCargo reads [dependencies] and [dev-dependencies]. Declaration order
// comes from the decoder metadata since the tables decode into maps.
func parseCargo(data []byte) (*Manifest, error) {
	var cm cargoManifest
	md, err := toml.Decode(string(data), &cm)
	if err != nil {
		return nil, malformed("%v", err)
	}

	m := &Manifest{}
	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue
		}
		name := key[1]
		switch key[0] {
		case "dependencies":
			m.Dependencies = append(m.Dependencies, Dependency{Name: name, Constraint: cargoConstraint(cm.Dependencies[name])})
		case "dev-dependencies":
			m.DevDependencies = append(m.DevDependencies, Dependency{Name: name, Constraint: cargoConstraint(cm.DevDependencies[name])})
		}
	}
	m.Dependencies = dedup(m.Dependencies)
	m.DevDependencies = dedup(m.DevDependencies)
	return m, nil
}

// cargoConstraint handles both `name = "1.0"` and `name = { version = "1.0" }`.
func cargoConstraint(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		for _, k := range []string{"version", "path", "git"} {
			if s, ok := val[k].(string); ok {
				if k == "version" {
					return s
				}
				return k + ":" + s
			}
		}
		if ws, ok := val["workspace"].(bool); ok && ws {
			return "workspace"
		}
	}
	return fmt.Sprint(v)
}
