package manifest

import (
	"encoding/json"
	"sort"
)

// packageJSON is the subset of package.json deadweight reads.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// parsePackageJSON reads dependencies and devDependencies. JSON objects
// decode into maps, so both lists are sorted by name.
func parsePackageJSON(data []byte) (*Manifest, error) {
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, malformed("%v", err)
	}
	return &Manifest{
		Dependencies:    sortedDeps(pkg.Dependencies),
		DevDependencies: sortedDeps(pkg.DevDependencies),
	}, nil
}

func sortedDeps(deps map[string]string) []Dependency {
	if len(deps) == 0 {
		return nil
	}
	out := make([]Dependency, 0, len(deps))
	for name, v := range deps {
		out = append(out, Dependency{Name: name, Constraint: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
