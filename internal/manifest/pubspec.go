package manifest

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// parsePubspec reads the dependencies and dev_dependencies mappings of a
// Dart pubspec. It walks the yaml.Node tree rather than unmarshalling into
// a map so declaration order survives. A missing or null mapping is empty.
func parsePubspec(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, malformed("%v", err)
	}

	m := &Manifest{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		// Empty document.
		return m, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return m, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, malformed("top level must be a mapping (line %d)", root.Line)
	}

	var err error
	if m.Dependencies, err = pubspecSection(root, "dependencies"); err != nil {
		return nil, err
	}
	if m.DevDependencies, err = pubspecSection(root, "dev_dependencies"); err != nil {
		return nil, err
	}
	return m, nil
}

func pubspecSection(root *yaml.Node, key string) ([]Dependency, error) {
	section := mappingValue(root, key)
	if section == nil || (section.Kind == yaml.ScalarNode && section.ShortTag() == "!!null") {
		return nil, nil
	}
	if section.Kind == yaml.AliasNode && section.Alias != nil {
		section = section.Alias
	}
	if section.Kind != yaml.MappingNode {
		return nil, malformed("%s must be a mapping (line %d)", key, section.Line)
	}

	var deps []Dependency
	for i := 0; i+1 < len(section.Content); i += 2 {
		k, v := section.Content[i], section.Content[i+1]
		if k.Kind != yaml.ScalarNode || k.Value == "" {
			return nil, malformed("%s: dependency names must be strings (line %d)", key, k.Line)
		}
		deps = append(deps, Dependency{Name: k.Value, Constraint: pubspecConstraint(v)})
	}
	return dedup(deps), nil
}

// mappingValue returns the value node for key in a mapping node.
func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// pubspecConstraint renders a dependency value: a version string as-is,
// a hosted/path/git/sdk source as "<kind>:<value>", null as "any".
func pubspecConstraint(v *yaml.Node) string {
	switch v.Kind {
	case yaml.ScalarNode:
		if v.ShortTag() == "!!null" || v.Value == "" {
			return "any"
		}
		return v.Value
	case yaml.MappingNode:
		var parts []string
		for i := 0; i+1 < len(v.Content); i += 2 {
			k, val := v.Content[i].Value, v.Content[i+1]
			switch k {
			case "path", "sdk", "version":
				parts = append(parts, k+":"+val.Value)
			case "git", "hosted":
				if val.Kind == yaml.ScalarNode {
					parts = append(parts, k+":"+val.Value)
				} else if url := mappingValue(val, "url"); url != nil {
					parts = append(parts, k+":"+url.Value)
				} else {
					parts = append(parts, k)
				}
			}
		}
		sort.Strings(parts)
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("<%s>", v.ShortTag())
	}
}
