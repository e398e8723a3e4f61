package manifest

import "golang.org/x/mod/modfile"

// parseGoMod reads the require directives of a go.mod file. Direct
// requirements are dependencies; "// indirect" ones are reported as dev
// dependencies since nothing in the module imports them by name.
func parseGoMod(data []byte) (*Manifest, error) {
	f, err := modfile.Parse("go.mod", data, nil)
	if err != nil {
		return nil, malformed("%v", err)
	}

	m := &Manifest{}
	for _, req := range f.Require {
		d := Dependency{Name: req.Mod.Path, Constraint: req.Mod.Version}
		if req.Indirect {
			m.DevDependencies = append(m.DevDependencies, d)
		} else {
			m.Dependencies = append(m.Dependencies, d)
		}
	}
	m.Dependencies = dedup(m.Dependencies)
	m.DevDependencies = dedup(m.DevDependencies)
	return m, nil
}
