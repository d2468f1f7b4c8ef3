package manifest

// RegistryEntry is the per-export record kept in the registry.
type RegistryEntry struct {
	Name       string
	Kind       Kind
	IsCallable bool
}

// Registry is a read-only lookup structure over all export and type names
// in a manifest. It is built once per analysis run, before any per-export
// drift detection begins: cross-reference detectors need visibility of the
// entire manifest, not just the export under analysis.
type Registry struct {
	Exports map[string]RegistryEntry
	Types   map[string]struct{}
	All     map[string]struct{}
}

// BuildRegistry builds the registry in a single forward pass over the
// manifest. Every export and type is reachable by both its name and, when
// present, its id.
func BuildRegistry(m *Manifest) *Registry {
	reg := &Registry{
		Exports: make(map[string]RegistryEntry, len(m.Exports)*2),
		Types:   make(map[string]struct{}, len(m.Types)*2),
		All:     make(map[string]struct{}, (len(m.Exports)+len(m.Types))*2),
	}

	for i := range m.Exports {
		exp := &m.Exports[i]
		entry := RegistryEntry{
			Name:       exp.Name,
			Kind:       exp.Kind,
			IsCallable: exp.Kind.IsCallable(),
		}
		reg.Exports[exp.Name] = entry
		reg.All[exp.Name] = struct{}{}
		if exp.ID != "" {
			reg.Exports[exp.ID] = entry
			reg.All[exp.ID] = struct{}{}
		}
	}

	for i := range m.Types {
		typ := &m.Types[i]
		reg.Types[typ.Name] = struct{}{}
		reg.All[typ.Name] = struct{}{}
		if typ.ID != "" {
			reg.Types[typ.ID] = struct{}{}
			reg.All[typ.ID] = struct{}{}
		}
	}

	return reg
}

// Has reports whether the name resolves to any export or type.
func (r *Registry) Has(name string) bool {
	_, ok := r.All[name]
	return ok
}

// HasType reports whether the name resolves to a registered type.
func (r *Registry) HasType(name string) bool {
	_, ok := r.Types[name]
	return ok
}

// Export looks up the registry entry for an export by name or id.
func (r *Registry) Export(name string) (RegistryEntry, bool) {
	entry, ok := r.Exports[name]
	return entry, ok
}

// AllNames returns every known export/type name and id. The order is
// unspecified; callers needing determinism must sort.
func (r *Registry) AllNames() []string {
	names := make([]string, 0, len(r.All))
	for name := range r.All {
		names = append(names, name)
	}
	return names
}
