package optics

import "fmt"

var (
	// ErrDuplicateMaterial is returned when a name is registered twice.
	ErrDuplicateMaterial = fmt.Errorf("material already registered")
	// ErrMaterialNotFound is returned for names that are neither registered nor
	// predefined.
	ErrMaterialNotFound = fmt.Errorf("material not found")
)

// Registry is the name-indexed material database. Registration happens during
// setup on a single goroutine; lookups afterwards may be concurrent.
type Registry struct {
	materials map[string]*Material
	order     []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{materials: make(map[string]*Material)}
}

// Register adds m under its name.
func (r *Registry) Register(m *Material) error {
	if m == nil || m.Name == "" {
		return fmt.Errorf("cannot register unnamed material")
	}
	if _, exists := r.materials[m.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateMaterial, m.Name)
	}
	r.materials[m.Name] = m
	r.order = append(r.order, m.Name)
	return nil
}

// Lookup returns a registered material.
func (r *Registry) Lookup(name string) (*Material, error) {
	m, ok := r.materials[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	}
	return m, nil
}

// FindOrBuild returns a registered material, building and registering a
// predefined one on first use.
func (r *Registry) FindOrBuild(name string) (*Material, error) {
	if m, ok := r.materials[name]; ok {
		return m, nil
	}
	m, predefined, err := buildCatalogMaterial(name)
	if err != nil {
		return nil, fmt.Errorf("build predefined material %s: %w", name, err)
	}
	if !predefined {
		return nil, fmt.Errorf("%w: %q", ErrMaterialNotFound, name)
	}
	if err := r.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered materials.
func (r *Registry) Len() int { return len(r.materials) }
