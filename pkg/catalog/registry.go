package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound is returned by Lookup for endpoints the registry does not know.
var ErrNotFound = errors.New("endpoint not found in catalog")

// Registry is the static endpoint catalog. It is built once at startup and
// is safe for concurrent reads; there is no way to mutate it afterwards.
type Registry struct {
	byPath map[string]Descriptor
	order  []string
}

// New builds a registry from the built-in descriptor set.
func New() (*Registry, error) {
	return NewFromDescriptors(builtinDescriptors())
}

// NewFromDescriptors builds and validates a registry from an explicit
// descriptor list. Construction fails on structurally invalid declarations;
// that is a programming error, not a runtime condition.
func NewFromDescriptors(descriptors []Descriptor) (*Registry, error) {
	reg := &Registry{
		byPath: make(map[string]Descriptor, len(descriptors)),
		order:  make([]string, 0, len(descriptors)),
	}
	for _, desc := range descriptors {
		if err := validateDescriptor(desc); err != nil {
			return nil, err
		}
		if _, dup := reg.byPath[desc.Path]; dup {
			return nil, fmt.Errorf("duplicate endpoint path %q", desc.Path)
		}
		reg.byPath[desc.Path] = desc
		reg.order = append(reg.order, desc.Path)
	}
	return reg, nil
}

func validateDescriptor(desc Descriptor) error {
	if strings.TrimSpace(desc.Path) == "" {
		return errors.New("endpoint path must not be empty")
	}
	if desc.Tier == TierDetailOnly && len(desc.ExtractionPath) > 0 {
		return fmt.Errorf("detail-only endpoint %q must not declare an extraction path", desc.Path)
	}
	for _, segment := range desc.ExtractionPath {
		if strings.TrimSpace(segment) == "" {
			return fmt.Errorf("endpoint %q has an empty extraction path segment", desc.Path)
		}
	}
	return nil
}

// Lookup returns the descriptor for path, or ErrNotFound.
func (r *Registry) Lookup(path string) (Descriptor, error) {
	desc, ok := r.byPath[path]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return desc, nil
}

// Contains reports whether path resolves in the registry.
func (r *Registry) Contains(path string) bool {
	_, ok := r.byPath[path]
	return ok
}

// ListAll returns every endpoint path in registration order.
func (r *Registry) ListAll() []string {
	return slices.Clone(r.order)
}

// ListByTier returns the descriptors of one tier in registration order.
func (r *Registry) ListByTier(tier Tier) []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, path := range r.order {
		if desc := r.byPath[path]; desc.Tier == tier {
			out = append(out, desc)
		}
	}
	return out
}
