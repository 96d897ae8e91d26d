package array

import (
	"fmt"
	"maps"
	"slices"
)

// Dataset is a set of named arrays sharing Coords. It has no native name.
type Dataset struct {
	Vars   map[string]*DataArray `json:"vars" cbor:"vars" msgpack:"vars"`
	Coords map[string][]string   `json:"coords,omitempty" cbor:"coords,omitempty" msgpack:"coords,omitempty"`
	Attrs  Attrs                 `json:"attrs,omitempty" cbor:"attrs,omitempty" msgpack:"attrs,omitempty"`
}

// NewDataset builds a Dataset from vars; each var is keyed by its Name.
func NewDataset(coords map[string][]string, vars ...*DataArray) *Dataset {
	ds := &Dataset{
		Vars:   make(map[string]*DataArray, len(vars)),
		Coords: cloneCoords(coords),
	}
	for _, v := range vars {
		ds.Vars[v.Name] = v
	}
	return ds
}

// Var returns the variable called name.
func (d *Dataset) Var(name string) (*DataArray, bool) {
	v, ok := d.Vars[name]
	return v, ok
}

// With returns a shallow copy of d with v added under v.Name.
// Attributes are not carried over.
func (d *Dataset) With(v *DataArray) *Dataset {
	out := &Dataset{
		Vars:   maps.Clone(d.Vars),
		Coords: cloneCoords(d.Coords),
	}
	if out.Vars == nil {
		out.Vars = make(map[string]*DataArray, 1)
	}
	out.Vars[v.Name] = v
	return out
}

// Validate validates every variable and checks that shared coordinates agree.
func (d *Dataset) Validate() error {
	for _, name := range slices.Sorted(maps.Keys(d.Vars)) {
		v := d.Vars[name]
		if v == nil {
			return fmt.Errorf("dataset: variable %q is nil", name)
		}
		if v.Name != name {
			return fmt.Errorf("dataset: variable %q is named %q", name, v.Name)
		}
		if err := v.Validate(); err != nil {
			return fmt.Errorf("dataset: %w", err)
		}
		for i, dim := range v.Dims {
			if labels, ok := d.Coords[dim]; ok && len(labels) != v.Shape[i] {
				return fmt.Errorf("dataset: variable %q extent %d along %q, coordinate has %d", name, v.Shape[i], dim, len(labels))
			}
		}
	}
	return nil
}

// Equal reports whether d and o hold equal variables and coordinates.
func (d *Dataset) Equal(o *Dataset) bool {
	if d == nil || o == nil {
		return d == o
	}
	return maps.EqualFunc(d.Vars, o.Vars, (*DataArray).Equal) &&
		maps.EqualFunc(d.Coords, o.Coords, slices.Equal[[]string])
}

// LogicalName returns the "name" attribute, or DefaultDatasetName.
func (d *Dataset) LogicalName() string {
	if n, ok := d.Attrs.Name(); ok {
		return n
	}
	return DefaultDatasetName
}

func (d *Dataset) InputHash() (string, bool) { return d.Attrs.Hash() }
func (d *Dataset) CacheTag() (Tag, bool)     { return d.Attrs.tag() }
func (d *Dataset) SetCacheTag(t Tag)         { d.Attrs.setTag(t) }
