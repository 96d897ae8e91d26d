package array

import (
	"fmt"
	"maps"
	"slices"
)

// DataArray is a single named n-dimensional array of float64 values stored in
// row-major order.
type DataArray struct {
	Name   string              `json:"name,omitempty" cbor:"name,omitempty" msgpack:"name,omitempty"`
	Dims   []string            `json:"dims" cbor:"dims" msgpack:"dims"`
	Shape  []int               `json:"shape" cbor:"shape" msgpack:"shape"`
	Values []float64           `json:"values" cbor:"values" msgpack:"values"`
	Coords map[string][]string `json:"coords,omitempty" cbor:"coords,omitempty" msgpack:"coords,omitempty"`
	Attrs  Attrs               `json:"attrs,omitempty" cbor:"attrs,omitempty" msgpack:"attrs,omitempty"`
}

// New1D builds a one-dimensional DataArray along dim with optional coordinate labels.
func New1D(name, dim string, values []float64, labels []string) *DataArray {
	a := &DataArray{
		Name:   name,
		Dims:   []string{dim},
		Shape:  []int{len(values)},
		Values: slices.Clone(values),
	}
	if labels != nil {
		a.Coords = map[string][]string{dim: slices.Clone(labels)}
	}
	return a
}

// Validate checks that dims, shape, values and coords agree.
func (a *DataArray) Validate() error {
	if len(a.Dims) != len(a.Shape) {
		return fmt.Errorf("array %q: %d dims for shape of rank %d", a.Name, len(a.Dims), len(a.Shape))
	}
	n := 1
	for _, s := range a.Shape {
		if s < 0 {
			return fmt.Errorf("array %q: negative extent %d", a.Name, s)
		}
		n *= s
	}
	if n != len(a.Values) {
		return fmt.Errorf("array %q: shape holds %d values, got %d", a.Name, n, len(a.Values))
	}
	for dim, labels := range a.Coords {
		i := slices.Index(a.Dims, dim)
		if i < 0 {
			return fmt.Errorf("array %q: coordinate %q is not a dimension", a.Name, dim)
		}
		if len(labels) != a.Shape[i] {
			return fmt.Errorf("array %q: coordinate %q has %d labels for extent %d", a.Name, dim, len(labels), a.Shape[i])
		}
	}
	return nil
}

// Map returns a copy of a with f applied to every value. Attributes are not carried over.
func (a *DataArray) Map(f func(float64) float64) *DataArray {
	out := &DataArray{
		Name:   a.Name,
		Dims:   slices.Clone(a.Dims),
		Shape:  slices.Clone(a.Shape),
		Values: make([]float64, len(a.Values)),
		Coords: cloneCoords(a.Coords),
	}
	for i, v := range a.Values {
		out.Values[i] = f(v)
	}
	return out
}

// Equal reports whether a and b hold the same name, layout, values and coordinates.
// Attributes are not compared.
func (a *DataArray) Equal(b *DataArray) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name &&
		slices.Equal(a.Dims, b.Dims) &&
		slices.Equal(a.Shape, b.Shape) &&
		slices.Equal(a.Values, b.Values) &&
		maps.EqualFunc(a.Coords, b.Coords, slices.Equal[[]string])
}

// LogicalName returns Name, then the "name" attribute, then "".
func (a *DataArray) LogicalName() string {
	if a.Name != "" {
		return a.Name
	}
	n, _ := a.Attrs.Name()
	return n
}

func (a *DataArray) InputHash() (string, bool) { return a.Attrs.Hash() }
func (a *DataArray) CacheTag() (Tag, bool)     { return a.Attrs.tag() }
func (a *DataArray) SetCacheTag(t Tag)         { a.Attrs.setTag(t) }

func cloneCoords(c map[string][]string) map[string][]string {
	if c == nil {
		return nil
	}
	out := make(map[string][]string, len(c))
	for k, v := range c {
		out[k] = slices.Clone(v)
	}
	return out
}
