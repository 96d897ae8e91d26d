package arraycache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/unkn0wn-root/arraycache/array"
)

// Reserved signature fields. They cannot be used as parameter names.
const (
	sigNameField = "__name__"
	sigTypeField = "__type__"
)

// Params is an insertion-ordered parameter mapping. It marshals to a JSON
// object with keys in insertion order.
type Params struct {
	keys []string
	vals map[string]any
}

// Set adds or replaces k. A replaced key keeps its position.
func (p *Params) Set(k string, v any) {
	if p.vals == nil {
		p.vals = make(map[string]any)
	}
	if _, ok := p.vals[k]; !ok {
		p.keys = append(p.keys, k)
	}
	p.vals[k] = v
}

func (p *Params) Get(k string) (any, bool) {
	v, ok := p.vals[k]
	return v, ok
}

func (p *Params) Delete(k string) {
	if _, ok := p.vals[k]; !ok {
		return
	}
	delete(p.vals, k)
	p.keys = slices.DeleteFunc(p.keys, func(s string) bool { return s == k })
}

// Keys returns the keys in order.
func (p *Params) Keys() []string { return slices.Clone(p.keys) }

func (p *Params) Len() int { return len(p.keys) }

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := p.writeFields(&buf); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p Params) writeFields(buf *bytes.Buffer) error {
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeField(buf, k, p.vals[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeField(buf *bytes.Buffer, k string, v any) error {
	kb, err := json.Marshal(k)
	if err != nil {
		return err
	}
	vb, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("param %q: %w", k, err)
	}
	buf.Write(kb)
	buf.WriteByte(':')
	buf.Write(vb)
	return nil
}

// FunctionSignature describes the called function: name, effective
// parameters, and the concrete type of the input.
type FunctionSignature struct {
	Name   string
	Params Params
	Type   string
}

// MarshalJSON writes {"__name__": ..., <params in order>, "__type__": ...}.
func (s FunctionSignature) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if err := writeField(&buf, sigNameField, s.Name); err != nil {
		return nil, err
	}
	if s.Params.Len() > 0 {
		buf.WriteByte(',')
		if err := s.Params.writeFields(&buf); err != nil {
			return nil, err
		}
	}
	buf.WriteByte(',')
	if err := writeField(&buf, sigTypeField, s.Type); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Signature is the CallSignature: what was called, on which array.
type Signature struct {
	ArrayName string            `json:"array_name"`
	Function  FunctionSignature `json:"function_signature"`
}

// BuildSignature describes calling fn on in with kwargs.
//
// Declared parameters come first, in declaration order, with their defaults
// overridden by kwargs. Keyword arguments fn does not declare follow in sorted
// order. Variadic parameters and the reserved __name__/__type__ fields are
// dropped, also when passed as kwargs.
func BuildSignature(fn Func, in array.Labeled, kwargs Kwargs) Signature {
	skip := map[string]bool{sigNameField: true, sigTypeField: true}
	for _, p := range fn.Params {
		if p.Variadic {
			skip[p.Name] = true
		}
	}

	var params Params
	for _, p := range fn.Params {
		if skip[p.Name] {
			continue
		}
		v, ok := kwargs[p.Name]
		if !ok {
			v = p.Default
		}
		params.Set(p.Name, v)
	}
	for _, k := range slices.Sorted(maps.Keys(kwargs)) {
		if skip[k] {
			continue
		}
		if _, declared := params.Get(k); declared {
			continue
		}
		params.Set(k, kwargs[k])
	}

	return Signature{
		ArrayName: in.LogicalName(),
		Function: FunctionSignature{
			Name:   fn.Name,
			Params: params,
			Type:   fmt.Sprintf("%T", in),
		},
	}
}
