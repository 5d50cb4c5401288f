// Package codec encodes records as canonical JSON documents, carrying a
// "type" discriminator resolved from an explicit registry of types.
//
// Documents are deterministic: keys are sorted at every level and the output
// is indented with two spaces, so the same record always yields the same
// bytes.
package codec

import (
	"bytes"
	"encoding/json"
	"reflect"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/oneconcern/memvcs/pkg/errors"
)

// TypeField is the name of the discriminator field
const TypeField = "type"

var (
	// ErrUnknownType is returned when encoding or decoding a type which has not been registered
	ErrUnknownType = errors.New("unknown type")

	// ErrDuplicateType is returned when registering a name or a type twice
	ErrDuplicateType = errors.New("type already registered")

	// ErrNotAnObject is returned when a record does not encode as a JSON object
	ErrNotAnObject = errors.New("record must encode as a JSON object")

	// ErrReservedField is returned when a record already holds a field named like the discriminator
	ErrReservedField = errors.New("record uses reserved field " + TypeField)

	// ErrMissingType is returned when decoding a document without discriminator
	ErrMissingType = errors.New("missing " + TypeField + " field")

	// ErrInvalidDocument is returned when a document is not valid JSON
	ErrInvalidDocument = errors.New("invalid document")
)

var api = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	UseNumber:              true,
	ValidateJsonRawMessage: true,
}.Froze()

type schema struct {
	name   string
	typ    reflect.Type
	decode func([]byte) (any, error)
}

// Registry maps logical type names to Go types
type Registry struct {
	mx     sync.RWMutex
	byName map[string]schema
	byType map[reflect.Type]string
}

// NewRegistry builds an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]schema),
		byType: make(map[reflect.Type]string),
	}
}

// Register the type T under some logical name
func Register[T any](r *Registry, name string) error {
	if name == "" {
		return ErrUnknownType.WrapMessage("empty type name")
	}
	typ := reflect.TypeFor[T]()

	r.mx.Lock()
	defer r.mx.Unlock()
	if _, exists := r.byName[name]; exists {
		return ErrDuplicateType.WrapMessage("name %q", name)
	}
	if existing, exists := r.byType[typ]; exists {
		return ErrDuplicateType.WrapMessage("type %v is registered as %q", typ, existing)
	}
	r.byName[name] = schema{
		name: name,
		typ:  typ,
		decode: func(data []byte) (any, error) {
			var v T
			if err := api.Unmarshal(data, &v); err != nil {
				return nil, ErrInvalidDocument.Wrap(err)
			}
			return v, nil
		},
	}
	r.byType[typ] = name
	return nil
}

// MustRegister registers a type or panics
func MustRegister[T any](r *Registry, name string) {
	if err := Register[T](r, name); err != nil {
		panic(err)
	}
}

// Names of all registered types, sorted
func (r *Registry) Names() []string {
	r.mx.RLock()
	defer r.mx.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NameOf returns the logical name for the type of a value.
//
// A pointer to a registered type resolves to the name of that type.
func (r *Registry) NameOf(v any) (string, bool) {
	typ := reflect.TypeOf(v)
	if typ == nil {
		return "", false
	}
	r.mx.RLock()
	defer r.mx.RUnlock()
	if name, ok := r.byType[typ]; ok {
		return name, true
	}
	if typ.Kind() == reflect.Ptr {
		name, ok := r.byType[typ.Elem()]
		return name, ok
	}
	return "", false
}

// Encode a record as a canonical JSON document
func (r *Registry) Encode(v any) ([]byte, error) {
	name, ok := r.NameOf(v)
	if !ok {
		return nil, ErrUnknownType.WrapMessage("%T", v)
	}

	raw, err := api.Marshal(v)
	if err != nil {
		return nil, err
	}
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrNotAnObject.WrapMessage("%s", name)
	}

	// decoding into generic values sorts keys at every level once re-encoded
	var fields map[string]interface{}
	if err := api.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if _, reserved := fields[TypeField]; reserved {
		return nil, ErrReservedField.WrapMessage("%s", name)
	}
	fields[TypeField] = name

	compact, err := api.Marshal(fields)
	if err != nil {
		return nil, err
	}
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, compact, "", "  "); err != nil {
		return nil, err
	}
	return pretty.Bytes(), nil
}

// Decode a document into a value of the registered type
func (r *Registry) Decode(data []byte) (any, error) {
	var header map[string]jsoniter.RawMessage
	if err := api.Unmarshal(data, &header); err != nil {
		return nil, ErrInvalidDocument.Wrap(err)
	}
	if header == nil {
		return nil, ErrNotAnObject
	}
	rawName, ok := header[TypeField]
	if !ok {
		return nil, ErrMissingType
	}
	var name string
	if err := api.Unmarshal(rawName, &name); err != nil {
		return nil, ErrMissingType.Wrap(err)
	}

	r.mx.RLock()
	s, known := r.byName[name]
	r.mx.RUnlock()
	if !known {
		return nil, ErrUnknownType.WrapMessage("%q", name)
	}
	return s.decode(data)
}

// DecodeAs decodes a document and checks that it holds a T
func DecodeAs[T any](r *Registry, data []byte) (T, error) {
	var zero T
	v, err := r.Decode(data)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, ErrUnknownType.WrapMessage("document holds %T, not %T", v, zero)
	}
	return t, nil
}
