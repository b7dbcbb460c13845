package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"

	"github.com/pixil98/go-errors"
)

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// ValidatingSpec is implemented by every asset spec type.
type ValidatingSpec interface {
	Validate() error
}

// Asset is the JSON envelope every definition file is stored in.
type Asset[T ValidatingSpec] struct {
	Version uint   `json:"version"`
	Id      string `json:"id"`
	Spec    T      `json:"spec"`
}

func (a *Asset[T]) Validate() error {
	el := errors.NewErrorList()

	if a.Version == 0 {
		el.Add(fmt.Errorf("version must be set"))
	}

	if !idPattern.MatchString(a.Id) {
		el.Add(fmt.Errorf("id must be non-empty and alphanumeric"))
	}

	el.Add(a.Spec.Validate())

	return el.Err()
}

// SmartIdentifier is a foreign key to another asset. It unmarshals from
// a plain JSON string and is resolved against a store after all assets
// are loaded.
type SmartIdentifier[T ValidatingSpec] struct {
	key string
	val T
}

func NewSmartIdentifier[T ValidatingSpec](key string) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key}
}

func NewResolvedSmartIdentifier[T ValidatingSpec](key string, val T) SmartIdentifier[T] {
	return SmartIdentifier[T]{key: key, val: val}
}

func (id *SmartIdentifier[T]) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &id.key)
}

func (id SmartIdentifier[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.key)
}

// Resolve looks the key up in the store, caching the result.
func (id *SmartIdentifier[T]) Resolve(st Storer[T]) error {
	id.val = st.Get(id.key)
	if reflect.ValueOf(id.val).IsNil() {
		var zero T
		return fmt.Errorf("%s %q not found", reflect.TypeOf(zero).Elem().Name(), id.key)
	}
	return nil
}

// Key returns the referenced asset id.
func (id SmartIdentifier[T]) Key() string {
	return id.key
}

// Val returns the resolved spec, or the zero value before Resolve.
func (id SmartIdentifier[T]) Val() T {
	return id.val
}
