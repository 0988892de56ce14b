// Package config loads JSON5 configuration files into structs.
package config

import (
	"io"
	"reflect"
	"time"

	"github.com/aoc2020/calc/go/skerr"
	"github.com/aoc2020/calc/go/util"
	"github.com/flynn/json5"
)

// Duration is a simple struct wrapper to allow us to parse strings as durations
// from the incoming config file (e.g,. "timeout": "5m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// LoadFromJSON5 reads the contents of each path in turn and decodes the JSON5
// there into the provided struct, so later files override earlier ones. The
// passed in struct pointer is expected to have "json" struct tags for all
// fields. An error will be returned if any non-struct, non-bool field is its
// zero value *unless* it is tagged with `optional:"true"`.
func LoadFromJSON5(dst interface{}, paths ...string) error {
	// Elem() dereferences a pointer or panics.
	rType := reflect.TypeOf(dst)
	if rType.Kind() != reflect.Ptr || rType.Elem().Kind() != reflect.Struct {
		return skerr.Fmt("Input must be a pointer to a struct, got %T", dst)
	}
	for _, path := range paths {
		err := util.WithReadFile(path, func(r io.Reader) error {
			return json5.NewDecoder(r).Decode(dst)
		})
		if err != nil {
			return skerr.Wrapf(err, "reading config at %s", path)
		}
	}
	return CheckRequired(dst)
}

// CheckRequired returns an error if any non-struct, non-bool fields of the
// struct pointed to by dst have a zero value *unless* they have an optional
// tag with value true.
func CheckRequired(dst interface{}) error {
	return checkRequired(reflect.Indirect(reflect.ValueOf(dst)))
}

func checkRequired(rValue reflect.Value) error {
	rType := rValue.Type()
	for i := 0; i < rValue.NumField(); i++ {
		field := rType.Field(i)
		if field.Type.Kind() == reflect.Struct && field.Tag.Get("json") == "" {
			if err := checkRequired(rValue.Field(i)); err != nil {
				return err
			}
			continue
		}
		if field.Type.Kind() == reflect.Bool {
			// For ease of use, booleans aren't compared against their zero value, since that would
			// effectively make them required to be true always.
			continue
		}
		isJSON := field.Tag.Get("json")
		if isJSON == "" {
			// don't validate struct values w/o json tags (e.g. config.Duration.Duration).
			continue
		}
		isOptional := field.Tag.Get("optional")
		if isOptional == "true" {
			continue
		}
		// defaults to being required
		if rValue.Field(i).IsZero() {
			return skerr.Fmt("Required %s to be non-zero", field.Name)
		}
	}
	return nil
}
