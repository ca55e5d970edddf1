// seehuhn.de/go/diagram - piecewise-linear diagrams on 2D surfaces
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package merge combines sparse configuration patches with typed
// configuration structures.
//
// A configuration is a Go struct whose fields carry a `diagram` tag
// giving the key used in patches.  A second value of the same type, the
// schema, holds the defaults.  Fields tagged "optional" must be pointers
// to structs; they are absent (nil) by default, and are filled with the
// schema's defaults the first time a patch mentions them:
//
//	type Config struct {
//		Margin int          `diagram:"margin"`
//		Title  *TitleConfig `diagram:"title,optional"`
//	}
//
// Patches are trees of map[string]any, []any and scalar values, as
// produced by encoding/json.  Keys which do not occur in the schema are
// ignored.  An array patch for a slice of scalars replaces the slice
// as a whole; for a slice of structs, the entries of the patch are
// merged into the existing elements by position.
package merge

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// Patch is a sparse configuration tree.
type Patch = map[string]any

// ErrShape is matched by all errors reporting a shape mismatch between a
// patch and the schema.
var ErrShape = errors.New("configuration shape mismatch")

// ShapeError reports that a value in a patch has a different shape than
// the corresponding schema entry.
type ShapeError struct {
	Path string // dotted path of the offending entry
	Want string // shape expected by the schema
	Got  string // shape found in the patch
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("config %s: expected %s, got %s", e.Path, e.Want, e.Got)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

// Defaults returns a deep copy of schema in which all optional fields are
// nil.
func Defaults[T any](schema *T) (*T, error) {
	res := new(T)
	if err := deepcopy.Copy(res, schema); err != nil {
		return nil, err
	}
	clearOptional(reflect.ValueOf(res).Elem())
	return res, nil
}

// Clone returns a deep copy of v.
func Clone[T any](v *T) (*T, error) {
	res := new(T)
	if err := deepcopy.Copy(res, v); err != nil {
		return nil, err
	}
	return res, nil
}

// Apply merges patch into a copy of cur and returns the result.  The
// schema supplies the defaults for optional fields which cur does not
// have yet.  On error, cur is left unchanged and the returned value is
// nil.
func Apply[T any](cur, schema *T, patch Patch) (*T, error) {
	res, err := Clone(cur)
	if err != nil {
		return nil, err
	}
	err = apply(reflect.ValueOf(res).Elem(), reflect.ValueOf(schema).Elem(), patch, "")
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UnknownKeys lists the dotted paths of all patch entries which Apply
// would ignore, in sorted order.
func UnknownKeys[T any](schema *T, patch Patch) []string {
	var res []string
	unknown(reflect.TypeOf(schema).Elem(), patch, "", &res)
	sort.Strings(res)
	return res
}

type fieldInfo struct {
	index    int
	key      string
	optional bool
}

func fields(t reflect.Type) []fieldInfo {
	var res []fieldInfo
	for i := range t.NumField() {
		f := t.Field(i)
		tag, ok := f.Tag.Lookup("diagram")
		if !ok || tag == "-" || !f.IsExported() {
			continue
		}
		key, opts, _ := strings.Cut(tag, ",")
		res = append(res, fieldInfo{
			index:    i,
			key:      key,
			optional: opts == "optional",
		})
	}
	return res
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func clearOptional(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for _, f := range fields(v.Type()) {
			fv := v.Field(f.index)
			if f.optional {
				fv.SetZero()
				continue
			}
			clearOptional(fv)
		}
	case reflect.Pointer:
		if !v.IsNil() {
			clearOptional(v.Elem())
		}
	case reflect.Slice, reflect.Array:
		for i := range v.Len() {
			clearOptional(v.Index(i))
		}
	}
}

func shapeOf(x any) string {
	switch x.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if _, ok := toFloat(x); ok {
			return "number"
		}
		return fmt.Sprintf("%T", x)
	}
}

func apply(dst, schema reflect.Value, patch any, path string) error {
	switch dst.Kind() {
	case reflect.Struct:
		obj, ok := patch.(map[string]any)
		if !ok {
			return &ShapeError{Path: path, Want: "object", Got: shapeOf(patch)}
		}
		for _, f := range fields(dst.Type()) {
			val, present := obj[f.key]
			if !present {
				continue
			}
			fv := dst.Field(f.index)
			var sv reflect.Value
			if schema.IsValid() {
				sv = schema.Field(f.index)
			}
			if err := apply(fv, sv, val, join(path, f.key)); err != nil {
				return err
			}
		}
		return nil

	case reflect.Pointer:
		if _, ok := patch.(map[string]any); !ok && dst.Type().Elem().Kind() == reflect.Struct {
			return &ShapeError{Path: path, Want: "object", Got: shapeOf(patch)}
		}
		var se reflect.Value
		if schema.IsValid() && !schema.IsNil() {
			se = schema.Elem()
		}
		if dst.IsNil() {
			// materialise from the schema defaults
			p := reflect.New(dst.Type().Elem())
			if se.IsValid() {
				if err := deepcopy.Copy(p.Interface(), se.Addr().Interface()); err != nil {
					return err
				}
				clearOptional(p.Elem())
			}
			if err := apply(p.Elem(), se, patch, path); err != nil {
				return err
			}
			dst.Set(p)
			return nil
		}
		return apply(dst.Elem(), se, patch, path)

	case reflect.Slice:
		arr, ok := patch.([]any)
		if !ok {
			return &ShapeError{Path: path, Want: "array", Got: shapeOf(patch)}
		}
		if isScalar(dst.Type().Elem()) {
			repl := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
			for i, x := range arr {
				if err := setScalar(repl.Index(i), x, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
			dst.Set(repl)
			return nil
		}
		if len(arr) > dst.Len() {
			grown := reflect.MakeSlice(dst.Type(), len(arr), len(arr))
			reflect.Copy(grown, dst)
			for i := dst.Len(); i < len(arr); i++ {
				if schema.IsValid() && i < schema.Len() {
					if err := deepcopy.Copy(grown.Index(i).Addr().Interface(), schema.Index(i).Addr().Interface()); err != nil {
						return err
					}
				}
			}
			dst.Set(grown)
		}
		for i, x := range arr {
			var sv reflect.Value
			if schema.IsValid() && i < schema.Len() {
				sv = schema.Index(i)
			}
			if err := apply(dst.Index(i), sv, x, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		return nil
	}

	return setScalar(dst, patch, path)
}

func isScalar(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return false
	}
	return true
}

func setScalar(dst reflect.Value, x any, path string) error {
	mismatch := func(want string) error {
		return &ShapeError{Path: path, Want: want, Got: shapeOf(x)}
	}

	switch dst.Kind() {
	case reflect.String:
		s, ok := x.(string)
		if !ok {
			return mismatch("string")
		}
		dst.SetString(s)

	case reflect.Bool:
		b, ok := x.(bool)
		if !ok {
			return mismatch("boolean")
		}
		dst.SetBool(b)

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(x)
		if !ok {
			return mismatch("number")
		}
		dst.SetFloat(f)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f, ok := toFloat(x)
		if !ok || f != math.Trunc(f) || dst.OverflowInt(int64(f)) {
			return mismatch("integer")
		}
		dst.SetInt(int64(f))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f, ok := toFloat(x)
		if !ok || f != math.Trunc(f) || f < 0 || dst.OverflowUint(uint64(f)) {
			return mismatch("non-negative integer")
		}
		dst.SetUint(uint64(f))

	default:
		return fmt.Errorf("config %s: unsupported field type %s", path, dst.Type())
	}
	return nil
}

func toFloat(x any) (float64, bool) {
	switch v := x.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

func unknown(t reflect.Type, patch any, path string, res *[]string) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		obj, ok := patch.(map[string]any)
		if !ok {
			return
		}
		known := make(map[string]reflect.Type)
		for _, f := range fields(t) {
			known[f.key] = t.Field(f.index).Type
		}
		for key, val := range obj {
			ft, ok := known[key]
			if !ok {
				*res = append(*res, join(path, key))
				continue
			}
			unknown(ft, val, join(path, key), res)
		}
	case reflect.Slice:
		arr, ok := patch.([]any)
		if !ok {
			return
		}
		for i, x := range arr {
			unknown(t.Elem(), x, fmt.Sprintf("%s[%d]", path, i), res)
		}
	}
}
