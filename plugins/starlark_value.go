package plugins

import (
	"fmt"
	"reflect"

	"github.com/Qix-/tag/taglang"
	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

var (
	tagConstructor      = starlark.String("tag")
	variableConstructor = starlark.String("variable")
	callConstructor     = starlark.String("call")
)

func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {

	case nil:
		return starlark.None

	case starlark.Value:
		return v

	case bool:
		return starlark.Bool(v)

	case string:
		return starlark.String(v)

	case int:
		return starlark.MakeInt(v)
	case int64:
		return starlark.MakeInt64(v)
	case uint64:
		return starlark.MakeUint64(v)

	case float64:
		return starlark.Float(v)

	case []string:
		elems := make([]starlark.Value, len(v))
		for i, s := range v {
			elems[i] = starlark.String(s)
		}
		return starlark.NewList(elems)

	case []any:
		elems := make([]starlark.Value, len(v))
		for i, e := range v {
			elems[i] = toStarlarkValue(e)
		}
		return starlark.NewList(elems)

	case map[string]any:
		d := starlark.NewDict(len(v))
		for k, val := range v {
			d.SetKey(starlark.String(k), toStarlarkValue(val))
		}
		return d

	case taglang.Located:
		return starlark.String(v.Text)

	case taglang.Location:
		return starlark.String(v.String())

	}

	value := reflect.ValueOf(v)
	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		l := value.Len()
		elems := make([]starlark.Value, l)
		for i := range l {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			)
		}
		return d

	case reflect.Pointer, reflect.Interface:
		elem := value.Elem()
		if !elem.IsValid() {
			return starlark.None
		}
		return toStarlarkValue(elem.Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", value.Interface())

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// toEntry converts a value produced by a Starlark module into a namespace
// entry. Besides tag() and variable() results, plain bools, strings and
// lists of strings are accepted.
func toEntry(v starlark.Value) (taglang.Entry, error) {
	switch v := v.(type) {

	case *starlarkstruct.Struct:
		switch v.Constructor() {
		case tagConstructor:
			enabled, err := v.Attr("enabled")
			if err != nil {
				return nil, err
			}
			return taglang.Tag{Enabled: bool(enabled.Truth())}, nil
		case variableConstructor:
			values, err := v.Attr("values")
			if err != nil {
				return nil, err
			}
			return toEntry(values)
		}

	case starlark.Bool:
		return taglang.Tag{Enabled: bool(v)}, nil

	case starlark.String:
		return taglang.Variable{Value: taglang.Literals(string(v))}, nil

	case starlark.Indexable:
		values := make([]string, 0, v.Len())
		for i := range v.Len() {
			s, ok := starlark.AsString(v.Index(i))
			if !ok {
				return nil, fmt.Errorf("variable values must be strings, got %s", v.Index(i).Type())
			}
			values = append(values, s)
		}
		return taglang.Variable{Value: taglang.Literals(values...)}, nil

	}

	return nil, fmt.Errorf("not a tag or variable: %s", v.Type())
}

// toEntries converts a dict of entries, reporting bad ones with the given kind.
func toEntries(v starlark.Value, kind taglang.ErrorKind, what string) (map[string]taglang.Entry, error) {
	if v == starlark.None {
		return nil, nil
	}
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return nil, taglang.Errorf(kind, "%s must be a dict, got %s", what, v.Type())
	}
	ret := make(map[string]taglang.Entry, dict.Len())
	for _, item := range dict.Items() {
		key, ok := starlark.AsString(item[0])
		if !ok {
			return nil, taglang.Errorf(kind, "%s keys must be strings, got %s", what, item[0].Type())
		}
		entry, err := toEntry(item[1])
		if err != nil {
			return nil, taglang.Errorf(kind, "%s entry '%s' is not a valid namespace element: %v", what, key, err)
		}
		ret[key] = entry
	}
	return ret, nil
}
