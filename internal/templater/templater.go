// internal/templater/templater.go

// Package templater fills "{{key}}" placeholders from a context map.
package templater

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

// Render replaces every {{key}} placeholder in tmpl with the matching value
// from ctx. Whitespace around the key is ignored, unknown keys render as an
// empty string and an unterminated "{{" is copied through unchanged.
func Render(tmpl string, ctx map[string]any) string {
	return fasttemplate.ExecuteFuncString(tmpl, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		value, ok := Lookup(ctx, strings.TrimSpace(tag))
		if !ok {
			return 0, nil
		}
		return io.WriteString(w, FormatValue(value))
	})
}

// Keys returns the distinct placeholder keys of tmpl in order of first use.
func Keys(tmpl string) []string {
	var keys []string
	seen := make(map[string]bool)
	fasttemplate.ExecuteFuncString(tmpl, startTag, endTag, func(w io.Writer, tag string) (int, error) {
		key := strings.TrimSpace(tag)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return 0, nil
	})
	return keys
}

// Lookup resolves key in ctx. A key present literally wins; otherwise a
// dotted key ("user.name") walks nested maps.
func Lookup(ctx map[string]any, key string) (any, bool) {
	if ctx == nil || key == "" {
		return nil, false
	}
	if v, ok := ctx[key]; ok {
		return v, true
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var current any = ctx
	for _, part := range strings.Split(key, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// FormatValue converts a context value to the text placed in the output.
// Nil pointers render empty and a panicking String or Error method is
// reported inline, so rendering never panics.
func FormatValue(value any) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("%%!v(PANIC=%v)", r)
		}
	}()

	if value == nil {
		return ""
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}

	switch v := value.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	case []byte:
		return string(v)
	}

	// Named scalar types (type Env string) are formatted by kind.
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}

	// Maps, slices and structs are rendered as JSON.
	jsonBytes, err := json.Marshal(value)
	if err == nil {
		return string(jsonBytes)
	}
	return fmt.Sprintf("%v", value)
}
