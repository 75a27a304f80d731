package tools

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/hubspot-mcp/hubspot-mcp/internal/crm"
)

const additionalPropertiesKey = "additionalProperties"

// present reports whether v counts as supplied for a required argument:
// null, "", 0, false and empty lists do not.
func present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case []string:
		return len(t) > 0
	}
	return true
}

func requireArgs(args map[string]any, fields ...string) error {
	for _, f := range fields {
		if !present(args[f]) {
			return &MissingArgumentError{Field: f}
		}
	}
	return nil
}

// readString renders scalar arguments as strings, so numeric ids are accepted.
func readString(args map[string]any, key string) string {
	return stringValue(args[key])
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}

// readInt returns def unless the argument holds a positive number.
func readInt(args map[string]any, key string, def int) int {
	var n int
	switch t := args[key].(type) {
	case float64:
		n = int(t)
	case int:
		n = t
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return def
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return def
		}
		n = i
	}
	if n <= 0 {
		return def
	}
	return n
}

func readStringSlice(args map[string]any, key string) []string {
	switch t := args[key].(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringValue(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	}
	return nil
}

func readObject(args map[string]any, key string) map[string]any {
	m, _ := args[key].(map[string]any)
	return m
}

func pageParams(args map[string]any) crm.PageParams {
	return crm.PageParams{
		Limit:      readInt(args, "limit", crm.DefaultPageSize),
		After:      readString(args, "after"),
		Properties: readStringSlice(args, "properties"),
	}
}

// propertyBag turns flat tool arguments into a CRM properties map.
type propertyBag struct {
	// named fields are copied when present.
	named []string
	// reserved arguments are consumed by the tool and never sent as properties.
	reserved []string
	// coerce rewrites named field values before they are sent.
	coerce map[string]func(any) any
}

// build merges named fields, then every unrecognized argument, then the
// additionalProperties object; later sources win.
func (b propertyBag) build(args map[string]any) map[string]any {
	skip := make(map[string]bool, len(b.named)+len(b.reserved)+1)
	skip[additionalPropertiesKey] = true
	for _, k := range b.reserved {
		skip[k] = true
	}

	props := make(map[string]any)
	for _, k := range b.named {
		skip[k] = true
		v, ok := args[k]
		if !ok || !present(v) {
			continue
		}
		if fn, ok := b.coerce[k]; ok {
			v = fn(v)
		}
		props[k] = v
	}
	for k, v := range args {
		if !skip[k] {
			props[k] = v
		}
	}
	for k, v := range readObject(args, additionalPropertiesKey) {
		props[k] = v
	}
	return props
}

// buildUpdate is build with empty values removed, so an update never blanks
// a field by accident.
func (b propertyBag) buildUpdate(args map[string]any) map[string]any {
	props := b.build(args)
	for k, v := range props {
		if v == nil {
			delete(props, k)
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			delete(props, k)
		}
	}
	return props
}

func toString(v any) any {
	if s := stringValue(v); s != "" {
		return s
	}
	return v
}
