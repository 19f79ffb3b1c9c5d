package api

import (
	"encoding/json"
	"math"
	"net/http"
	"reflect"
	"strings"

	"cryptopulse/pkg/logger"
)

// respondJSON writes v as a JSON response. Payloads containing NaN or
// infinite floats cannot be marshaled directly, those values are
// replaced with null on a fallback pass.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		if _, ok := err.(*json.UnsupportedValueError); ok {
			body, err = json.Marshal(sanitized(reflect.ValueOf(v)))
		}
		if err != nil {
			logger.Get().Error("Failed to encode response", "error", err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"internal server error"}`))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// respondError writes a JSON error body with the given status
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// sanitized deep-copies a value into generic JSON types, turning
// non-finite floats into nulls
func sanitized(v reflect.Value) interface{} {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f

	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
		return sanitized(v.Elem())

	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return nil
		}
		out := make([]interface{}, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = sanitized(v.Index(i))
		}
		return out

	case reflect.Map:
		out := make(map[string]interface{}, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			key, ok := iter.Key().Interface().(string)
			if !ok {
				continue
			}
			out[key] = sanitized(iter.Value())
		}
		return out

	case reflect.Struct:
		// Types with their own marshaler (time.Time, decimal.Decimal)
		// are passed through untouched
		if _, ok := v.Interface().(json.Marshaler); ok {
			return v.Interface()
		}
		out := make(map[string]interface{})
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if field.PkgPath != "" {
				continue
			}
			name, omitempty := jsonFieldName(field)
			if name == "-" {
				continue
			}
			value := sanitized(v.Field(i))
			if omitempty && isEmptyValue(v.Field(i)) {
				continue
			}
			out[name] = value
		}
		return out

	default:
		return v.Interface()
	}
}

func jsonFieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("json")
	if tag == "" {
		return field.Name, false
	}
	parts := strings.Split(tag, ",")
	name := parts[0]
	if name == "" {
		name = field.Name
	}
	omitempty := false
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			omitempty = true
		}
	}
	return name, omitempty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map, reflect.String:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	return false
}
