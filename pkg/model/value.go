package model

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const displayPrefix = "Display"

// Value extracts the display value for a field from an object. When the model
// declares a Display<FieldName>() accessor it wins over the raw struct value,
// mirroring the accessor-override convention admin templates rely on.
func Value(obj any, field Field) (any, error) {
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return nil, fmt.Errorf("model: nil object for field %q", field.Name)
	}

	if method := rv.MethodByName(displayPrefix + field.Name); method.IsValid() {
		return callAccessor(method, field.Name)
	}
	if rv.Kind() != reflect.Pointer && rv.CanAddr() {
		if method := rv.Addr().MethodByName(displayPrefix + field.Name); method.IsValid() {
			return callAccessor(method, field.Name)
		}
	}

	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("model: nil object for field %q", field.Name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: expected struct, got %s", rv.Kind())
	}

	fv := rv.FieldByName(field.Name)
	if !fv.IsValid() {
		return nil, fmt.Errorf("model: field %q not found on %s", field.Name, rv.Type().Name())
	}
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}
	return fv.Interface(), nil
}

// RawValue extracts the stored struct value for a field, ignoring any
// Display accessor. Form inputs prefill from this so the user edits what is
// persisted rather than its formatted rendition.
func RawValue(obj any, field Field) (any, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("model: nil object for field %q", field.Name)
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: expected struct, got %s", rv.Kind())
	}

	fv := rv.FieldByName(field.Name)
	if !fv.IsValid() {
		return nil, fmt.Errorf("model: field %q not found on %s", field.Name, rv.Type().Name())
	}
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil, nil
		}
		fv = fv.Elem()
	}
	return fv.Interface(), nil
}

// PKValue extracts the primary key value from an object.
func PKValue(meta Metadata, obj any) (any, error) {
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("model: nil object")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model: expected struct, got %s", rv.Kind())
	}
	fv := rv.FieldByName(meta.PKField().Name)
	if !fv.IsValid() {
		return nil, fmt.Errorf("model: pk field %q not found", meta.PKField().Name)
	}
	return fv.Interface(), nil
}

// SetValue assigns a raw form value to the named field, converting according
// to the field kind. Empty input leaves the field untouched except for
// booleans, where an absent checkbox means false.
func SetValue(obj any, field Field, raw string) error {
	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("model: set value requires a non-nil pointer, got %T", obj)
	}
	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("model: expected struct pointer, got *%s", rv.Kind())
	}

	fv := rv.FieldByName(field.Name)
	if !fv.IsValid() || !fv.CanSet() {
		return fmt.Errorf("model: field %q is not settable", field.Name)
	}

	if fv.Kind() == reflect.Pointer {
		if strings.TrimSpace(raw) == "" {
			fv.Set(reflect.Zero(fv.Type()))
			return nil
		}
		target := reflect.New(fv.Type().Elem())
		if err := assign(target.Elem(), field, raw); err != nil {
			return err
		}
		fv.Set(target)
		return nil
	}

	if strings.TrimSpace(raw) == "" && field.Kind != KindBoolean && field.Kind != KindString {
		return nil
	}
	return assign(fv, field, raw)
}

func assign(fv reflect.Value, field Field, raw string) error {
	switch field.Kind {
	case KindBoolean:
		value := raw == "on" || raw == "true" || raw == "1"
		fv.SetBool(value)
	case KindInteger:
		parsed, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("model: field %q: %w", field.Column, err)
		}
		if fv.CanInt() {
			fv.SetInt(parsed)
		} else {
			fv.SetUint(uint64(parsed))
		}
	case KindNumber:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("model: field %q: %w", field.Column, err)
		}
		fv.SetFloat(parsed)
	case KindTime:
		parsed, err := parseTime(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("model: field %q: %w", field.Column, err)
		}
		fv.Set(reflect.ValueOf(parsed))
	default:
		fv.SetString(raw)
	}
	return nil
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(raw string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", raw)
}

func callAccessor(method reflect.Value, name string) (any, error) {
	if method.Type().NumIn() != 0 || method.Type().NumOut() < 1 {
		return nil, fmt.Errorf("model: accessor for %q must take no arguments and return a value", name)
	}
	out := method.Call(nil)
	return out[0].Interface(), nil
}
