package record

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Decode stores the record into the struct dst points to.
//
// Each schema field is matched to an exported struct field by its `peg` tag,
// or by a case-insensitive name when no tag is present. Optional fields may
// be pointers, many fields must be slices, nested records decode into
// structs or pointers to structs, and a variant decodes into a struct with
// one pointer field per alternative.
func (r *Record) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrNotStructPointer, dst)
	}

	return decodeRecord(r, rv.Elem())
}

// Decode stores the variant into the struct dst points to, setting the
// field named after the variant
func (v *Variant) Decode(dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %T", ErrNotStructPointer, dst)
	}

	return assign(rv.Elem(), v)
}

func decodeRecord(r *Record, v reflect.Value) error {
	for _, name := range r.schema.Names() {
		index, ok := findField(v.Type(), name)
		if !ok {
			return fmt.Errorf("%w: '%s' in %s", ErrFieldNotFound, name, v.Type())
		}

		value, present := r.values[name]
		if !present {
			continue
		}

		err := assign(v.Field(index), value)
		if err != nil {
			return fmt.Errorf("field '%s': %w", name, err)
		}
	}

	return nil
}

func findField(t reflect.Type, name string) (int, bool) {
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		if tag, ok := f.Tag.Lookup("peg"); ok {
			if tag == name {
				return i, true
			}

			continue
		}

		if strings.EqualFold(f.Name, name) {
			return i, true
		}
	}

	return 0, false
}

func assign(dst reflect.Value, value any) error {
	if value == nil {
		return nil
	}

	if dst.Kind() == reflect.Interface {
		v := reflect.ValueOf(plain(value))
		if !v.Type().AssignableTo(dst.Type()) {
			return fmt.Errorf("%w: %s into %s", ErrCannotConvert, v.Type(), dst.Type())
		}

		dst.Set(v)

		return nil
	}

	if t := reflect.TypeOf(value); t.AssignableTo(dst.Type()) {
		dst.Set(reflect.ValueOf(value))
		return nil
	}

	if dst.Kind() == reflect.Pointer {
		elem := reflect.New(dst.Type().Elem())

		err := assign(elem.Elem(), value)
		if err != nil {
			return err
		}

		dst.Set(elem)

		return nil
	}

	switch v := value.(type) {
	case *Record:
		if dst.Kind() != reflect.Struct {
			return fmt.Errorf("%w: record into %s", ErrCannotConvert, dst.Type())
		}

		return decodeRecord(v, dst)
	case *Variant:
		if dst.Kind() != reflect.Struct {
			return fmt.Errorf("%w: variant into %s", ErrCannotConvert, dst.Type())
		}

		index, ok := findField(dst.Type(), v.Name)
		if !ok {
			return fmt.Errorf("%w: variant '%s' in %s", ErrFieldNotFound, v.Name, dst.Type())
		}

		return assign(dst.Field(index), v.Record)
	case []any:
		if dst.Kind() != reflect.Slice {
			return fmt.Errorf("%w: list into %s", ErrCannotConvert, dst.Type())
		}

		list := reflect.MakeSlice(dst.Type(), len(v), len(v))
		for i, item := range v {
			err := assign(list.Index(i), item)
			if err != nil {
				return err
			}
		}

		dst.Set(list)

		return nil
	}

	return assignScalar(dst, value)
}

func assignScalar(dst reflect.Value, value any) error {
	src := reflect.ValueOf(value)

	switch {
	case src.Type().AssignableTo(dst.Type()):
		dst.Set(src)
	case numeric(src.Kind()) && numeric(dst.Kind()):
		if !fits(src, dst) {
			return fmt.Errorf("%w: %v does not fit %s", ErrCannotConvert, value, dst.Type())
		}

		dst.Set(src.Convert(dst.Type()))
	case src.Kind() == reflect.Int32 && dst.Kind() == reflect.String:
		dst.SetString(string(rune(src.Int())))
	default:
		return fmt.Errorf("%w: %s into %s", ErrCannotConvert, src.Type(), dst.Type())
	}

	return nil
}

// fits reports whether src converts to dst's type without losing range,
// sign or fraction.
func fits(src, dst reflect.Value) bool {
	switch {
	case signed(src.Kind()):
		v := src.Int()

		switch {
		case signed(dst.Kind()):
			return !dst.OverflowInt(v)
		case unsigned(dst.Kind()):
			return v >= 0 && !dst.OverflowUint(uint64(v))
		}

		return true
	case unsigned(src.Kind()):
		v := src.Uint()

		switch {
		case signed(dst.Kind()):
			return v <= math.MaxInt64 && !dst.OverflowInt(int64(v))
		case unsigned(dst.Kind()):
			return !dst.OverflowUint(v)
		}

		return true
	default:
		if signed(dst.Kind()) || unsigned(dst.Kind()) {
			return false
		}

		return !dst.OverflowFloat(src.Float())
	}
}

func signed(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func unsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
