package decoders

import (
	"time"

	"github.com/custodia-labs/tgcore/internal/core/domain"
)

// fields reads typed values out of a raw variant. The first structural
// problem is recorded and every later read returns a zero value, so a
// decoder can read all of its fields and check err once.
//
// Required reads fail when the field is absent. Opt reads return the
// stated default when the field is absent but still fail on a wrong type.
type fields struct {
	family domain.Family
	v      domain.RawVariant
	err    error
}

func read(family domain.Family, v domain.RawVariant) *fields {
	return &fields{family: family, v: v}
}

func (f *fields) fail(name, reason string) {
	if f.err != nil {
		return
	}
	f.err = &domain.MalformedVariantError{
		Family: f.family,
		Tag:    f.v.Tag,
		Field:  name,
		Reason: reason,
	}
}

func (f *fields) lookup(name string, required bool) (any, bool) {
	if f.err != nil {
		return nil, false
	}
	val, ok := f.v.Fields[name]
	if !ok || val == nil {
		if required {
			f.fail(name, "is missing")
		}
		return nil, false
	}
	return val, true
}

func toInt64(val any) (int64, bool) {
	switch n := val.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if n == float64(int64(n)) {
			return int64(n), true
		}
	}
	return 0, false
}

func (f *fields) readInt(name string, required bool) int64 {
	val, ok := f.lookup(name, required)
	if !ok {
		return 0
	}
	n, ok := toInt64(val)
	if !ok {
		f.fail(name, "is not an integer")
	}
	return n
}

// Int reads a required integer.
func (f *fields) Int(name string) int64 { return f.readInt(name, true) }

// OptInt reads an optional integer, defaulting to 0.
func (f *fields) OptInt(name string) int64 { return f.readInt(name, false) }

// ID reads a required identifier. Zero is rejected as it never names an entity.
func (f *fields) ID(name string) int64 {
	id := f.Int(name)
	if f.err == nil && id == 0 {
		f.fail(name, "is zero")
	}
	return id
}

func (f *fields) readFloat(name string, required bool) float64 {
	val, ok := f.lookup(name, required)
	if !ok {
		return 0
	}
	switch n := val.(type) {
	case float64:
		return n
	default:
		i, ok := toInt64(val)
		if !ok {
			f.fail(name, "is not a number")
		}
		return float64(i)
	}
}

// Float reads a required number.
func (f *fields) Float(name string) float64 { return f.readFloat(name, true) }

// OptFloat reads an optional number, defaulting to 0.
func (f *fields) OptFloat(name string) float64 { return f.readFloat(name, false) }

func (f *fields) readString(name string, required bool) string {
	val, ok := f.lookup(name, required)
	if !ok {
		return ""
	}
	s, ok := val.(string)
	if !ok {
		f.fail(name, "is not a string")
	}
	return s
}

// String reads a required string.
func (f *fields) String(name string) string { return f.readString(name, true) }

// OptString reads an optional string, defaulting to "".
func (f *fields) OptString(name string) string { return f.readString(name, false) }

// Flag reads a boolean flag. An absent flag is false.
func (f *fields) Flag(name string) bool {
	val, ok := f.lookup(name, false)
	if !ok {
		return false
	}
	b, ok := val.(bool)
	if !ok {
		f.fail(name, "is not a boolean")
	}
	return b
}

// Has reports whether an optional field is present.
func (f *fields) Has(name string) bool {
	val, ok := f.v.Fields[name]
	return ok && val != nil
}

func epoch(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// Time reads a required epoch timestamp.
func (f *fields) Time(name string) time.Time { return epoch(f.Int(name)) }

// OptTime reads an optional epoch timestamp. Absent or zero is the zero time.
func (f *fields) OptTime(name string) time.Time { return epoch(f.OptInt(name)) }

// Seconds reads an optional duration in seconds.
func (f *fields) Seconds(name string) time.Duration {
	return time.Duration(f.OptInt(name)) * time.Second
}

func (f *fields) readVariant(name string, required bool) (domain.RawVariant, bool) {
	val, ok := f.lookup(name, required)
	if !ok {
		return domain.RawVariant{}, false
	}
	v, ok := val.(domain.RawVariant)
	if !ok {
		f.fail(name, "is not an object")
		return domain.RawVariant{}, false
	}
	return v, true
}

// Variant reads a required nested object.
func (f *fields) Variant(name string) domain.RawVariant {
	v, _ := f.readVariant(name, true)
	return v
}

// OptVariant reads an optional nested object.
func (f *fields) OptVariant(name string) (domain.RawVariant, bool) {
	return f.readVariant(name, false)
}

func (f *fields) list(name string) []any {
	val, ok := f.lookup(name, false)
	if !ok {
		return nil
	}
	items, ok := val.([]any)
	if !ok {
		f.fail(name, "is not a list")
	}
	return items
}

// Variants reads an optional list of nested objects. Absent is nil.
func (f *fields) Variants(name string) []domain.RawVariant {
	items := f.list(name)
	if items == nil {
		return nil
	}
	out := make([]domain.RawVariant, 0, len(items))
	for _, item := range items {
		v, ok := item.(domain.RawVariant)
		if !ok {
			f.fail(name, "contains a non-object element")
			return nil
		}
		out = append(out, v)
	}
	return out
}

// Ints reads an optional list of integers. Absent is nil.
func (f *fields) Ints(name string) []int64 {
	items := f.list(name)
	if items == nil {
		return nil
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		n, ok := toInt64(item)
		if !ok {
			f.fail(name, "contains a non-integer element")
			return nil
		}
		out = append(out, n)
	}
	return out
}

// Err returns the first structural problem found.
func (f *fields) Err() error {
	return f.err
}
