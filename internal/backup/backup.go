// Package backup copies descriptors and snapshots keyed collections of them.
//
// Copies are structural: every descriptor type provides Clone, so copying
// never goes through a serialized form and cannot fail on encoding. Backup
// maps, on the other hand, hold the canonical JSON form of each entry so a
// snapshot can be written out and restored later.
package backup

import (
	"reflect"

	"aasregistry/internal/codec"
	"aasregistry/internal/repository"
)

// Cloneable is implemented by values that can produce an independent copy
// of themselves.
type Cloneable[T any] interface {
	Clone() T
}

// DeepCopy returns an independent copy of v
func DeepCopy[T Cloneable[T]](v T) T {
	return v.Clone()
}

// Copy stores an independent copy of v in the value target points to.
// v may be a Cloneable value or a pointer to one. A nil v zeroes the target.
// It fails with an invalid-argument error when target is not a non-nil
// pointer, when v is not assignable to the target's element type, or when
// v's type has no Clone method.
func Copy(v any, target any) error {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.IsNil() {
		return repository.NewInvalidArgumentError("copy target must be a non-nil pointer, got %T", target)
	}
	dst := tv.Elem()

	if v == nil {
		dst.SetZero()
		return nil
	}

	src := reflect.ValueOf(v)
	if !src.Type().AssignableTo(dst.Type()) {
		return repository.NewInvalidArgumentError("cannot copy %s into %s", src.Type(), dst.Type())
	}

	if src.Kind() == reflect.Pointer {
		if src.IsNil() {
			dst.SetZero()
			return nil
		}
		cloned, err := cloneValue(src.Elem())
		if err != nil {
			return err
		}
		p := reflect.New(cloned.Type())
		p.Elem().Set(cloned)
		dst.Set(p)
		return nil
	}

	cloned, err := cloneValue(src)
	if err != nil {
		return err
	}
	dst.Set(cloned)
	return nil
}

// cloneValue calls v's Clone method when it returns v's own type
func cloneValue(v reflect.Value) (reflect.Value, error) {
	m := v.MethodByName("Clone")
	if !m.IsValid() {
		return reflect.Value{}, repository.NewInvalidArgumentError("%s has no Clone method", v.Type())
	}
	mt := m.Type()
	if mt.NumIn() != 0 || mt.NumOut() != 1 || mt.Out(0) != v.Type() {
		return reflect.Value{}, repository.NewInvalidArgumentError("%s.Clone does not return %s", v.Type(), v.Type())
	}
	return m.Call(nil)[0], nil
}

// CreateBackupMap encodes every entry of m in canonical JSON. A nil or empty
// map yields an empty backup.
func CreateBackupMap[T any](m map[string]T) (map[string][]byte, error) {
	c := codec.NewJSONCodec()
	out := make(map[string][]byte, len(m))
	for key, v := range m {
		data, err := c.Marshal(v)
		if err != nil {
			return nil, &repository.SerializationError{Op: "encode", Key: key, Cause: err}
		}
		out[key] = data
	}
	return out, nil
}

// RestoreBackupMap decodes every entry of m into a fresh T. Decoding is
// strict: malformed data or fields T does not have fail the whole restore.
func RestoreBackupMap[T any](m map[string][]byte) (map[string]T, error) {
	c := codec.NewJSONCodec()
	out := make(map[string]T, len(m))
	for key, data := range m {
		var v T
		if err := c.Unmarshal(data, &v); err != nil {
			return nil, &repository.SerializationError{Op: "decode", Key: key, Cause: err}
		}
		out[key] = v
	}
	return out, nil
}
