package launchd

import (
	"fmt"
)

// StringOrInteger holds either an unsigned integer or a string. It encodes as
// a bare <integer> or <string>, never as a wrapper dictionary.
//
// Decoding tries the integer form first. A numeral written as a plist
// <string> keeps its string form because the plist type tag decides.
type StringOrInteger struct {
	str   string
	num   uint64
	isStr bool
}

// IntegerValue returns the integer variant.
func IntegerValue(n uint64) StringOrInteger {
	return StringOrInteger{num: n}
}

// StringValue returns the string variant.
func StringValue(s string) StringOrInteger {
	return StringOrInteger{str: s, isStr: true}
}

// AsInteger returns the integer and true when the integer variant is active.
func (v StringOrInteger) AsInteger() (uint64, bool) {
	return v.num, !v.isStr
}

// AsString returns the string and true when the string variant is active.
func (v StringOrInteger) AsString() (string, bool) {
	return v.str, v.isStr
}

func (v StringOrInteger) MarshalPlist() (interface{}, error) {
	if v.isStr {
		return v.str, nil
	}
	return v.num, nil
}

func (v *StringOrInteger) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	switch x := raw.(type) {
	case uint64:
		*v = IntegerValue(x)
	case int64:
		if x < 0 {
			return fmt.Errorf("negative value %d for string-or-integer", x)
		}
		*v = IntegerValue(uint64(x))
	case string:
		*v = StringValue(x)
	default:
		return fmt.Errorf("unexpected %T for string-or-integer", raw)
	}
	return nil
}

// OneOrMany holds either a single T or a list of T. The list variant stays a
// list even when it has one element.
type OneOrMany[T any] struct {
	one    T
	many   []T
	isMany bool
}

// StringOrArray is the one-or-many form used for name lists.
type StringOrArray = OneOrMany[string]

// One returns the single-value variant.
func One[T any](v T) OneOrMany[T] {
	return OneOrMany[T]{one: v}
}

// Many returns the list variant.
func Many[T any](vs ...T) OneOrMany[T] {
	many := make([]T, len(vs))
	copy(many, vs)
	return OneOrMany[T]{many: many, isMany: true}
}

// IsMany reports whether the list variant is active.
func (v OneOrMany[T]) IsMany() bool {
	return v.isMany
}

// Values returns the held values; the single variant yields one element.
func (v OneOrMany[T]) Values() []T {
	if v.isMany {
		out := make([]T, len(v.many))
		copy(out, v.many)
		return out
	}
	return []T{v.one}
}

func (v OneOrMany[T]) MarshalPlist() (interface{}, error) {
	if v.isMany {
		return v.many, nil
	}
	return v.one, nil
}

func (v *OneOrMany[T]) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var many []T
	if err := unmarshal(&many); err == nil {
		if many == nil {
			many = []T{}
		}
		*v = OneOrMany[T]{many: many, isMany: true}
		return nil
	}
	var one T
	if err := unmarshal(&one); err != nil {
		return err
	}
	*v = OneOrMany[T]{one: one}
	return nil
}

// BoolOr holds either a boolean shorthand or a structured object.
type BoolOr[T any] struct {
	flag  bool
	obj   T
	isObj bool
}

// AsBool returns the flag and true when the boolean variant is active.
func (v BoolOr[T]) AsBool() (bool, bool) {
	return v.flag, !v.isObj
}

// AsObject returns the object and true when the object variant is active.
func (v BoolOr[T]) AsObject() (T, bool) {
	return v.obj, v.isObj
}

func (v BoolOr[T]) MarshalPlist() (interface{}, error) {
	if v.isObj {
		return v.obj, nil
	}
	return v.flag, nil
}

func (v *BoolOr[T]) UnmarshalPlist(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if b, ok := raw.(bool); ok {
		*v = BoolOr[T]{flag: b}
		return nil
	}
	var obj T
	if err := unmarshal(&obj); err != nil {
		return err
	}
	*v = BoolOr[T]{obj: obj, isObj: true}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
