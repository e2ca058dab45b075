// Package value defines the HTLV value model: the tagged union of value
// variants, their stable wire type tags, and the Item pairing a tag with a
// value.
package value

import "fmt"

// Type identifies an HTLV value variant on the wire. The numeric assignment
// is part of the wire format and must never change; new variants take the
// next unused byte.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeU8
	TypeU16
	TypeU32
	TypeU64
	TypeI8
	TypeI16
	TypeI32
	TypeI64
	TypeF32
	TypeF64
	TypeBytes
	TypeString
	TypeArray
	TypeObject
)

// String implements fmt.Stringer for diagnostic output.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "Null"
	case TypeBool:
		return "Bool"
	case TypeU8:
		return "U8"
	case TypeU16:
		return "U16"
	case TypeU32:
		return "U32"
	case TypeU64:
		return "U64"
	case TypeI8:
		return "I8"
	case TypeI16:
		return "I16"
	case TypeI32:
		return "I32"
	case TypeI64:
		return "I64"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	case TypeBytes:
		return "Bytes"
	case TypeString:
		return "String"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// IsFixedWidth reports whether t has a constant, type-determined encoded
// size (true for every primitive, including Null, which is zero bytes but
// still fixed).
func (t Type) IsFixedWidth() bool {
	switch t {
	case TypeNull, TypeBool, TypeU8, TypeU16, TypeU32, TypeU64,
		TypeI8, TypeI16, TypeI32, TypeI64, TypeF32, TypeF64:
		return true
	default:
		return false
	}
}

// IsBatchEligible reports whether t is one of the fixed-width primitives
// the four-stage batch pipeline (see package batch) knows how to decode in
// bulk: U16..U64, I16..I64, F32, F64. Bool, U8 and I8 are one byte wide and
// gain nothing from batching, so they are excluded and always decode via
// the scalar per-item path.
func (t Type) IsBatchEligible() bool {
	switch t {
	case TypeU16, TypeU32, TypeU64, TypeI16, TypeI32, TypeI64, TypeF32, TypeF64:
		return true
	default:
		return false
	}
}

// IsComposite reports whether t is Array or Object.
func (t Type) IsComposite() bool {
	return t == TypeArray || t == TypeObject
}

// Size returns the wire size in bytes of one element of a fixed-width type.
// It panics if t is not fixed-width; callers must check IsFixedWidth first.
func (t Type) Size() int {
	switch t {
	case TypeNull:
		return 0
	case TypeBool, TypeU8, TypeI8:
		return 1
	case TypeU16, TypeI16:
		return 2
	case TypeU32, TypeI32, TypeF32:
		return 4
	case TypeU64, TypeI64, TypeF64:
		return 8
	default:
		panic(fmt.Sprintf("value: Size called on non-fixed-width type %s", t))
	}
}

// Value is the tagged union described in the codec specification. Exactly
// the fields relevant to Kind are meaningful; a struct (rather than an
// interface) is used deliberately so that decoding a primitive never
// allocates an interface box, matching the allocation-conscious style of
// the codec's batch decode path.
type Value struct {
	Kind Type

	boolVal bool
	u64Val  uint64 // backs U8/U16/U32/U64
	i64Val  int64  // backs I8/I16/I32/I64
	f32Val  float32
	f64Val  float64
	bytes   []byte  // backs Bytes and String
	items   []Item  // backs Array and Object
}

// Item is a tagged HTLV value: the pairing of an opaque, schema-assigned
// tag with its Value. The decoder never interprets the tag.
type Item struct {
	Tag   uint64
	Value Value
}

// Constructors. Each pins Kind and the one union field it uses.

func Null() Value                { return Value{Kind: TypeNull} }
func Bool(v bool) Value          { return Value{Kind: TypeBool, boolVal: v} }
func U8(v uint8) Value           { return Value{Kind: TypeU8, u64Val: uint64(v)} }
func U16(v uint16) Value         { return Value{Kind: TypeU16, u64Val: uint64(v)} }
func U32(v uint32) Value         { return Value{Kind: TypeU32, u64Val: uint64(v)} }
func U64(v uint64) Value         { return Value{Kind: TypeU64, u64Val: v} }
func I8(v int8) Value            { return Value{Kind: TypeI8, i64Val: int64(v)} }
func I16(v int16) Value          { return Value{Kind: TypeI16, i64Val: int64(v)} }
func I32(v int32) Value          { return Value{Kind: TypeI32, i64Val: int64(v)} }
func I64(v int64) Value          { return Value{Kind: TypeI64, i64Val: v} }
func F32(v float32) Value        { return Value{Kind: TypeF32, f32Val: v} }
func F64(v float64) Value        { return Value{Kind: TypeF64, f64Val: v} }
func Bytes(v []byte) Value       { return Value{Kind: TypeBytes, bytes: v} }
func String(v string) Value      { return Value{Kind: TypeString, bytes: []byte(v)} }
func Array(items []Item) Value   { return Value{Kind: TypeArray, items: items} }
func Object(items []Item) Value  { return Value{Kind: TypeObject, items: items} }

// NewItem pairs a tag with a value.
func NewItem(tag uint64, v Value) Item { return Item{Tag: tag, Value: v} }

// Accessors. Each panics if Kind does not match, mirroring the contract-
// misuse error the spec assigns to invoking the wrong decode path.

func (v Value) AsBool() bool { v.mustBe(TypeBool); return v.boolVal }
func (v Value) AsU8() uint8  { v.mustBe(TypeU8); return uint8(v.u64Val) }
func (v Value) AsU16() uint16 { v.mustBe(TypeU16); return uint16(v.u64Val) }
func (v Value) AsU32() uint32 { v.mustBe(TypeU32); return uint32(v.u64Val) }
func (v Value) AsU64() uint64 { v.mustBe(TypeU64); return v.u64Val }
func (v Value) AsI8() int8   { v.mustBe(TypeI8); return int8(v.i64Val) }
func (v Value) AsI16() int16 { v.mustBe(TypeI16); return int16(v.i64Val) }
func (v Value) AsI32() int32 { v.mustBe(TypeI32); return int32(v.i64Val) }
func (v Value) AsI64() int64 { v.mustBe(TypeI64); return v.i64Val }
func (v Value) AsF32() float32 { v.mustBe(TypeF32); return v.f32Val }
func (v Value) AsF64() float64 { v.mustBe(TypeF64); return v.f64Val }

// AsBytes returns the raw payload for Bytes or String values. The returned
// slice shares storage with the Value and must not be mutated by the caller
// unless the caller holds exclusive ownership (see spec.md §3 Lifecycles).
func (v Value) AsBytes() []byte {
	if v.Kind != TypeBytes && v.Kind != TypeString {
		panic(fmt.Sprintf("value: AsBytes called on %s", v.Kind))
	}

	return v.bytes
}

// AsString returns the UTF-8 payload of a String value.
func (v Value) AsString() string {
	v.mustBe(TypeString)
	return string(v.bytes)
}

// Items returns the children of an Array or Object value.
func (v Value) Items() []Item {
	if v.Kind != TypeArray && v.Kind != TypeObject {
		panic(fmt.Sprintf("value: Items called on %s", v.Kind))
	}

	return v.items
}

func (v Value) mustBe(want Type) {
	if v.Kind != want {
		panic(fmt.Sprintf("value: expected %s, got %s", want, v.Kind))
	}
}

// Equal reports deep equality between two values, used by round-trip tests.
func (v Value) Equal(o Value) bool {
	if v.Kind != o.Kind {
		return false
	}

	switch v.Kind {
	case TypeNull:
		return true
	case TypeBool:
		return v.boolVal == o.boolVal
	case TypeU8, TypeU16, TypeU32, TypeU64:
		return v.u64Val == o.u64Val
	case TypeI8, TypeI16, TypeI32, TypeI64:
		return v.i64Val == o.i64Val
	case TypeF32:
		return v.f32Val == o.f32Val
	case TypeF64:
		return v.f64Val == o.f64Val
	case TypeBytes, TypeString:
		return string(v.bytes) == string(o.bytes)
	case TypeArray, TypeObject:
		if len(v.items) != len(o.items) {
			return false
		}
		for i := range v.items {
			if v.items[i].Tag != o.items[i].Tag || !v.items[i].Value.Equal(o.items[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
