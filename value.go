package jbkv

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxValueSize is the largest byte length a String or Blob Value may hold.
// It mirrors the original C++ implementation's CheckLimits, which rejects
// any payload that would not survive a round trip through a uint32 length
// prefix on the wire.
const MaxValueSize = math.MaxUint32

// maxValueSize is what NewString/NewBlob actually check against. It starts
// equal to MaxValueSize and is only ever lowered by tests in this package,
// which would otherwise need a multi-gigabyte allocation to exercise the
// rejection path.
var maxValueSize uint64 = MaxValueSize

// Kind identifies the active alternative held by a Value.
type Kind uint8

const (
	KindBool Kind = iota
	KindChar
	KindUChar
	KindUInt16
	KindInt16
	KindUInt32
	KindInt32
	KindUInt64
	KindInt64
	KindFloat32
	KindFloat64
	KindString
	KindBlob
)

// String is the Kind's name, e.g. "Bool" or "Blob".
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindChar:
		return "Char"
	case KindUChar:
		return "UChar"
	case KindUInt16:
		return "UInt16"
	case KindInt16:
		return "Int16"
	case KindUInt32:
		return "UInt32"
	case KindInt32:
		return "Int32"
	case KindUInt64:
		return "UInt64"
	case KindInt64:
		return "Int64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindString:
		return "String"
	case KindBlob:
		return "Blob"
	default:
		return "Unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is an immutable tagged union over a fixed set of scalar, string, and
// blob primitives. A Value is cheap to copy: scalars are stored inline, and
// String/Blob payloads are held by reference so copying never duplicates
// the underlying bytes.
//
// KindBool is the zero Kind, so the zero Value holds Bool false. Read
// returns it alongside false for a missing key; the bool result, not the
// Value, says whether the key was present.
type Value struct {
	kind   Kind
	scalar uint64 // bit pattern for every scalar alternative
	str    *string
	blob   *[]byte
}

// NewBool constructs a Bool Value.
func NewBool(v bool) Value {
	var s uint64
	if v {
		s = 1
	}
	return Value{kind: KindBool, scalar: s}
}

// NewChar constructs a Char (int8) Value.
func NewChar(v int8) Value { return Value{kind: KindChar, scalar: uint64(uint8(v))} }

// NewUChar constructs a UChar (uint8) Value.
func NewUChar(v uint8) Value { return Value{kind: KindUChar, scalar: uint64(v)} }

// NewUInt16 constructs a UInt16 Value.
func NewUInt16(v uint16) Value { return Value{kind: KindUInt16, scalar: uint64(v)} }

// NewInt16 constructs an Int16 Value.
func NewInt16(v int16) Value { return Value{kind: KindInt16, scalar: uint64(uint16(v))} }

// NewUInt32 constructs a UInt32 Value.
func NewUInt32(v uint32) Value { return Value{kind: KindUInt32, scalar: uint64(v)} }

// NewInt32 constructs an Int32 Value.
func NewInt32(v int32) Value { return Value{kind: KindInt32, scalar: uint64(uint32(v))} }

// NewUInt64 constructs a UInt64 Value.
func NewUInt64(v uint64) Value { return Value{kind: KindUInt64, scalar: v} }

// NewInt64 constructs an Int64 Value.
func NewInt64(v int64) Value { return Value{kind: KindInt64, scalar: uint64(v)} }

// NewFloat32 constructs a Float32 Value.
func NewFloat32(v float32) Value {
	return Value{kind: KindFloat32, scalar: uint64(math.Float32bits(v))}
}

// NewFloat64 constructs a Float64 Value.
func NewFloat64(v float64) Value {
	return Value{kind: KindFloat64, scalar: math.Float64bits(v)}
}

// NewString constructs a String Value from UTF-8 bytes. It returns
// ErrValueTooLarge if the payload exceeds MaxValueSize, and
// ErrInvalidArgument if the bytes are not well-formed UTF-8.
func NewString(v string) (Value, error) {
	if uint64(len(v)) > maxValueSize {
		return Value{}, fmt.Errorf("%w: string length %d", ErrValueTooLarge, len(v))
	}
	if !utf8.ValidString(v) {
		return Value{}, fmt.Errorf("%w: not valid UTF-8", ErrInvalidArgument)
	}
	return Value{kind: KindString, str: &v}, nil
}

// NewNormalizedString is NewString applied to the Unicode NFC normalization
// of v, so that String Values which differ only in how their characters are
// composed compare equal by content. Keys are plain strings and are not
// normalized by it.
func NewNormalizedString(v string) (Value, error) {
	return NewString(norm.NFC.String(v))
}

// MustString is NewString, panicking on error. Intended for literals known
// to be valid at compile time, mirroring the original C++ implementation's
// `const char*` constructor.
func MustString(v string) Value {
	val, err := NewString(v)
	if err != nil {
		panic(err)
	}
	return val
}

// NewBlob constructs a Blob Value from an opaque byte sequence. The bytes
// are copied so the returned Value is independent of the caller's slice.
// It returns ErrValueTooLarge if the payload exceeds MaxValueSize.
func NewBlob(v []byte) (Value, error) {
	if uint64(len(v)) > maxValueSize {
		return Value{}, fmt.Errorf("%w: blob length %d", ErrValueTooLarge, len(v))
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return Value{kind: KindBlob, blob: &cp}, nil
}

// Kind reports the active alternative.
func (v Value) Kind() Kind { return v.kind }

// TryBool returns the Bool payload and true if v holds a Bool.
func (v Value) TryBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.scalar != 0, true
}

// TryChar returns the Char payload and true if v holds a Char.
func (v Value) TryChar() (int8, bool) {
	if v.kind != KindChar {
		return 0, false
	}
	return int8(uint8(v.scalar)), true
}

// TryUChar returns the UChar payload and true if v holds a UChar.
func (v Value) TryUChar() (uint8, bool) {
	if v.kind != KindUChar {
		return 0, false
	}
	return uint8(v.scalar), true
}

// TryUInt16 returns the UInt16 payload and true if v holds a UInt16.
func (v Value) TryUInt16() (uint16, bool) {
	if v.kind != KindUInt16 {
		return 0, false
	}
	return uint16(v.scalar), true
}

// TryInt16 returns the Int16 payload and true if v holds an Int16.
func (v Value) TryInt16() (int16, bool) {
	if v.kind != KindInt16 {
		return 0, false
	}
	return int16(uint16(v.scalar)), true
}

// TryUInt32 returns the UInt32 payload and true if v holds a UInt32.
func (v Value) TryUInt32() (uint32, bool) {
	if v.kind != KindUInt32 {
		return 0, false
	}
	return uint32(v.scalar), true
}

// TryInt32 returns the Int32 payload and true if v holds an Int32.
func (v Value) TryInt32() (int32, bool) {
	if v.kind != KindInt32 {
		return 0, false
	}
	return int32(uint32(v.scalar)), true
}

// TryUInt64 returns the UInt64 payload and true if v holds a UInt64.
func (v Value) TryUInt64() (uint64, bool) {
	if v.kind != KindUInt64 {
		return 0, false
	}
	return v.scalar, true
}

// TryInt64 returns the Int64 payload and true if v holds an Int64.
func (v Value) TryInt64() (int64, bool) {
	if v.kind != KindInt64 {
		return 0, false
	}
	return int64(v.scalar), true
}

// TryFloat32 returns the Float32 payload and true if v holds a Float32.
func (v Value) TryFloat32() (float32, bool) {
	if v.kind != KindFloat32 {
		return 0, false
	}
	return math.Float32frombits(uint32(v.scalar)), true
}

// TryFloat64 returns the Float64 payload and true if v holds a Float64.
func (v Value) TryFloat64() (float64, bool) {
	if v.kind != KindFloat64 {
		return 0, false
	}
	return math.Float64frombits(v.scalar), true
}

// TryString returns the String payload and true if v holds a String.
func (v Value) TryString() (string, bool) {
	if v.kind != KindString || v.str == nil {
		return "", false
	}
	return *v.str, true
}

// TryBlob returns a copy of the Blob payload and true if v holds a Blob.
// A copy is returned so callers cannot mutate the Value's backing bytes.
func (v Value) TryBlob() ([]byte, bool) {
	if v.kind != KindBlob || v.blob == nil {
		return nil, false
	}
	cp := make([]byte, len(*v.blob))
	copy(cp, *v.blob)
	return cp, true
}

// Visit dispatches on the active alternative, calling exactly one of the
// visitor's methods. It must not re-enter the NodeData that produced v.
func (v Value) Visit(visitor ValueVisitor) {
	switch v.kind {
	case KindBool:
		b, _ := v.TryBool()
		visitor.Bool(b)
	case KindChar:
		c, _ := v.TryChar()
		visitor.Char(c)
	case KindUChar:
		c, _ := v.TryUChar()
		visitor.UChar(c)
	case KindUInt16:
		n, _ := v.TryUInt16()
		visitor.UInt16(n)
	case KindInt16:
		n, _ := v.TryInt16()
		visitor.Int16(n)
	case KindUInt32:
		n, _ := v.TryUInt32()
		visitor.UInt32(n)
	case KindInt32:
		n, _ := v.TryInt32()
		visitor.Int32(n)
	case KindUInt64:
		n, _ := v.TryUInt64()
		visitor.UInt64(n)
	case KindInt64:
		n, _ := v.TryInt64()
		visitor.Int64(n)
	case KindFloat32:
		f, _ := v.TryFloat32()
		visitor.Float32(f)
	case KindFloat64:
		f, _ := v.TryFloat64()
		visitor.Float64(f)
	case KindString:
		s, _ := v.TryString()
		visitor.String(s)
	case KindBlob:
		b, _ := v.TryBlob()
		visitor.Blob(b)
	}
}

// ValueVisitor receives exactly one callback from Value.Visit.
type ValueVisitor interface {
	Bool(bool)
	Char(int8)
	UChar(uint8)
	UInt16(uint16)
	Int16(int16)
	UInt32(uint32)
	Int32(int32)
	UInt64(uint64)
	Int64(int64)
	Float32(float32)
	Float64(float64)
	String(string)
	Blob([]byte)
}

// Equal reports whether v and other hold the same alternative with equal
// content. String/Blob equality compares referent bytes, not identity.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindString:
		a, _ := v.TryString()
		b, _ := other.TryString()
		return a == b
	case KindBlob:
		a, _ := v.TryBlob()
		b, _ := other.TryBlob()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	default:
		return v.scalar == other.scalar
	}
}

// String renders v for logs and diagnostics: scalars and strings print
// plainly, blobs print as lowercase hex. This is a diagnostic aid, not part
// of the wire format.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		b, _ := v.TryBool()
		return strconv.FormatBool(b)
	case KindChar:
		c, _ := v.TryChar()
		return strconv.Itoa(int(c))
	case KindUChar:
		c, _ := v.TryUChar()
		return strconv.Itoa(int(c))
	case KindUInt16:
		n, _ := v.TryUInt16()
		return strconv.FormatUint(uint64(n), 10)
	case KindInt16:
		n, _ := v.TryInt16()
		return strconv.Itoa(int(n))
	case KindUInt32:
		n, _ := v.TryUInt32()
		return strconv.FormatUint(uint64(n), 10)
	case KindInt32:
		n, _ := v.TryInt32()
		return strconv.Itoa(int(n))
	case KindUInt64:
		n, _ := v.TryUInt64()
		return strconv.FormatUint(n, 10)
	case KindInt64:
		n, _ := v.TryInt64()
		return strconv.FormatInt(n, 10)
	case KindFloat32:
		f, _ := v.TryFloat32()
		return strconv.FormatFloat(float64(f), 'g', -1, 32)
	case KindFloat64:
		f, _ := v.TryFloat64()
		return strconv.FormatFloat(f, 'g', -1, 64)
	case KindString:
		s, _ := v.TryString()
		return s
	case KindBlob:
		b, _ := v.TryBlob()
		return hex.EncodeToString(b)
	default:
		return "<unset>"
	}
}

// ReadAs reads key from d and returns its payload as T if the stored Value
// both exists and holds the alternative matching T's Try* accessor. It is
// the generic equivalent of the original implementation's monadic
// NodeData::Read<T>.
func ReadAs[T any](d NodeData, key string) (T, bool) {
	var zero T
	value, ok := d.Read(key)
	if !ok {
		return zero, false
	}

	switch any(zero).(type) {
	case bool:
		b, ok := value.TryBool()
		return any(b).(T), ok
	case int8:
		b, ok := value.TryChar()
		return any(b).(T), ok
	case uint8:
		b, ok := value.TryUChar()
		return any(b).(T), ok
	case uint16:
		b, ok := value.TryUInt16()
		return any(b).(T), ok
	case int16:
		b, ok := value.TryInt16()
		return any(b).(T), ok
	case uint32:
		b, ok := value.TryUInt32()
		return any(b).(T), ok
	case int32:
		b, ok := value.TryInt32()
		return any(b).(T), ok
	case uint64:
		b, ok := value.TryUInt64()
		return any(b).(T), ok
	case int64:
		b, ok := value.TryInt64()
		return any(b).(T), ok
	case float32:
		b, ok := value.TryFloat32()
		return any(b).(T), ok
	case float64:
		b, ok := value.TryFloat64()
		return any(b).(T), ok
	case string:
		b, ok := value.TryString()
		return any(b).(T), ok
	case []byte:
		b, ok := value.TryBlob()
		return any(b).(T), ok
	default:
		return zero, false
	}
}
