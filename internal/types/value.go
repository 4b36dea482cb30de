package types

import (
	"cmp"
	"encoding/binary"
	"math"
	"strconv"
)

// Value is one scalar of a tuple. The set of implementations is closed;
// each one maps to exactly one Domain.
//
// Values of the same domain compare with ==, so deep tuple equality is
// element-wise ==.
type Value interface {
	Domain() Domain
	String() string
	value()
}

type (
	Long    int64
	Integer int32
	Short   int16
	Byte    int8
	Double  float64
	Float   float32
	Char    rune
	String  string
)

func (Long) Domain() Domain    { return DomainLong }
func (Integer) Domain() Domain { return DomainInteger }
func (Short) Domain() Domain   { return DomainShort }
func (Byte) Domain() Domain    { return DomainByte }
func (Double) Domain() Domain  { return DomainDouble }
func (Float) Domain() Domain   { return DomainFloat }
func (Char) Domain() Domain    { return DomainCharacter }
func (String) Domain() Domain  { return DomainString }

func (v Long) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Integer) String() string { return strconv.FormatInt(int64(v), 10) }
func (v Short) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Byte) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v Double) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v Float) String() string   { return strconv.FormatFloat(float64(v), 'g', -1, 32) }
func (v Char) String() string    { return string(rune(v)) }
func (v String) String() string  { return string(v) }

func (Long) value()    {}
func (Integer) value() {}
func (Short) value()   {}
func (Byte) value()    {}
func (Double) value()  {}
func (Float) value()   {}
func (Char) value()    {}
func (String) value()  {}

// Conforms reports whether v is a non-nil value of domain d.
func Conforms(v Value, d Domain) bool {
	return v != nil && v.Domain() == d
}

// Compare is a total order over values. Values of the same domain compare
// naturally; otherwise the domain order of VALID_DOMAINS decides. nil sorts
// first.
func Compare(a, b Value) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if a.Domain() != b.Domain() {
		return cmp.Compare(a.Domain().rank(), b.Domain().rank())
	}

	switch a := a.(type) {
	case Long:
		return cmp.Compare(a, b.(Long))
	case Integer:
		return cmp.Compare(a, b.(Integer))
	case Short:
		return cmp.Compare(a, b.(Short))
	case Byte:
		return cmp.Compare(a, b.(Byte))
	case Double:
		return cmp.Compare(a, b.(Double))
	case Float:
		return cmp.Compare(a, b.(Float))
	case Char:
		return cmp.Compare(a, b.(Char))
	case String:
		return cmp.Compare(a, b.(String))
	}
	return 0
}

// AppendBinary appends an unambiguous encoding of v to buf: a domain tag
// followed by a fixed width payload, or a length prefixed payload for
// strings. Equal values always encode to equal bytes.
func AppendBinary(buf []byte, v Value) []byte {
	if v == nil {
		return append(buf, 0xff)
	}
	buf = append(buf, byte(v.Domain().rank()))
	switch v := v.(type) {
	case Long:
		return binary.BigEndian.AppendUint64(buf, uint64(v))
	case Integer:
		return binary.BigEndian.AppendUint32(buf, uint32(v))
	case Short:
		return binary.BigEndian.AppendUint16(buf, uint16(v))
	case Byte:
		return append(buf, byte(v))
	case Double:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(canonicalFloat(float64(v))))
	case Float:
		return binary.BigEndian.AppendUint32(buf, math.Float32bits(float32(canonicalFloat(float64(v)))))
	case Char:
		return binary.BigEndian.AppendUint32(buf, uint32(v))
	case String:
		buf = binary.AppendUvarint(buf, uint64(len(v)))
		return append(buf, string(v)...)
	}
	return buf
}

// Tuple is one row: values positionally aligned with a schema's attributes.
type Tuple = []Value

// Equal is the value equality used by every index and operator. It agrees
// with Compare: NaN equals NaN and -0 equals 0.
func Equal(a, b Value) bool { return Compare(a, b) == 0 }

// canonicalFloat folds every NaN payload into one NaN and -0 into 0, so
// values that are Equal encode to the same bytes.
func canonicalFloat(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return math.NaN()
	case f == 0:
		return 0
	}
	return f
}

// TupleEqual reports element-wise Equal.
func TupleEqual(a, b Tuple) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}
