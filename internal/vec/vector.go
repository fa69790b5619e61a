// Package vec provides fixed-dimension real vectors for physics calculations.
//
// A [Vector] carries exactly the number of components it was constructed
// with; arithmetic between vectors of different dimensions is a programming
// error and panics. Only literal construction through [New] adjusts its
// input to the requested dimension.
package vec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrIndexOutOfRange indicates a checked component access past the dimension.
	ErrIndexOutOfRange = errors.New("vec: component index out of range")

	// ErrUnsupportedDimension indicates an operation only defined for
	// particular dimensions (the vector product exists for 3 and 7).
	ErrUnsupportedDimension = errors.New("vec: unsupported dimension")
)

// machineEpsilon is the zero threshold used when normalizing.
var machineEpsilon = math.Nextafter(1, 2) - 1

// Vector is an ordered sequence of float64 components. Index 0 is X,
// 1 is Y, 2 is Z. Raw indexing v[i] is unchecked and panics out of range;
// At is the checked accessor.
type Vector []float64

// New builds a Vector of exactly dim components from the given literal
// values, truncating extras or padding with zeros so the length always
// matches dim.
func New(dim int, comps ...float64) Vector {
	v := make(Vector, dim)
	copy(v, comps)
	return v
}

// Zero returns the zero vector of the given dimension.
func Zero(dim int) Vector {
	return make(Vector, dim)
}

// New3 builds a 3-dimensional vector.
func New3(x, y, z float64) Vector {
	return Vector{x, y, z}
}

// Dim returns the dimension of the vector.
func (v Vector) Dim() int { return len(v) }

// At returns component i, or ErrIndexOutOfRange if i is not in [0, dim).
func (v Vector) At(i int) (float64, error) {
	if i < 0 || i >= len(v) {
		return 0, fmt.Errorf("%w: %d (dim %d)", ErrIndexOutOfRange, i, len(v))
	}
	return v[i], nil
}

// SetAt sets component i, or returns ErrIndexOutOfRange.
func (v Vector) SetAt(i int, val float64) error {
	if i < 0 || i >= len(v) {
		return fmt.Errorf("%w: %d (dim %d)", ErrIndexOutOfRange, i, len(v))
	}
	v[i] = val
	return nil
}

// X returns component 0. Unchecked, like raw indexing.
func (v Vector) X() float64 { return v[0] }

// Y returns component 1. Unchecked, like raw indexing.
func (v Vector) Y() float64 { return v[1] }

// Z returns component 2. Unchecked, like raw indexing.
func (v Vector) Z() float64 { return v[2] }

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) mustMatch(o Vector) {
	if len(v) != len(o) {
		panic(fmt.Sprintf("vec: dimension mismatch: %d vs %d", len(v), len(o)))
	}
}

// Equal reports exact component-wise equality. Vectors of different
// dimensions are never equal.
func (v Vector) Equal(o Vector) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// Add returns v + o as a new vector.
func (v Vector) Add(o Vector) Vector {
	v.mustMatch(o)
	out := v.Clone()
	for i := range out {
		out[i] += o[i]
	}
	return out
}

// Sub returns v - o as a new vector.
func (v Vector) Sub(o Vector) Vector {
	v.mustMatch(o)
	out := v.Clone()
	for i := range out {
		out[i] -= o[i]
	}
	return out
}

// AddIn adds o to v in place.
func (v Vector) AddIn(o Vector) {
	v.mustMatch(o)
	for i := range v {
		v[i] += o[i]
	}
}

// SubIn subtracts o from v in place.
func (v Vector) SubIn(o Vector) {
	v.mustMatch(o)
	for i := range v {
		v[i] -= o[i]
	}
}

// Neg returns -v as a new vector. An exact zero component stays zero
// rather than becoming negative zero; tiny nonzero values just flip sign.
func (v Vector) Neg() Vector {
	out := v.Clone()
	for i, d := range out {
		if d != 0 {
			out[i] = -d
		}
	}
	return out
}

// Scale multiplies every component by f in place.
func (v Vector) Scale(f float64) {
	for i := range v {
		v[i] *= f
	}
}

// ScaledBy returns v scaled by f as a new vector.
func (v Vector) ScaledBy(f float64) Vector {
	out := v.Clone()
	out.Scale(f)
	return out
}

// LengthSquared returns the squared Euclidean length. Kept separate from
// Length to avoid a square root where only comparisons are needed.
func (v Vector) LengthSquared() float64 {
	sum := 0.0
	for _, d := range v {
		sum += d * d
	}
	return sum
}

// Length returns the Euclidean length of the vector.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Magnitude is an alias for Length.
func (v Vector) Magnitude() float64 {
	return v.Length()
}

// Dot returns the inner product of v and o.
func (v Vector) Dot(o Vector) float64 {
	v.mustMatch(o)
	sum := 0.0
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Unit returns v scaled to magnitude 1, or the zero vector of the same
// dimension when the magnitude is at or below machine epsilon.
func (v Vector) Unit() Vector {
	mag := v.Magnitude()
	if mag <= machineEpsilon {
		return Zero(len(v))
	}
	return v.ScaledBy(1 / mag)
}

// Cross returns the vector product of v and o. It is defined for
// dimension 3 (the usual determinant expansion) and dimension 7 (the
// Fano-plane construction); any other dimension returns
// ErrUnsupportedDimension.
func (v Vector) Cross(o Vector) (Vector, error) {
	v.mustMatch(o)
	switch len(v) {
	case 3:
		return Vector{
			v[1]*o[2] - v[2]*o[1],
			v[2]*o[0] - v[0]*o[2],
			v[0]*o[1] - v[1]*o[0],
		}, nil
	case 7:
		return cross7(v, o), nil
	default:
		return nil, fmt.Errorf("%w: vector product defined for dimensions 3 and 7, got %d", ErrUnsupportedDimension, len(v))
	}
}

// cross7 computes the 7-dimensional vector product. Each output component
// is a sum of three antisymmetric terms from the Fano plane multiplication
// table.
func cross7(a, b Vector) Vector {
	return Vector{
		(a[1]*b[3] - a[3]*b[1]) + (a[2]*b[6] - a[6]*b[2]) + (a[4]*b[5] - a[5]*b[4]),
		(a[2]*b[4] - a[4]*b[2]) + (a[3]*b[0] - a[0]*b[3]) + (a[5]*b[6] - a[6]*b[5]),
		(a[3]*b[5] - a[5]*b[3]) + (a[4]*b[1] - a[1]*b[4]) + (a[6]*b[0] - a[0]*b[6]),
		(a[4]*b[6] - a[6]*b[4]) + (a[5]*b[2] - a[2]*b[5]) + (a[0]*b[1] - a[1]*b[0]),
		(a[5]*b[0] - a[0]*b[5]) + (a[6]*b[3] - a[3]*b[6]) + (a[1]*b[2] - a[2]*b[1]),
		(a[6]*b[1] - a[1]*b[6]) + (a[0]*b[4] - a[4]*b[0]) + (a[2]*b[3] - a[3]*b[2]),
		(a[0]*b[2] - a[2]*b[0]) + (a[1]*b[5] - a[5]*b[1]) + (a[3]*b[4] - a[4]*b[3]),
	}
}

// Dot is the free-function form of the inner product.
func Dot(a, b Vector) float64 {
	return a.Dot(b)
}

// Cross is the free-function form of the vector product.
func Cross(a, b Vector) (Vector, error) {
	return a.Cross(b)
}

// IsFinite reports whether every component is a finite number.
func (v Vector) IsFinite() bool {
	for _, d := range v {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return false
		}
	}
	return true
}

// String formats the vector as "(x,y,z)".
func (v Vector) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, d := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(d, 'g', -1, 64))
	}
	b.WriteByte(')')
	return b.String()
}
