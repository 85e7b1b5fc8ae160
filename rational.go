package tonnetz

import (
	"errors"
	"math/big"
)

// Rational is an exact fraction of arbitrary-precision integers. It is always
// kept in lowest terms with a positive denominator. The zero value is 0/1.
//
// Rationals are immutable: every operation returns a new value and the
// underlying big.Ints are never modified after construction.
type Rational struct {
	num, den *big.Int
}

var ErrZeroDenominator = errors.New("tonnetz: zero denominator")

var (
	bigOne = big.NewInt(1)
	bigTwo = big.NewInt(2)

	// Octave is the ratio 2/1, the period of octave reduction.
	Octave = NewRational(2, 1)
	// Unison is the ratio 1/1.
	Unison = NewRational(1, 1)
)

// NewRational returns num/den in lowest terms. It panics if den is zero, in
// the manner of big.NewRat; use Reduce for values that are not known to be
// valid.
func NewRational(num, den int64) Rational {
	r, err := Reduce(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(err)
	}
	return r
}

// Reduce returns n/d in lowest terms with a positive denominator. The
// arguments are not modified.
func Reduce(n, d *big.Int) (Rational, error) {
	if d.Sign() == 0 {
		return Rational{}, ErrZeroDenominator
	}
	num := new(big.Int).Set(n)
	den := new(big.Int).Set(d)
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(num), den)
	if g.Sign() != 0 && g.Cmp(bigOne) != 0 {
		num.Quo(num, g)
		den.Quo(den, g)
	}
	if num.Sign() == 0 {
		den.SetInt64(1)
	}
	return Rational{num: num, den: den}, nil
}

func (r Rational) n() *big.Int {
	if r.num == nil {
		return new(big.Int)
	}
	return r.num
}

func (r Rational) d() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int { return new(big.Int).Set(r.n()) }

// Den returns a copy of the denominator, which is always positive.
func (r Rational) Den() *big.Int { return new(big.Int).Set(r.d()) }

func (r Rational) Sign() int { return r.n().Sign() }

// Mul returns r*o in lowest terms. Cross-cancelling before multiplying keeps
// the intermediate products as small as the result.
func (r Rational) Mul(o Rational) Rational {
	if r.Sign() == 0 || o.Sign() == 0 {
		return Rational{num: new(big.Int), den: big.NewInt(1)}
	}
	g1 := new(big.Int).GCD(nil, nil, new(big.Int).Abs(r.n()), o.d())
	g2 := new(big.Int).GCD(nil, nil, new(big.Int).Abs(o.n()), r.d())
	num := new(big.Int).Mul(new(big.Int).Quo(r.n(), g1), new(big.Int).Quo(o.n(), g2))
	den := new(big.Int).Mul(new(big.Int).Quo(r.d(), g2), new(big.Int).Quo(o.d(), g1))
	return Rational{num: num, den: den}
}

// Inv returns 1/r. It panics if r is zero.
func (r Rational) Inv() Rational {
	if r.Sign() == 0 {
		panic("tonnetz: division by zero")
	}
	num := new(big.Int).Set(r.d())
	den := new(big.Int).Set(r.n())
	if den.Sign() < 0 {
		num.Neg(num)
		den.Neg(den)
	}
	return Rational{num: num, den: den}
}

// Pow returns r raised to an integer exponent. Negative exponents invert the
// base first, so no fractional exponent is ever taken. Pow panics if r is zero
// and exponent is negative.
func (r Rational) Pow(exponent int) Rational {
	if exponent < 0 {
		return r.Inv().Pow(-exponent)
	}
	e := big.NewInt(int64(exponent))
	// gcd(n, d) = 1 implies gcd(n^e, d^e) = 1, so no reduction is needed
	return Rational{
		num: new(big.Int).Exp(r.n(), e, nil),
		den: new(big.Int).Exp(r.d(), e, nil),
	}
}

// Cmp compares r and o and returns -1, 0 or +1.
func (r Rational) Cmp(o Rational) int {
	a := new(big.Int).Mul(r.n(), o.d())
	b := new(big.Int).Mul(o.n(), r.d())
	return a.Cmp(b)
}

func (r Rational) Equal(o Rational) bool {
	return r.n().Cmp(o.n()) == 0 && r.d().Cmp(o.d()) == 0
}

// Float64 returns the nearest float64 value of r.
func (r Rational) Float64() float64 {
	f, _ := new(big.Rat).SetFrac(r.n(), r.d()).Float64()
	return f
}

func (r Rational) String() string {
	return r.n().String() + "/" + r.d().String()
}

// NormalizeToOctave scales a positive ratio by powers of two until it lies in
// [1, 2). It returns the reduced ratio and the signed number of halvings
// applied, so that r == normalized * 2^shift. The comparison against the
// octave bounds is done on the exact integers, and the scaling goes through
// Mul and Pow only, so the result is exact for any distance from unison.
func NormalizeToOctave(r Rational) (normalized Rational, shift int) {
	if r.Sign() <= 0 {
		return r, 0
	}
	// the bit length difference puts the ratio within one octave of [1, 2)
	shift = r.n().BitLen() - r.d().BitLen()
	normalized = r.Mul(Octave.Pow(-shift))
	for normalized.Cmp(Octave) >= 0 {
		normalized = normalized.Mul(Octave.Inv())
		shift++
	}
	for normalized.Cmp(Unison) < 0 {
		normalized = normalized.Mul(Octave)
		shift--
	}
	return normalized, shift
}
