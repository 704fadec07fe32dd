package writer

import (
	"math"
	"strconv"
)

// Deterministic, allocation-free number formatting for the writer.
// Integers are built least-significant digit first and reversed in
// place. Doubles use fixed-precision rendering with trailing zeros
// stripped; magnitudes beyond a 32-bit whole part fall back to
// exponential form, and non-finite values render as "nan".

var pow10 = [...]float64{1, 10, 100, 1000, 10000, 100000, 1000000,
	10000000, 100000000, 1000000000}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// appendInt appends v as canonical decimal: no leading zeros, a
// leading '-' for negatives.
func appendInt(dst []byte, v int) []byte {
	mark := len(dst)
	u := uint(v)
	if v < 0 {
		u = -u
	}
	for {
		dst = append(dst, byte('0'+u%10))
		u /= 10
		if u == 0 {
			break
		}
	}
	if v < 0 {
		dst = append(dst, '-')
	}
	reverse(dst[mark:])
	return dst
}

// appendFixed appends value with at most prec fractional digits.
// prec is clamped to [0, 9]. Rounding is half-up except at the exact
// halfway point when the kept digits end even and nonzero, which stays
// put (round-half-to-even at the boundary). Trailing fractional zeros
// are stripped; a fractional carry rolls into the whole part. NaN and
// the infinities render as the literal text "nan".
func appendFixed(dst []byte, value float64, prec int) []byte {
	// Magnitudes beyond a 32-bit whole part use the generic
	// exponential rendering.
	const thresMax = float64(0x7FFFFFFF)

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return append(dst, "nan"...)
	}

	if prec < 0 {
		prec = 0
	} else if prec > 9 {
		prec = 9
	}

	neg := false
	if value < 0 {
		neg = true
		value = -value
	}

	if value > thresMax {
		if neg {
			value = -value
		}
		return strconv.AppendFloat(dst, value, 'e', 6, 64)
	}

	whole := int(value)
	tmp := (value - float64(whole)) * pow10[prec]
	frac := uint32(tmp)
	diff := tmp - float64(frac)

	if diff > 0.5 {
		frac++
		// Rollover, e.g. 0.99 at precision 1 becomes 1.0.
		if float64(frac) >= pow10[prec] {
			frac = 0
			whole++
		}
	} else if diff == 0.5 && (frac == 0 || frac&1 == 1) {
		// Halfway: round up if the last kept digit is odd, or if the
		// fraction is exactly zero.
		frac++
		// Same carry as above, e.g. 0.99995 at precision 4 is 1.
		// Precision 0 is left to the whole-part rounding below, which
		// re-derives the halfway decision from the raw value.
		if prec > 0 && float64(frac) >= pow10[prec] {
			frac = 0
			whole++
		}
	}

	mark := len(dst)

	if prec == 0 {
		diff = value - float64(whole)
		if diff > 0.5 {
			whole++
		} else if diff == 0.5 && whole&1 == 1 {
			// 1.5 rounds to 2, 2.5 stays 2.
			whole++
		}
	} else if frac != 0 {
		count := prec
		// Strip trailing zeros, recounting the digits still needed.
		for frac%10 == 0 {
			count--
			frac /= 10
		}
		for {
			count--
			dst = append(dst, byte('0'+frac%10))
			frac /= 10
			if frac == 0 {
				break
			}
		}
		for ; count > 0; count-- {
			dst = append(dst, '0')
		}
		dst = append(dst, '.')
	}

	for {
		dst = append(dst, byte('0'+whole%10))
		whole /= 10
		if whole == 0 {
			break
		}
	}
	if neg {
		dst = append(dst, '-')
	}
	reverse(dst[mark:])
	return dst
}
