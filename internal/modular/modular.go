package modular

// Matrix2 is a 2x2 integer matrix in row-major order
type Matrix2 [2][2]int

// Mod returns a mod m in [0, m) for m > 0, also for negative a
func Mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// ExtendedGCD returns g = gcd(a, b) and coefficients x, y with a*x + b*y = g
func ExtendedGCD(a, b int) (g, x, y int) {
	if a == 0 {
		return b, 0, 1
	}
	g, y1, x1 := ExtendedGCD(b%a, a)
	return g, x1 - (b/a)*y1, y1
}

// ModInverse returns r in [0, m) with (a*r) mod m == 1.
// ok is false when gcd(a mod m, m) != 1.
func ModInverse(a, m int) (int, bool) {
	g, x, _ := ExtendedGCD(Mod(a, m), m)
	if g != 1 {
		return 0, false
	}
	return Mod(x, m), true
}

// Reduce returns k with every entry reduced mod m
func Reduce(k Matrix2, m int) Matrix2 {
	var out Matrix2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = Mod(k[r][c], m)
		}
	}
	return out
}

// Det2 returns the determinant of k reduced mod m
func Det2(k Matrix2, m int) int {
	return Mod(k[0][0]*k[1][1]-k[0][1]*k[1][0], m)
}

// Inverse2 computes the inverse of k mod m from the adjugate.
// The determinant is always returned so callers can report it when ok is false.
func Inverse2(k Matrix2, m int) (inv Matrix2, det int, ok bool) {
	det = Det2(k, m)
	invDet, ok := ModInverse(det, m)
	if !ok {
		return Matrix2{}, det, false
	}
	a, b := k[0][0], k[0][1]
	c, d := k[1][0], k[1][1]
	inv = Matrix2{
		{Mod(invDet*d, m), Mod(invDet*(-b), m)},
		{Mod(invDet*(-c), m), Mod(invDet*a, m)},
	}
	return inv, det, true
}

// MulVec multiplies k by the column vector (v0, v1) mod m
func MulVec(k Matrix2, v0, v1, m int) (int, int) {
	return Mod(k[0][0]*v0+k[0][1]*v1, m), Mod(k[1][0]*v0+k[1][1]*v1, m)
}
