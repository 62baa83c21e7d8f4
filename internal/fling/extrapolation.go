// SPDX-License-Identifier: Unlicense OR MIT

package fling

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Extrapolation computes a 1-dimensional velocity estimate
// for a set of timestamped points using the least squares
// fit of a 2nd order polynomial.
type Extrapolation struct {
	// Index into samples of the next sample.
	idx int
	// Circular buffer of samples.
	samples   []sample
	lastValue float32
	// Pre-allocated cache for samples.
	cache [historySize]sample

	// Filtered values and times.
	values [historySize]float32
	times  [historySize]float32
}

type sample struct {
	t time.Duration
	v float32
}

type matrix struct {
	rows, cols int
	data       []float32
}

type (
	vector       []float32
	coefficients [degree + 1]float32
)

// Estimate is the result of Extrapolation.Estimate.
type Estimate struct {
	// Velocity in units per second at the most recent sample.
	Velocity float32
	// Distance covered by the samples used for the estimate.
	Distance float32
}

const (
	degree       = 2
	historySize  = 20
	maxAge       = 100 * time.Millisecond
	maxSampleGap = 40 * time.Millisecond
)

// SampleDelta adds a relative sample to the estimation.
func (e *Extrapolation) SampleDelta(t time.Duration, delta float32) {
	val := delta + e.lastValue
	e.Sample(t, val)
}

// Sample adds an absolute sample to the estimation.
func (e *Extrapolation) Sample(t time.Duration, val float32) {
	e.lastValue = val
	if e.samples == nil {
		e.samples = e.cache[:0]
	}
	s := sample{
		t: t,
		v: val,
	}
	if e.idx == len(e.samples) && e.idx < cap(e.samples) {
		e.samples = append(e.samples, s)
	} else {
		e.samples[e.idx] = s
	}
	e.idx++
	if e.idx == cap(e.samples) {
		e.idx = 0
	}
}

// Estimate returns an estimate of the implied velocity and
// distance for the points sampled, or zero if the estimation method
// failed.
func (e *Extrapolation) Estimate() Estimate {
	if len(e.samples) == 0 {
		return Estimate{}
	}
	values := e.values[:0]
	times := e.times[:0]
	first := e.get(0)
	t := first.t
	// Walk backwards collecting samples.
	for i := 0; i < len(e.samples); i++ {
		p := e.get(-i)
		age := first.t - p.t
		if age >= maxAge || t-p.t >= maxSampleGap {
			// If the samples are too old or
			// too much time passed between samples
			// assume they're not part of the fling.
			break
		}
		t = p.t
		values = append(values, p.v-first.v)
		times = append(times, float32((-age).Seconds()))
	}
	coef, ok := polyFit(times, values)
	if !ok {
		return Estimate{}
	}
	return Estimate{
		Velocity: coef[1],
		Distance: values[0] - values[len(values)-1],
	}
}

// get returns the sample i steps from the most recent one.
// i must be in the range (-len(e.samples), 0].
func (e *Extrapolation) get(i int) sample {
	idx := (e.idx + i - 1 + len(e.samples)) % len(e.samples)
	return e.samples[idx]
}

// polyFit computes the least squares polynomial fit for
// the set of points in X, Y. If the fitting fails
// because of numerical problems, false is returned.
func polyFit(X, Y []float32) (coefficients, bool) {
	if len(X) != len(Y) {
		panic("X and Y lengths differ")
	}
	if len(X) <= degree {
		// Not enough points to fit a curve.
		return coefficients{}, false
	}

	// Expand X into the Vandermonde matrix A with one row per
	// sample and one column per coefficient; all weights are 1.
	A := newMatrix(len(X), degree+1)
	for i, x := range X {
		A.set(i, 0, 1)
		for j := 1; j < A.cols; j++ {
			A.set(i, j, A.get(i, j-1)*x)
		}
	}

	Q, Rt, ok := decomposeQR(A)
	if !ok {
		return coefficients{}, false
	}
	// Solve R*B = Qt*Y for B, which is then the polynomial coefficients.
	// Since R is upper triangular, proceed from the bottom row up.
	var B coefficients
	for i := Q.cols - 1; i >= 0; i-- {
		B[i] = dot(Q.col(i), Y)
		for j := Q.cols - 1; j > i; j-- {
			B[i] -= Rt.get(j, i) * B[j]
		}
		B[i] /= Rt.get(i, i)
	}
	return B, true
}

// decomposeQR computes and returns Q, Rt where Q*transpose(Rt) = A, if
// possible. Q has orthonormal columns and R is upper triangular with
// one row and column per column of A.
func decomposeQR(A *matrix) (*matrix, *matrix, bool) {
	// Modified Gram-Schmidt.
	Q := newMatrix(A.rows, A.cols)
	Rt := newMatrix(A.cols, A.cols)
	for i := 0; i < A.cols; i++ {
		for r := 0; r < A.rows; r++ {
			Q.set(r, i, A.get(r, i))
		}
		// Subtract the projections onto the previous, normalized,
		// columns e:
		//
		// proje a = <e, a> e
		for j := 0; j < i; j++ {
			d := dot(Q.col(j), Q.col(i))
			for r := 0; r < A.rows; r++ {
				Q.set(r, i, Q.get(r, i)-d*Q.get(r, j))
			}
		}
		n := norm(Q.col(i))
		if n < 0.000001 {
			// Degenerate data, no solution.
			return nil, nil, false
		}
		invNorm := 1 / n
		for r := 0; r < A.rows; r++ {
			Q.set(r, i, Q.get(r, i)*invNorm)
		}
	}
	for i := 0; i < A.cols; i++ {
		qi := Q.col(i)
		for j := i; j < A.cols; j++ {
			Rt.set(j, i, dot(qi, A.col(j)))
		}
	}
	return Q, Rt, true
}

func norm(V vector) float32 {
	var n float32
	for _, v := range V {
		n += v * v
	}
	return float32(math.Sqrt(float64(n)))
}

func dot(V1, V2 vector) float32 {
	var d float32
	for i, v1 := range V1 {
		d += v1 * V2[i]
	}
	return d
}

func newMatrix(rows, cols int) *matrix {
	return &matrix{
		rows: rows,
		cols: cols,
		data: make([]float32, rows*cols),
	}
}

func (m *matrix) set(row, col int, v float32) {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	m.data[row*m.cols+col] = v
}

func (m *matrix) get(row, col int) float32 {
	if row < 0 || row >= m.rows {
		panic("row out of range")
	}
	if col < 0 || col >= m.cols {
		panic("col out of range")
	}
	return m.data[row*m.cols+col]
}

func (m *matrix) col(c int) vector {
	v := make(vector, m.rows)
	for r := range v {
		v[r] = m.get(r, c)
	}
	return v
}

func (m *matrix) transpose() *matrix {
	t := newMatrix(m.cols, m.rows)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			t.set(c, r, m.get(r, c))
		}
	}
	return t
}

func (m *matrix) mul(m2 *matrix) *matrix {
	if m.cols != m2.rows {
		panic("mismatched matrices")
	}
	mm := newMatrix(m.rows, m2.cols)
	for r := 0; r < mm.rows; r++ {
		for c := 0; c < mm.cols; c++ {
			var v float32
			for i := 0; i < m.cols; i++ {
				v += m.get(r, i) * m2.get(i, c)
			}
			mm.set(r, c, v)
		}
	}
	return mm
}

func (m *matrix) approxEqual(m2 *matrix) bool {
	if m.rows != m2.rows || m.cols != m2.cols {
		return false
	}
	for i, v := range m.data {
		if !approxEqual(v, m2.data[i]) {
			return false
		}
	}
	return true
}

func (m *matrix) String() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			fmt.Fprintf(&b, "%f ", m.get(r, c))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c coefficients) approxEqual(c2 coefficients) bool {
	for i, v := range c {
		if !approxEqual(v, c2[i]) {
			return false
		}
	}
	return true
}

func approxEqual(v1, v2 float32) bool {
	const epsilon = 0.0001
	scale := float32(1)
	if a := abs(v1); a > scale {
		scale = a
	}
	if a := abs(v2); a > scale {
		scale = a
	}
	return abs(v1-v2) <= epsilon*scale
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
