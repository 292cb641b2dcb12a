package core

import (
	"fmt"
	"math"
	"sort"
)

// PixelPattern distributes the samples of one pixel over the unit square.
// Fill writes len(offsets) sample positions, each in [0,1)², into offsets.
type PixelPattern interface {
	Name() string
	Fill(offsets []Vec2, sampler Sampler)
}

// Pattern names accepted by PatternByName
const (
	PatternRandom       = "random"
	PatternRegular      = "regular"
	PatternJittered     = "jittered"
	PatternHalfJittered = "half-jittered"
	PatternNRooks       = "n-rooks"
)

// PatternNames lists every available pixel pattern
func PatternNames() []string {
	return []string{PatternRandom, PatternRegular, PatternJittered, PatternHalfJittered, PatternNRooks}
}

// PatternByName returns the pixel pattern registered under name
func PatternByName(name string) (PixelPattern, error) {
	switch name {
	case PatternRandom, "":
		return RandomPattern{}, nil
	case PatternRegular:
		return RegularPattern{}, nil
	case PatternJittered:
		return JitteredPattern{}, nil
	case PatternHalfJittered:
		return HalfJitteredPattern{}, nil
	case PatternNRooks:
		return NRooksPattern{}, nil
	}
	return nil, fmt.Errorf("core: unknown pixel pattern %q", name)
}

// RandomPattern draws every sample uniformly over the pixel (box filter)
type RandomPattern struct{}

func (RandomPattern) Name() string { return PatternRandom }

func (RandomPattern) Fill(offsets []Vec2, sampler Sampler) {
	for i := range offsets {
		offsets[i] = sampler.Get2D()
	}
}

// RegularPattern places samples at the centers of a near-square grid of strata
type RegularPattern struct{}

func (RegularPattern) Name() string { return PatternRegular }

func (RegularPattern) Fill(offsets []Vec2, _ Sampler) {
	fillStrata(offsets, func(lo, hi float64) float64 { return 0.5 * (lo + hi) })
}

// JitteredPattern places one uniformly jittered sample in each stratum
type JitteredPattern struct{}

func (JitteredPattern) Name() string { return PatternJittered }

func (JitteredPattern) Fill(offsets []Vec2, sampler Sampler) {
	fillStrata(offsets, func(lo, hi float64) float64 { return lo + sampler.Get1D()*(hi-lo) })
}

// HalfJitteredPattern jitters each sample within the central half of its stratum
type HalfJitteredPattern struct{}

func (HalfJitteredPattern) Name() string { return PatternHalfJittered }

func (HalfJitteredPattern) Fill(offsets []Vec2, sampler Sampler) {
	fillStrata(offsets, func(lo, hi float64) float64 {
		width := hi - lo
		return lo + width*(0.25+0.5*sampler.Get1D())
	})
}

// NRooksPattern places exactly one sample in every row and every column of an N×N grid
type NRooksPattern struct{}

func (NRooksPattern) Name() string { return PatternNRooks }

func (NRooksPattern) Fill(offsets []Vec2, sampler Sampler) {
	n := len(offsets)
	if n == 0 {
		return
	}
	step := 1.0 / float64(n)
	for i := range offsets {
		lo := float64(i) * step
		offsets[i] = NewVec2(lo+sampler.Get1D()*step, lo+sampler.Get1D()*step)
	}

	// Fisher-Yates shuffle of the x coordinates decouples rows from columns
	for i := n - 1; i > 0; i-- {
		j := min(int(sampler.Get1D()*float64(i+1)), i)
		offsets[i].X, offsets[j].X = offsets[j].X, offsets[i].X
	}
}

// fillStrata splits the pixel into a near-square nx×ny grid and asks pick for a
// coordinate within each stratum span.
func fillStrata(offsets []Vec2, pick func(lo, hi float64) float64) {
	ny, nx := TwoFactors(len(offsets))
	idx := 0
	for i := 0; i < nx; i++ {
		for j := 0; j < ny; j++ {
			x0, x1 := float64(i)/float64(nx), float64(i+1)/float64(nx)
			y0, y1 := float64(j)/float64(ny), float64(j+1)/float64(ny)
			offsets[idx] = NewVec2(pick(x0, x1), pick(y0, y1))
			idx++
		}
	}
}

// TwoFactors splits n into a pair (a, b) with a*b == n and a as close to sqrt(n)
// as possible. Ties resolve to the smaller factor. Primes yield (1, n).
func TwoFactors(n int) (int, int) {
	if n <= 1 {
		return 1, max(n, 0)
	}

	var factors []int
	for i := 1; i*i <= n; i++ {
		if n%i == 0 {
			factors = append(factors, i)
			if i != n/i && n/i != n {
				factors = append(factors, n/i)
			}
		}
	}
	sort.Ints(factors)

	root := math.Sqrt(float64(n))
	best := factors[0]
	for _, f := range factors[1:] {
		if math.Abs(float64(f)-root) < math.Abs(float64(best)-root) {
			best = f
		}
	}
	return best, n / best
}
