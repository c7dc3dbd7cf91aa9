package compute

import "math"

type Naive struct {
	sum float64
}

func NewNaive() *Naive { return &Naive{} }

func (n *Naive) Name() string  { return "naive" }
func (n *Naive) Add(v float64) { n.sum += v }
func (n *Naive) Sum() float64  { return n.sum }
func (n *Naive) Reset()        { n.sum = 0 }

// Kahan is Neumaier's variant, which also handles terms larger than the
// running sum.
type Kahan struct {
	sum, c float64
}

func NewKahan() *Kahan { return &Kahan{} }

func (k *Kahan) Name() string { return "kahan" }

func (k *Kahan) Add(v float64) {
	t := k.sum + v
	if math.Abs(k.sum) >= math.Abs(v) {
		k.c += (k.sum - t) + v
	} else {
		k.c += (v - t) + k.sum
	}
	k.sum = t
}

func (k *Kahan) Sum() float64 { return k.sum + k.c }
func (k *Kahan) Reset()       { k.sum, k.c = 0, 0 }

// pairwiseBlock is the leaf size below which terms are summed directly.
const pairwiseBlock = 64

type Pairwise struct {
	terms []float64
}

func NewPairwise() *Pairwise {
	return &Pairwise{terms: make([]float64, 0, 1024)}
}

func (p *Pairwise) Name() string  { return "pairwise" }
func (p *Pairwise) Add(v float64) { p.terms = append(p.terms, v) }
func (p *Pairwise) Sum() float64  { return pairwiseSum(p.terms) }
func (p *Pairwise) Reset()        { p.terms = p.terms[:0] }

func pairwiseSum(s []float64) float64 {
	if len(s) <= pairwiseBlock {
		sum := 0.0
		for _, v := range s {
			sum += v
		}
		return sum
	}
	mid := len(s) / 2
	return pairwiseSum(s[:mid]) + pairwiseSum(s[mid:])
}
