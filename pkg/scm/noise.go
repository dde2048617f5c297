package scm

import (
	"math/rand/v2"
	"strconv"

	"gonum.org/v1/gonum/stat/distuv"
)

// Noise is the distribution of an exogenous noise term.
type Noise interface {
	// Rand draws one value using src.
	Rand(src rand.Source) float64
	// Mean is the expected value of the noise.
	Mean() float64
	String() string
}

// Normal is a Gaussian noise N(Mu, Sigma).
type Normal struct {
	Mu    float64
	Sigma float64
}

func (n Normal) Rand(src rand.Source) float64 {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma, Src: src}.Rand()
}

func (n Normal) Mean() float64 { return n.Mu }

func (n Normal) String() string { return "N(" + num(n.Mu) + ", " + num(n.Sigma) + ")" }

// Uniform is a noise drawn uniformly from [Min, Max).
type Uniform struct {
	Min float64
	Max float64
}

func (u Uniform) Rand(src rand.Source) float64 {
	return distuv.Uniform{Min: u.Min, Max: u.Max, Src: src}.Rand()
}

func (u Uniform) Mean() float64 { return (u.Min + u.Max) / 2 }

func (u Uniform) String() string { return "U(" + num(u.Min) + ", " + num(u.Max) + ")" }

// Exponential is an exponential noise with the given rate, so its mean is 1/Rate.
type Exponential struct {
	Rate float64
}

func (e Exponential) Rand(src rand.Source) float64 {
	return distuv.Exponential{Rate: e.Rate, Src: src}.Rand()
}

func (e Exponential) Mean() float64 { return 1 / e.Rate }

func (e Exponential) String() string { return "Exp(" + num(e.Rate) + ")" }

// Bernoulli is a noise that is 1 with probability P and 0 otherwise.
type Bernoulli struct {
	P float64
}

func (b Bernoulli) Rand(src rand.Source) float64 {
	return distuv.Bernoulli{P: b.P, Src: src}.Rand()
}

func (b Bernoulli) Mean() float64 { return b.P }

func (b Bernoulli) String() string { return "Bern(" + num(b.P) + ")" }

// Constant always yields Value. Hard interventions use it.
type Constant struct {
	Value float64
}

func (c Constant) Rand(rand.Source) float64 { return c.Value }

func (c Constant) Mean() float64 { return c.Value }

func (c Constant) String() string { return num(c.Value) }

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// NewRand returns a deterministic generator for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
