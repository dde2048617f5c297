package scm

import "github.com/pkg/errors"

// The binary treatment model:
//
//	N_B ~ Bern(p)
//	B   := T·N_B + (1-T)·(1-N_B)
//
// A unit with N_B = 1 is only cured (B = 0) without treatment, every other unit is cured by the
// treatment.

// DefaultConditionRate is the share of the population with N_B = 1.
const DefaultConditionRate = 0.01

// OutcomeB evaluates B for a treatment and a noise value.
func OutcomeB(t, nb int) (int, error) {
	if err := binary("T", t); err != nil {
		return 0, err
	}

	if err := binary("N_B", nb); err != nil {
		return 0, err
	}

	return t*nb + (1-t)*(1-nb), nil
}

// SolveNB is the abduction step: the only N_B compatible with the observed T and B.
func SolveNB(t, b int) (int, error) {
	if err := binary("T", t); err != nil {
		return 0, err
	}

	if err := binary("B", b); err != nil {
		return 0, err
	}

	if t == 1 {
		return b, nil
	}

	return 1 - b, nil
}

// CounterfactualB is the prediction step: the outcome of a unit with noise nb under do(T := t).
func CounterfactualB(nb, t int) (int, error) {
	return OutcomeB(t, nb)
}

// ExpectedB is E[B | do(T := t)] when N_B ~ Bern(p).
func ExpectedB(t int, p float64) (float64, error) {
	if err := binary("T", t); err != nil {
		return 0, err
	}

	return float64(t)*p + float64(1-t)*(1-p), nil
}

// CheckLab compares the abducted noise with a later measurement of it. It returns true when the
// measurement confirms the model and false when it falsifies it.
func CheckLab(deduced, measured int) (bool, error) {
	if err := binary("N_B", deduced); err != nil {
		return false, err
	}

	if err := binary("N_B", measured); err != nil {
		return false, err
	}

	return deduced == measured, nil
}

func binary(name string, v int) error {
	if v != 0 && v != 1 {
		return errors.Wrapf(ErrNotBinary, "%s = %d", name, v)
	}

	return nil
}
