// Package scm implements linear additive structural causal models.
//
// Every variable is assigned X := c + Σ βᵢ·Paᵢ + N where N is an independent noise term. A Model
// can be sampled, intervened on (hard or soft interventions) and queried for counterfactuals
// through abduction, action and prediction.
package scm
