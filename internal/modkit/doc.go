// Package modkit ingests externally observed modification calls (modkit
// bedMethyl pileup output) and reconciles them against analyzer verdicts.
//
// Reconciliation is agreement bookkeeping, not a re-derivation of
// compatibility: it joins the two sides on Sprinzl position and classifies
// each covered position into one of four agreement classes. Probabilities
// are passed through untouched.
package modkit
