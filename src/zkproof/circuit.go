// Package zkproof proves grade threshold statements about committed
// certificates without revealing the grade. Proofs are Groth16 over BN254; the
// in-circuit MiMC matches the native commitment hash byte for byte.
package zkproof

import (
	"github.com/consensys/gnark/frontend"
	mimc "github.com/consensys/gnark/std/hash/mimc"

	"github.com/miromero13/certeth/src/commitment"
)

// GradeThresholdCircuit re-derives the certificate commitment from the private
// opening and binds a public claim bit to the comparison grade >= threshold.
//
// The claim bit is constrained, not asserted: a prover whose grade is below the
// threshold can still produce a valid proof, but only one that publicly states
// GradeAboveThreshold = 0. Lying about the comparison is what the circuit makes
// impossible.
type GradeThresholdCircuit struct {
	// Public inputs; gnark fixes their order by declaration.
	Commitment          frontend.Variable `gnark:",public"`
	Threshold           frontend.Variable `gnark:",public"`
	CurrentTimestamp    frontend.Variable `gnark:",public"`
	InstitutionId       frontend.Variable `gnark:",public"`
	MaxAgeSeconds       frontend.Variable `gnark:",public"`
	GradeAboveThreshold frontend.Variable `gnark:",public"`

	// Private witness: the commitment opening.
	Grade          frontend.Variable
	RecipientId    frontend.Variable
	CompletionDate frontend.Variable
	Nonce          frontend.Variable
}

func (c *GradeThresholdCircuit) Define(api frontend.API) error {
	hasher, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}

	// Same field order as the native commitment hash.
	hasher.Write(c.Grade, c.RecipientId, c.CompletionDate, c.InstitutionId, c.Nonce)
	api.AssertIsEqual(hasher.Sum(), c.Commitment)

	// Grade and threshold live on the 0..100 scale.
	api.AssertIsLessOrEqual(c.Grade, commitment.GradeMax)
	api.AssertIsLessOrEqual(c.Threshold, commitment.GradeMax)

	// Cmp yields -1/0/1; isLess is 1 exactly when grade < threshold.
	cmp := api.Cmp(c.Grade, c.Threshold)
	isLess := api.IsZero(api.Add(cmp, 1))
	above := api.Sub(1, isLess)

	api.AssertIsBoolean(c.GradeAboveThreshold)
	api.AssertIsEqual(c.GradeAboveThreshold, above)

	// The certificate must have been completed no later than the declared
	// timestamp and no more than MaxAgeSeconds before it.
	api.AssertIsLessOrEqual(c.CompletionDate, c.CurrentTimestamp)
	api.AssertIsLessOrEqual(c.CurrentTimestamp, api.Add(c.CompletionDate, c.MaxAgeSeconds))

	return nil
}
