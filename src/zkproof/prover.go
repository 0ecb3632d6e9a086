package zkproof

import (
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/miromero13/certeth/pkg/logger"
	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
)

const ElipticalCurveID = ecc.BN254

// System holds the compiled constraint system and the Groth16 key pair. Compile
// and Setup run once per process; every prove and verify call shares them.
type System struct {
	once sync.Once
	err  error

	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

func NewSystem() *System {
	return &System{}
}

func (s *System) ensure() error {
	s.once.Do(func() {
		logger.Default().Info("compiling grade threshold circuit")

		var circuit GradeThresholdCircuit
		ccs, err := frontend.Compile(ElipticalCurveID.ScalarField(), r1cs.NewBuilder, &circuit)
		if err != nil {
			s.err = reasoncodes.Wrap(reasoncodes.ErrProofGeneration, err)
			return
		}

		pk, vk, err := groth16.Setup(ccs)
		if err != nil {
			s.err = reasoncodes.Wrap(reasoncodes.ErrProofGeneration, err)
			return
		}

		s.ccs = ccs
		s.pk = pk
		s.vk = vk
		logger.Default().Infof("circuit ready: %d constraints", ccs.GetNbConstraints())
	})
	return s.err
}

// Assignment is the full witness for one proof: the public statement plus the
// private opening.
type Assignment struct {
	Commitment          *big.Int
	Threshold           int64
	CurrentTimestamp    int64
	InstitutionId       int64
	MaxAgeSeconds       int64
	GradeAboveThreshold bool

	Grade          int64
	RecipientId    *big.Int
	CompletionDate int64
	Nonce          *big.Int
}

func (a Assignment) circuit() *GradeThresholdCircuit {
	above := int64(0)
	if a.GradeAboveThreshold {
		above = 1
	}
	return &GradeThresholdCircuit{
		Commitment:          a.Commitment,
		Threshold:           a.Threshold,
		CurrentTimestamp:    a.CurrentTimestamp,
		InstitutionId:       a.InstitutionId,
		MaxAgeSeconds:       a.MaxAgeSeconds,
		GradeAboveThreshold: above,

		Grade:          a.Grade,
		RecipientId:    a.RecipientId,
		CompletionDate: a.CompletionDate,
		Nonce:          a.Nonce,
	}
}

// Prove generates a Groth16 proof for the assignment.
func (s *System) Prove(a Assignment) (groth16.Proof, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	fullWitness, err := frontend.NewWitness(a.circuit(), ElipticalCurveID.ScalarField())
	if err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrProofGeneration, err)
	}

	proof, err := groth16.Prove(s.ccs, s.pk, fullWitness)
	if err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrProofGeneration, err)
	}
	return proof, nil
}

// Verify checks a proof against the declared public statement. The public
// witness is rebuilt here from the declared values rather than trusted from the
// wire, so a tampered envelope cannot smuggle a different statement past the
// pairing check.
func (s *System) Verify(proof groth16.Proof, statement Statement) error {
	if err := s.ensure(); err != nil {
		return err
	}

	publicWitness, err := s.publicWitness(statement)
	if err != nil {
		return err
	}

	if err := groth16.Verify(proof, s.vk, publicWitness); err != nil {
		return reasoncodes.Wrap(reasoncodes.ErrInvalidProof, err)
	}
	return nil
}

func (s *System) publicWitness(statement Statement) (witness.Witness, error) {
	commitmentValue, err := statement.commitmentValue()
	if err != nil {
		return nil, err
	}

	above := int64(0)
	if statement.GradeAboveThreshold {
		above = 1
	}
	assignment := &GradeThresholdCircuit{
		Commitment:          commitmentValue,
		Threshold:           statement.Threshold,
		CurrentTimestamp:    statement.GeneratedAt,
		InstitutionId:       statement.InstitutionId,
		MaxAgeSeconds:       statement.MaxAgeSeconds,
		GradeAboveThreshold: above,
	}

	w, err := frontend.NewWitness(assignment, ElipticalCurveID.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrMalformedProof, err)
	}
	return w, nil
}
