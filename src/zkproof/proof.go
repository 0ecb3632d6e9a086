package zkproof

import (
	"bytes"
	"math/big"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/near/borsh-go"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/commitment"
)

// Statement is the public claim a proof makes. Every field here is a public
// circuit input; the verifier rebuilds the public witness from these declared
// values before the pairing check.
type Statement struct {
	CertificateId       uint32 `borsh:"certificate_id" json:"certificate_id"`
	Commitment          string `borsh:"commitment" json:"commitment"`
	Threshold           int64  `borsh:"threshold" json:"threshold"`
	GeneratedAt         int64  `borsh:"generated_at" json:"generated_at"`
	InstitutionId       int64  `borsh:"institution_id" json:"institution_id"`
	MaxAgeSeconds       int64  `borsh:"max_age_seconds" json:"max_age_seconds"`
	GradeAboveThreshold bool   `borsh:"grade_above_threshold" json:"grade_above_threshold"`
}

func (st Statement) commitmentValue() (*big.Int, error) {
	v, err := commitment.Decode(st.Commitment)
	if err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrMalformedProof, err)
	}
	return v, nil
}

// ThresholdProof is the transferable proof object: the statement plus the
// Groth16 proof attesting to it.
type ThresholdProof struct {
	Statement Statement
	Proof     groth16.Proof
}

type proofEnvelope struct {
	Statement Statement `borsh:"statement"`
	Proof     []byte    `borsh:"proof"`
}

// SerializeBorsh packs the proof into the wire envelope.
func (tp *ThresholdProof) SerializeBorsh() ([]byte, error) {
	var proofBuf bytes.Buffer
	if _, err := tp.Proof.WriteTo(&proofBuf); err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrUnmarshal, err)
	}

	return borsh.Serialize(proofEnvelope{
		Statement: tp.Statement,
		Proof:     proofBuf.Bytes(),
	})
}

// DeserializeBorsh reconstructs a ThresholdProof from the wire envelope.
// Malformed bytes surface as MalformedProof, never as a panic.
func DeserializeBorsh(blob []byte) (*ThresholdProof, error) {
	if len(blob) == 0 {
		return nil, reasoncodes.New(reasoncodes.ErrMalformedProof, "empty proof blob")
	}

	var envelope proofEnvelope
	if err := borsh.Deserialize(&envelope, blob); err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrMalformedProof, err)
	}
	if len(envelope.Proof) == 0 {
		return nil, reasoncodes.New(reasoncodes.ErrMalformedProof, "envelope carries no proof bytes")
	}

	proof := groth16.NewProof(ElipticalCurveID)
	if _, err := proof.ReadFrom(bytes.NewReader(envelope.Proof)); err != nil {
		return nil, reasoncodes.Wrap(reasoncodes.ErrMalformedProof, err)
	}

	return &ThresholdProof{
		Statement: envelope.Statement,
		Proof:     proof,
	}, nil
}
