// Package commitment derives the binding, hiding commitment anchored for every
// certificate. The hash is MiMC over the BN254 scalar field so the identical
// computation can be re-asserted inside the proving circuit.
package commitment

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
	"strings"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	frmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"golang.org/x/crypto/sha3"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
)

const (
	GradeMax = 100

	// NonceSize is 16 bytes: 128 bits of entropy so a ~7-bit grade cannot be
	// brute-forced out of the commitment.
	NonceSize = 16
)

// completionFloor rejects obviously implausible completion dates (before
// 2000-01-01 UTC).
const completionFloor int64 = 946684800

// NewNonce returns a fresh random hex-encoded nonce. One nonce per
// certificate, never reused.
func NewNonce() (string, error) {
	buf := make([]byte, NonceSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ParseNonce decodes a hex nonce into the field element form used by both the
// native hash and the circuit witness.
func ParseNonce(nonce string) (*big.Int, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(nonce, "0x"))
	if err != nil {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "nonce is not valid hex")
	}
	if len(raw) != NonceSize {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "nonce must be %d bytes, got %d", NonceSize, len(raw))
	}
	return new(big.Int).SetBytes(raw), nil
}

// HashIdentity folds an address string into a BN254 scalar via keccak256,
// reduced into the field. Addresses are lowercased first so checksum casing
// does not change the commitment.
func HashIdentity(address string) *big.Int {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(strings.ToLower(address)))
	sum := h.Sum(nil)

	v := new(big.Int).SetBytes(sum)
	return v.Mod(v, fr.Modulus())
}

// Commit computes the certificate commitment:
//
//	MiMC(grade, H(recipient), completionDate, institutionId, nonce)
//
// Identical inputs always produce the identical commitment; without the nonce
// the output reveals nothing about grade or completion date.
func Commit(grade int, recipientAddress string, completionDate int64, institutionId int64, nonce string) (string, error) {
	if err := ValidateInputs(grade, completionDate); err != nil {
		return "", err
	}
	if strings.TrimSpace(recipientAddress) == "" {
		return "", reasoncodes.New(reasoncodes.ErrValidation, "recipient address is empty")
	}

	nonceInt, err := ParseNonce(nonce)
	if err != nil {
		return "", err
	}

	digest := Digest(
		big.NewInt(int64(grade)),
		HashIdentity(recipientAddress),
		big.NewInt(completionDate),
		big.NewInt(institutionId),
		nonceInt,
	)

	return Encode(digest), nil
}

// ValidateInputs applies the issuance-time range checks shared by the store
// and the proof generator.
func ValidateInputs(grade int, completionDate int64) error {
	if grade < 0 || grade > GradeMax {
		return reasoncodes.New(reasoncodes.ErrValidation, "grade %d outside [0,%d]", grade, GradeMax)
	}
	if completionDate <= completionFloor {
		return reasoncodes.New(reasoncodes.ErrValidation, "completion date %d is implausible", completionDate)
	}
	if completionDate > time.Now().Unix() {
		return reasoncodes.New(reasoncodes.ErrValidation, "completion date %d is in the future", completionDate)
	}
	return nil
}

// Digest hashes the ordered inputs with the native MiMC, matching the
// std/hash/mimc gadget the circuit uses (same parameters, same byte
// normalization).
func Digest(inputs ...*big.Int) *big.Int {
	h := frmimc.NewMiMC()

	for _, x := range inputs {
		var fe fr.Element
		fe.SetBigInt(x)
		h.Write(fe.Marshal())
	}

	sum := h.Sum(nil)

	out := new(big.Int).SetBytes(sum)
	return out.Mod(out, fr.Modulus())
}

// Encode renders a field element as the 0x-prefixed 32-byte hex form stored on
// ledger records.
func Encode(v *big.Int) string {
	var fe fr.Element
	fe.SetBigInt(v)
	return "0x" + hex.EncodeToString(fe.Marshal())
}

// Decode parses a stored commitment back into a field element value.
func Decode(commitment string) (*big.Int, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(commitment, "0x"))
	if err != nil || len(raw) != fr.Bytes {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "commitment is not a 32-byte hex value")
	}
	v := new(big.Int).SetBytes(raw)
	if v.Cmp(fr.Modulus()) >= 0 {
		return nil, reasoncodes.New(reasoncodes.ErrValidation, "commitment is not a canonical field element")
	}
	return v, nil
}
