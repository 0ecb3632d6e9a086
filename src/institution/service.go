// Package institution maps display names to the stable numeric identifiers
// bound inside commitments. The id is content-derived so every node resolves
// the same name to the same number; the table is only a cache of what has been
// seen.
package institution

import (
	"encoding/binary"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/model"
)

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// Resolve returns the numeric institution id for a name, registering it on
// first sight.
func (s *Service) Resolve(name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, reasoncodes.New(reasoncodes.ErrValidation, "institution name is empty")
	}

	existing, err := s.Repo.GetByName(trimmed)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.InstitutionId, nil
	}

	id := DeriveId(trimmed)
	inst := &model.Institution{
		Name:          trimmed,
		InstitutionId: id,
		RegisteredAt:  time.Now().Unix(),
	}
	if err := s.Repo.Create(inst); err != nil {
		// A concurrent Resolve may have registered the same name; the derived
		// id is identical either way.
		if again, lookupErr := s.Repo.GetByName(trimmed); lookupErr == nil && again != nil {
			return again.InstitutionId, nil
		}
		return 0, err
	}

	return id, nil
}

// DeriveId folds a name into a positive 56-bit integer via keccak256. Small
// enough to stay JSON-safe and well inside the scalar field.
func DeriveId(name string) int64 {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	sum := h.Sum(nil)

	raw := binary.BigEndian.Uint64(sum[:8]) >> 8
	return int64(raw)
}
