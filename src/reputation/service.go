// Package reputation keeps a bounded trust score per issuer, nudged by
// verification outcomes. Scores feed back into the verification confidence
// weighting.
package reputation

import (
	"strings"
	"sync"
	"time"

	reasoncodes "github.com/miromero13/certeth/pkg/reason_codes"
	"github.com/miromero13/certeth/src/model"
)

const (
	ScoreMin   = 0
	ScoreMax   = 1000
	ScoreStart = 500

	// Step is the per-outcome adjustment; bounded so no single verification
	// can swing an issuer's standing.
	Step = 10
)

type Service struct {
	Repo Repository

	// Serializes read-modify-write cycles across concurrent verifications.
	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

// Get returns the issuer's reputation, materializing the midpoint default for
// issuers never seen before. The default is not persisted until an outcome is
// recorded.
func (s *Service) Get(issuer string) (*model.IssuerReputation, error) {
	normalized, err := normalize(issuer)
	if err != nil {
		return nil, err
	}

	rep, err := s.Repo.GetByIssuer(normalized)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return &model.IssuerReputation{
			Issuer:    normalized,
			Score:     ScoreStart,
			UpdatedAt: time.Now().Unix(),
		}, nil
	}
	return rep, nil
}

// Record applies one verification outcome: +Step for valid, -Step for invalid,
// clamped to [ScoreMin, ScoreMax].
func (s *Service) Record(issuer string, valid bool) (*model.IssuerReputation, error) {
	normalized, err := normalize(issuer)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rep, err := s.Repo.GetByIssuer(normalized)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		rep = &model.IssuerReputation{
			Issuer: normalized,
			Score:  ScoreStart,
		}
	}

	if valid {
		rep.Score += Step
		rep.TotalValid++
	} else {
		rep.Score -= Step
		rep.TotalInvalid++
	}
	rep.Score = clamp(rep.Score)
	rep.UpdatedAt = time.Now().Unix()

	if err := s.Repo.Save(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// TrustWeight maps the score to [0,1] for confidence weighting.
func (s *Service) TrustWeight(issuer string) (float64, error) {
	rep, err := s.Get(issuer)
	if err != nil {
		return 0, err
	}
	return float64(rep.Score) / float64(ScoreMax), nil
}

func normalize(issuer string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(issuer))
	if trimmed == "" {
		return "", reasoncodes.New(reasoncodes.ErrValidation, "issuer address is empty")
	}
	return trimmed, nil
}

func clamp(score int) int {
	if score < ScoreMin {
		return ScoreMin
	}
	if score > ScoreMax {
		return ScoreMax
	}
	return score
}
