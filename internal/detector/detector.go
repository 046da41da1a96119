// Package detector classifies a business by scoring weighted keyword
// matches against the text gathered during discovery.
package detector

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// GeneralType is returned when no profile scores above zero.
const GeneralType = "general"

// Profile describes one business type: keywords worth full weight and
// weaker signals worth half.
type Profile struct {
	Type      string
	Keywords  []string
	Signals   []string
	Taxonomy  string
	PageNames []string
}

// Score is one profile's match result.
type Score struct {
	Type   string  `json:"type"`
	Points float64 `json:"points"`
}

// Detector scores text against a fixed set of business profiles. The
// profile slice is copied at construction and never mutated afterwards,
// so a Detector is safe for concurrent use.
type Detector struct {
	profiles []Profile
	logger   *zap.Logger
}

// New builds a Detector over the given profiles. Pass DefaultProfiles()
// unless a caller needs a custom set.
func New(profiles []Profile, logger *zap.Logger) *Detector {
	copied := make([]Profile, len(profiles))
	copy(copied, profiles)
	return &Detector{profiles: copied, logger: logger}
}

// Detect returns the best-scoring business type for the given text
// fragments, or GeneralType when nothing matches. Matching is
// case-insensitive substring containment.
func (d *Detector) Detect(fragments ...string) string {
	scores := d.ScoreAll(fragments...)
	if len(scores) == 0 || scores[0].Points <= 0 {
		return GeneralType
	}
	d.logger.Debug("business type detected",
		zap.String("type", scores[0].Type),
		zap.Float64("score", scores[0].Points))
	return scores[0].Type
}

// ScoreAll scores every profile against the fragments and returns the
// results sorted by points descending. Ties break alphabetically so the
// ordering is stable.
func (d *Detector) ScoreAll(fragments ...string) []Score {
	text := strings.ToLower(strings.Join(fragments, " "))

	scores := make([]Score, 0, len(d.profiles))
	for _, p := range d.profiles {
		points := 0.0
		for _, kw := range p.Keywords {
			if strings.Contains(text, kw) {
				points += 1.0
			}
		}
		for _, sig := range p.Signals {
			if strings.Contains(text, sig) {
				points += 0.5
			}
		}
		scores = append(scores, Score{Type: p.Type, Points: points})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Points != scores[j].Points {
			return scores[i].Points > scores[j].Points
		}
		return scores[i].Type < scores[j].Type
	})
	return scores
}

// ProfileFor returns the profile registered for a business type, falling
// back to a generic profile for unknown types.
func (d *Detector) ProfileFor(businessType string) Profile {
	for _, p := range d.profiles {
		if p.Type == businessType {
			return p
		}
	}
	return Profile{Type: GeneralType, Taxonomy: "services", PageNames: []string{"Home", "About", "Services", "Contact"}}
}
