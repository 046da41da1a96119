package detector

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDetector() *Detector {
	return New(DefaultProfiles(), zap.NewNop())
}

func TestDetectBusinessTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "law firm",
			text: "Our attorneys handle litigation across every practice area. Speak to a lawyer today.",
			want: "law_firm",
		},
		{
			name: "dental practice",
			text: "Family dental care. Our dentist offers teeth whitening for a brighter smile.",
			want: "dental_practice",
		},
		{
			name: "restaurant",
			text: "View our menu and make a reservation. Our chef sources local cuisine.",
			want: "restaurant",
		},
		{
			name: "no match",
			text: "Welcome to our homepage. We are glad you are here.",
			want: GeneralType,
		},
		{
			name: "empty input",
			text: "",
			want: GeneralType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, newTestDetector().Detect(tt.text))
		})
	}
}

func TestDetectJoinsFragments(t *testing.T) {
	t.Parallel()

	d := newTestDetector()
	got := d.Detect("Smith & Associates", "attorney", "legal counsel for families")
	require.Equal(t, "law_firm", got)
}

func TestSignalsWeighHalf(t *testing.T) {
	t.Parallel()

	d := newTestDetector()
	scores := d.ScoreAll("member of the state bar association")

	require.Equal(t, "law_firm", scores[0].Type)
	require.Equal(t, 0.5, scores[0].Points)
}

func TestScoreAllOrderingIsStable(t *testing.T) {
	t.Parallel()

	d := newTestDetector()
	scores := d.ScoreAll("nothing relevant here")

	require.Len(t, scores, len(DefaultProfiles()))
	for i := 1; i < len(scores); i++ {
		if scores[i-1].Points == scores[i].Points {
			require.Less(t, scores[i-1].Type, scores[i].Type)
		}
	}
}

func TestProfilesAreCopied(t *testing.T) {
	t.Parallel()

	profiles := DefaultProfiles()
	d := New(profiles, zap.NewNop())

	// Mutating the caller's slice must not affect the detector.
	profiles[0] = Profile{Type: "mutated"}
	require.Equal(t, "law_firm", d.ProfileFor("law_firm").Type)
}

func TestProfileForUnknownType(t *testing.T) {
	t.Parallel()

	p := newTestDetector().ProfileFor("circus")
	require.Equal(t, GeneralType, p.Type)
	require.NotEmpty(t, p.PageNames)
}
