package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/gradeflow/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name string
		pct  float64
		want string
	}{
		{"empty", 0, "[░░░░░░░░░░]   0%"},
		{"half", 0.5, "[█████░░░░░]  50%"},
		{"full", 1, "[██████████] 100%"},
		{"clamped above", 1.7, "[██████████] 100%"},
		{"clamped below", -0.2, "[░░░░░░░░░░]   0%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripANSI(RenderProgress(tt.pct, 10)))
		})
	}
}

func TestRenderScoreBar_MarksGoal(t *testing.T) {
	out := stripANSI(RenderScoreBar(10, 15, domain.StandingSatisfactory, 10))
	assert.Equal(t, "[█████░░│░░]", out)

	full := stripANSI(RenderScoreBar(20, 20, domain.StandingOnTrack, 10))
	assert.Equal(t, 1, strings.Count(full, goalMarker), "goal at the top stays inside the bar")
	assert.Equal(t, 9, strings.Count(full, filledBlock))
}
