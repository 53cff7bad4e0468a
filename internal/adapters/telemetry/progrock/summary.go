package progrock

import (
	"time"

	"github.com/emdiet/popl/internal/ui/style"
	"github.com/vito/progrock"
)

// summaryPrecision is the rounding applied to reported step durations.
const summaryPrecision = 10 * time.Millisecond

// summarize renders one step, e.g. "✓ install flask (1.24s)". The boolean is
// false for failed, canceled or unfinished steps.
func summarize(v *progrock.Vertex) (string, bool) {
	if v.GetCompleted() == nil {
		return v.GetName() + " did not finish", false
	}

	elapsed := v.GetCompleted().AsTime().Sub(v.GetStarted().AsTime()).Round(summaryPrecision)
	switch {
	case v.GetCanceled():
		return v.GetName() + " canceled after " + elapsed.String(), false
	case v.Error != nil:
		return v.GetName() + " failed after " + elapsed.String(), false
	default:
		return style.Check + " " + v.GetName() + " (" + elapsed.String() + ")", true
	}
}
