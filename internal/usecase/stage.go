package usecase

import (
	"fmt"

	"github.com/spectix11/ai-sdr/internal/entity"
)

// CurrentStage returns the label of the most advanced sequence step already
// sent ("Day N Sent"), or "Not Started" when nothing went out yet.
//
// The scan runs 4→1 and takes the highest true flag. Steps marked sent out of
// order are tolerated: we report position, not validity.
func CurrentStage(l *entity.Lead) string {
	for n := entity.SequenceSteps; n >= 1; n-- {
		if l.DaySent(n) {
			return fmt.Sprintf("Day %d Sent", n)
		}
	}
	return "Not Started"
}

// NextStage returns "Awaiting Day N" for the first unsent step (scan 1→4), or
// "Sequence Complete" when all four went out.
func NextStage(l *entity.Lead) string {
	for n := 1; n <= entity.SequenceSteps; n++ {
		if !l.DaySent(n) {
			return fmt.Sprintf("Awaiting Day %d", n)
		}
	}
	return "Sequence Complete"
}
