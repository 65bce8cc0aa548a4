// Win-condition evaluation over the ownership distribution.
package sim

import (
	"fmt"

	"github.com/talgya/starhold/internal/galaxy"
)

// winShare is the ownership fraction that ends the match.
const winShare = 0.75

// checkOutcome ends the match when either faction holds three quarters of
// the galaxy or the opponent holds nothing. A terminal outcome pauses the
// session; no further ticks mutate state until a new match starts.
func (s *Session) checkOutcome() {
	total := len(s.Galaxy.Systems)
	if total == 0 || s.Outcome != OutcomeNone {
		return
	}

	var player, ai int
	for _, sys := range s.Galaxy.Systems {
		switch sys.Owner {
		case galaxy.FactionPlayer:
			player++
		case galaxy.FactionAI:
			ai++
		}
	}

	switch {
	case float64(player)/float64(total) >= winShare || ai == 0:
		s.finish(OutcomeVictory, fmt.Sprintf("victory: %d of %d systems held", player, total))
	case float64(ai)/float64(total) >= winShare || player == 0:
		s.finish(OutcomeDefeat, fmt.Sprintf("defeat: %d of %d systems lost to the enemy", ai, total))
	}
}

func (s *Session) finish(o Outcome, msg string) {
	s.Outcome = o
	s.Paused = true
	s.logEvent("match", msg)
}
