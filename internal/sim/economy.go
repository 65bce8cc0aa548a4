// Economy accrual: the player's credit pool grows with owned production.
// The AI runs no ledger — its fleet production is gated by probability in
// the policy, not by spendable currency.
package sim

import "github.com/talgya/starhold/internal/galaxy"

func (s *Session) accrueEconomy(dt float64) {
	var production float64
	for _, sys := range s.Galaxy.Systems {
		if sys.Owner == galaxy.FactionPlayer {
			production += sys.Production
		}
	}
	s.Credits += production * dt
}
