package contracts

import "github.com/mkrebs/gridline/pkg/models"

// SportProfile carries the per-sport tuned constants: key-number values,
// home-field advantage, league scoring averages and plausible-input ranges.
// The numeric tables are domain knowledge and are preserved as given, not
// re-derived.
type SportProfile interface {
	Key() models.Sport

	// KeyNumberValue returns the percentage value of a margin-of-victory
	// number, 0 for non-key margins. Margins are absolute values.
	KeyNumberValue(margin int) float64

	// KeyNumbers returns the key margins in descending value order.
	KeyNumbers() []int

	HomeFieldAdvantage() float64
	LeagueAveragePPG() float64
	LeagueAveragePA() float64

	// ValidateLine and ValidateTotal reject implausible market inputs at the
	// boundary, before any scoring proceeds.
	ValidateLine(line float64) error
	ValidateTotal(total float64) error
}
