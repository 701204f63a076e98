// Package football_ncaa holds the college football profile. Wider scoring
// distributions flatten the margin histogram, so every key number carries
// strictly less value than its NFL counterpart.
package football_ncaa

import (
	"sort"

	"github.com/mkrebs/gridline/pkg/models"
)

// Tuned constants; preserved as given.
var keyNumberValues = map[int]float64{
	3:  5.0,
	7:  4.0,
	10: 2.5,
	6:  2.0,
	4:  1.5,
	14: 1.5,
	17: 1.0,
	21: 1.0,
}

// Profile implements contracts.SportProfile for college football.
type Profile struct {
	homeField float64
	avgPPG    float64
	avgPA     float64
}

// NewProfile returns the college football profile with standard constants.
func NewProfile() *Profile {
	return &Profile{
		homeField: 2.5,
		avgPPG:    28.0,
		avgPA:     28.0,
	}
}

func (p *Profile) Key() models.Sport { return models.SportNCAA }

func (p *Profile) KeyNumberValue(margin int) float64 {
	if margin < 0 {
		margin = -margin
	}
	return keyNumberValues[margin]
}

func (p *Profile) KeyNumbers() []int {
	keys := make([]int, 0, len(keyNumberValues))
	for k := range keyNumberValues {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keyNumberValues[keys[i]] != keyNumberValues[keys[j]] {
			return keyNumberValues[keys[i]] > keyNumberValues[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

func (p *Profile) HomeFieldAdvantage() float64 { return p.homeField }
func (p *Profile) LeagueAveragePPG() float64   { return p.avgPPG }
func (p *Profile) LeagueAveragePA() float64    { return p.avgPA }

// ValidateLine rejects spreads outside the plausible college range. College
// lines run far wider than the NFL's.
func (p *Profile) ValidateLine(line float64) error {
	if line < -60 || line > 60 {
		return &models.ValidationError{Field: "market_line", Value: line, Reason: "outside plausible college spread range"}
	}
	return nil
}

// ValidateTotal rejects totals outside the plausible college range.
func (p *Profile) ValidateTotal(total float64) error {
	if total < 25 || total > 100 {
		return &models.ValidationError{Field: "market_total", Value: total, Reason: "outside plausible college total range"}
	}
	return nil
}
