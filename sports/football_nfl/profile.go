// Package football_nfl holds the NFL edge-engine profile: key-number values,
// home-field advantage and league scoring baselines.
package football_nfl

import (
	"sort"

	"github.com/mkrebs/gridline/pkg/models"
)

// keyNumberValues maps margin-of-victory numbers to percentage edge values.
// NFL margins cluster hard on 3 and 7 (field goal, touchdown). Tuned
// constants; preserved as given.
var keyNumberValues = map[int]float64{
	3:  8.0,
	7:  6.0,
	6:  4.0,
	10: 3.0,
	4:  2.5,
	14: 2.0,
	1:  1.5,
	17: 1.0,
}

// Profile implements contracts.SportProfile for the NFL.
type Profile struct {
	homeField float64
	avgPPG    float64
	avgPA     float64
}

// NewProfile returns the NFL profile with standard constants.
func NewProfile() *Profile {
	return &Profile{
		homeField: 2.0,
		avgPPG:    22.5,
		avgPA:     22.5,
	}
}

func (p *Profile) Key() models.Sport { return models.SportNFL }

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

// ValidateLine rejects spreads outside the plausible NFL range.
func (p *Profile) ValidateLine(line float64) error {
	if line < -30 || line > 30 {
		return &models.ValidationError{Field: "market_line", Value: line, Reason: "outside plausible NFL spread range"}
	}
	return nil
}

// ValidateTotal rejects totals outside the plausible NFL range.
func (p *Profile) ValidateTotal(total float64) error {
	if total < 25 || total > 75 {
		return &models.ValidationError{Field: "market_total", Value: total, Reason: "outside plausible NFL total range"}
	}
	return nil
}
