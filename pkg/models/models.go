package models

import "time"

// Sport identifies a supported league.
type Sport string

const (
	SportNFL  Sport = "football_nfl"
	SportNCAA Sport = "football_ncaaf"
)

// Side identifies which side of a spread a bet takes.
type Side string

const (
	SideHome Side = "HOME"
	SideAway Side = "AWAY"
	SideNone Side = "NONE"
)

// Classification is the discrete strength tier assigned to an edge.
type Classification string

const (
	ClassMaxBet   Classification = "MAX_BET"
	ClassStrong   Classification = "STRONG"
	ClassModerate Classification = "MODERATE"
	ClassLean     Classification = "LEAN"
	ClassNoPlay   Classification = "NO_PLAY"
)

// TeamRating is a power rating for one team in one week. Published ratings
// are immutable; the blender returns a new value rather than mutating.
type TeamRating struct {
	Team       string    `json:"team"`
	Baseline   float64   `json:"baseline"`
	Blended    float64   `json:"blended"`
	Adjustment float64   `json:"adjustment"`
	Week       int       `json:"week"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PerformanceMetrics holds current-season performance signals for a team.
type PerformanceMetrics struct {
	PointsPerGame        float64 `json:"points_per_game"`
	PointsAllowedPerGame float64 `json:"points_allowed_per_game"`
	TurnoverMargin       float64 `json:"turnover_margin"`
}

// Weather holds the observed forecast for a game site.
type Weather struct {
	TemperatureF      float64 `json:"temperature_f"`
	WindSpeedMPH      float64 `json:"wind_speed_mph"`
	PrecipType        string  `json:"precipitation_type"`        // "rain", "snow", or ""
	PrecipProbability float64 `json:"precipitation_probability"` // 0-100
	Dome              bool    `json:"dome"`
}

// ATSRecord is a team's against-the-spread record over its last five games.
type ATSRecord struct {
	Covers int `json:"covers"`
	Games  int `json:"games"`
}

// Motivation carries the emotional context for one side of a game.
type Motivation struct {
	Elimination      bool    `json:"elimination"`
	Clinch           bool    `json:"clinch"`
	Seeding          bool    `json:"seeding"`
	CoachingChange   bool    `json:"coaching_change"`
	CoachBoost       float64 `json:"coach_boost,omitempty"` // overrides the default when > 0
	InjuryMotivation float64 `json:"injury_motivation,omitempty"`
}

// InjuryReport is one roster entry from the injury source.
type InjuryReport struct {
	Player   string `json:"player"`
	Position string `json:"position"`
	Status   string `json:"status"` // OUT, DOUBTFUL, QUESTIONABLE
}

// GameContext is the read-only situational input for one game. It is built
// once per game before scoring and never mutated by the engine.
type GameContext struct {
	GameID   string `json:"game_id"`
	Sport    Sport  `json:"sport"`
	Week     int    `json:"week"`
	AwayTeam string `json:"away_team"`
	HomeTeam string `json:"home_team"`

	HomeRestDays int     `json:"home_rest_days"`
	AwayRestDays int     `json:"away_rest_days"`
	TravelMiles  float64 `json:"travel_miles"` // away team's trip; home team is exempt

	Divisional  bool `json:"divisional"`
	Rivalry     bool `json:"rivalry"`
	RevengeHome bool `json:"revenge_home"`
	RevengeAway bool `json:"revenge_away"`

	HomeATS ATSRecord `json:"home_ats"`
	AwayATS ATSRecord `json:"away_ats"`

	// Weather is nil when no forecast is available for the game site; a
	// zero-valued forecast would otherwise read as extreme cold.
	Weather *Weather `json:"weather,omitempty"`

	HomeMotivation Motivation `json:"home_motivation"`
	AwayMotivation Motivation `json:"away_motivation"`

	HomeInjuries []InjuryReport `json:"home_injuries,omitempty"`
	AwayInjuries []InjuryReport `json:"away_injuries,omitempty"`
}

// BetTiming carries the key-number timing heuristic: favorites as early as
// possible, underdogs as late as possible.
type BetTiming struct {
	When   string `json:"when"`   // "EARLY" or "LATE"
	Urgent bool   `json:"urgent"` // current line within 0.5 of a key number
}

// EdgeTerms records the magnitude of each contributing term so an analysis
// can be audited after the fact.
type EdgeTerms struct {
	RatingDiff        float64            `json:"rating_diff"`
	HomeField         float64            `json:"home_field"`
	SituationalSpread float64            `json:"situational_spread"`
	EmotionalSpread   float64            `json:"emotional_spread"`
	InjurySpread      float64            `json:"injury_spread"`
	WeatherTotal      float64            `json:"weather_total"`
	KeyNumberPct      float64            `json:"key_number_pct"`
	Situational       map[string]float64 `json:"situational,omitempty"`
	Emotional         map[string]float64 `json:"emotional,omitempty"`
	WeatherSeverity   map[string]float64 `json:"weather_severity,omitempty"`
}

// EdgeAnalysis is the aggregator's output for one game. Created once,
// immutable. Lines use the home-perspective convention throughout: a
// negative line means the home team is favored.
type EdgeAnalysis struct {
	GameID         string         `json:"game_id"`
	Sport          Sport          `json:"sport"`
	PredictedLine  float64        `json:"predicted_line"`
	MarketLine     float64        `json:"market_line"`
	PredictedTotal float64        `json:"predicted_total"`
	MarketTotal    float64        `json:"market_total"`
	EdgePoints     float64        `json:"edge_points"` // signed, positive = home value
	TotalEdge      float64        `json:"total_edge"`
	EdgePercent    float64        `json:"edge_pct"`
	Side           Side           `json:"side"`
	KeyNumbers     []int          `json:"key_numbers_crossed"`
	Classification Classification `json:"classification"`
	StarRating     float64        `json:"star_rating"`
	Recommendation string         `json:"recommendation"`
	Timing         BetTiming      `json:"timing"`
	Terms          EdgeTerms      `json:"terms"`
}

// BetRecommendation is the sizer's accepted output. A new recommendation is
// always a new record; existing ones are never mutated.
type BetRecommendation struct {
	ID                string         `json:"id"`
	GameID            string         `json:"game_id"`
	Side              Side           `json:"side"`
	Line              float64        `json:"line"`
	Odds              int            `json:"odds"` // American odds taken
	EdgePoints        float64        `json:"edge_points"`
	EdgePercent       float64        `json:"edge_pct"`
	Classification    Classification `json:"classification"`
	StarRating        float64        `json:"star_rating"`
	StakeFraction     float64        `json:"stake_fraction"`
	StakeAmount       float64        `json:"stake_amount"`
	Bankroll          float64        `json:"bankroll"`
	RemainingCapacity float64        `json:"remaining_capacity"`
	Capped            bool           `json:"capped,omitempty"`
	CapReason         string         `json:"cap_reason,omitempty"`
	PlacedAt          time.Time      `json:"placed_at"`
}

// CLVStatus is the lifecycle state of a tracked bet.
type CLVStatus string

const (
	CLVPending   CLVStatus = "PENDING"
	CLVLineKnown CLVStatus = "LINE_KNOWN"
	CLVResolved  CLVStatus = "RESOLVED"
)

// BetResult is the settlement outcome of a tracked bet.
type BetResult string

const (
	ResultPending BetResult = "pending"
	ResultWin     BetResult = "WIN"
	ResultLoss    BetResult = "LOSS"
	ResultPush    BetResult = "PUSH"
)

// CLVRecord tracks one recommendation through closing-line-value resolution.
// ClosingLine, ClosingOdds and CLVPoints stay nil until the closing line is
// known; CLVPoints is absent, not zero, when either leg is missing.
type CLVRecord struct {
	RecommendationID string    `json:"recommendation_id"`
	GameID           string    `json:"game_id"`
	Side             Side      `json:"side"`
	Status           CLVStatus `json:"status"`
	OpeningLine      float64   `json:"opening_line"`
	OpeningOdds      int       `json:"opening_odds"`
	ClosingLine      *float64  `json:"closing_line,omitempty"`
	ClosingOdds      *int      `json:"closing_odds,omitempty"`
	Result           BetResult `json:"result"`
	CLVPoints        *float64  `json:"clv_points,omitempty"`
	ROI              float64   `json:"roi"`
	Stake            float64   `json:"stake"`
	Version          int       `json:"version"`
	PlacedAt         time.Time `json:"placed_at"`
	LineAt           time.Time `json:"line_at,omitempty"`
	ResolvedAt       time.Time `json:"resolved_at,omitempty"`
}

// SlateGame is one game's worth of engine input, as published on the
// lines.market.<sport> stream by the upstream collaborators.
type SlateGame struct {
	Context         GameContext         `json:"context"`
	HomeBaseline    float64             `json:"home_baseline"`
	AwayBaseline    float64             `json:"away_baseline"`
	HomePerformance *PerformanceMetrics `json:"home_performance,omitempty"`
	AwayPerformance *PerformanceMetrics `json:"away_performance,omitempty"`
	MarketLine      float64             `json:"market_line"`
	MarketTotal     float64             `json:"market_total"`
	MarketOddsHome  int                 `json:"market_odds_home"`
	MarketOddsAway  int                 `json:"market_odds_away"`
	PostedAt        time.Time           `json:"posted_at"`
}
