package models

import "time"

// GameResult is one final score from the historical results feed.
// Points are always non-negative; loaders drop rows that fail to parse.
type GameResult struct {
	Date       time.Time `json:"date"`
	HomeTeam   string    `json:"home_team"`
	AwayTeam   string    `json:"away_team"`
	HomePoints int       `json:"home_points"`
	AwayPoints int       `json:"away_points"`
}

// Margin returns the home point differential (home - away).
func (g GameResult) Margin() int {
	return g.HomePoints - g.AwayPoints
}

// Total returns the combined score.
func (g GameResult) Total() int {
	return g.HomePoints + g.AwayPoints
}

// RatingMap maps a team name to its strength in points. Teams absent from
// the map rate 0.0 wherever they are looked up.
type RatingMap map[string]float64

// Rating looks up a team, defaulting to 0.0 for unseen teams.
func (r RatingMap) Rating(team string) float64 {
	return r[team]
}

// Clone returns a shallow copy so fits never mutate a caller's map.
func (r RatingMap) Clone() RatingMap {
	out := make(RatingMap, len(r))
	for team, rating := range r {
		out[team] = rating
	}
	return out
}
