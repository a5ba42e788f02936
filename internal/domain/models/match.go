package models

import "time"

const (
	LeagueLPL = "LPL"
	LeagueLCK = "LCK"

	LocalTimeLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
)

// TargetLeagues is the fixed allow-list of leagues a digest may contain.
var TargetLeagues = []string{LeagueLPL, LeagueLCK}

// RawMatch is one upcoming match exactly as the upstream returned it.
type RawMatch map[string]any

type ScheduledMatch struct {
	Name       string
	League     string
	StartLocal time.Time
}

func (m ScheduledMatch) LocalTime() string {
	return m.StartLocal.Format(LocalTimeLayout)
}

type LeagueGroup struct {
	League  string
	Matches []ScheduledMatch
}

// Digest is today's matches grouped by league, in the order each league was
// first seen upstream.
type Digest struct {
	Date   time.Time
	Groups []LeagueGroup
}

func (d Digest) Empty() bool {
	return len(d.Groups) == 0
}

func (d Digest) Count() int {
	n := 0
	for _, g := range d.Groups {
		n += len(g.Matches)
	}
	return n
}

func (d *Digest) Add(m ScheduledMatch) {
	for i := range d.Groups {
		if d.Groups[i].League == m.League {
			d.Groups[i].Matches = append(d.Groups[i].Matches, m)
			return
		}
	}
	d.Groups = append(d.Groups, LeagueGroup{League: m.League, Matches: []ScheduledMatch{m}})
}

type Delivery struct {
	Channel  string
	Response string
}
