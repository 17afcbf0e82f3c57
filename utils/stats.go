package utils

import (
	"sync"
	"time"
)

// Stats for performance monitoring, updated by the playback goroutine and read
// by the caller.
type Stats struct {
	mu sync.Mutex

	generationsPerSecond float64
	averagePopulation    float64
	totalGenerations     int
	population           int
	stagnant             bool
	startTime            time.Time
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Population           int
	Stagnant             bool
	Runtime              time.Duration
}

func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalGenerations = generation
	s.population = population
	if duration > 0 {
		s.generationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.averagePopulation == 0 {
		s.averagePopulation = float64(population)
	} else {
		s.averagePopulation = (s.averagePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// SetStagnant records whether the last generation repeated a recent one.
func (s *Stats) SetStagnant(stagnant bool) {
	s.mu.Lock()
	s.stagnant = stagnant
	s.mu.Unlock()
}

// Reset restarts the clock and clears all counters.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generationsPerSecond = 0
	s.averagePopulation = 0
	s.totalGenerations = 0
	s.population = 0
	s.stagnant = false
	s.startTime = time.Now()
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatsSnapshot{
		GenerationsPerSecond: s.generationsPerSecond,
		AveragePopulation:    s.averagePopulation,
		TotalGenerations:     s.totalGenerations,
		Population:           s.population,
		Stagnant:             s.stagnant,
		Runtime:              time.Since(s.startTime),
	}
}
