package domain

import (
	"errors"
	"fmt"
	"time"
)

const (
	clockLayout   = "15:04:05"
	secondsPerDay = 24 * 60 * 60
)

var ErrInvalidClockTime = errors.New("invalid clock time")

// ClockTime is a wall-clock time of day, stored as seconds after midnight.
//
// Arithmetic wraps modulo 24 hours; there is no notion of a day boundary,
// so a route running past midnight reads as an early-morning time.
type ClockTime int

// Parse an HH:MM:SS string.
func ParseClock(s string) (ClockTime, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClockTime, s)
	}
	return ClockTime(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
}

// MustParseClock is ParseClock for constants and tests.
func MustParseClock(s string) ClockTime {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	s := int(c.wrap())
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

func (c ClockTime) Hour() int { return int(c.wrap()) / 3600 }

func (c ClockTime) AddMinutes(m int) ClockTime {
	return (c + ClockTime(m*60)).wrap()
}

func (c ClockTime) SubMinutes(m int) ClockTime {
	return (c - ClockTime(m*60)).wrap()
}

// MinutesSince returns whole minutes from start to c, truncated toward zero.
// The result is negative when c reads earlier than start.
func (c ClockTime) MinutesSince(start ClockTime) int {
	return int(c-start) / 60
}

func (c ClockTime) wrap() ClockTime {
	return ((c % secondsPerDay) + secondsPerDay) % secondsPerDay
}

func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ClockTime) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Inclusive [From, To] window of clock times.
type TimeWindow struct {
	From ClockTime `json:"from"`
	To   ClockTime `json:"to"`
}

func (w TimeWindow) Contains(t ClockTime) bool {
	return w.From <= t && t <= w.To
}
