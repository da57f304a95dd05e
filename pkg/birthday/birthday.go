package birthday

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// NoBirthdayText is returned when no birthday was supplied
	NoBirthdayText = "No birthday provided"
	// InvalidBirthdayText is returned when the birthday cannot be parsed
	InvalidBirthdayText = "Invalid birthday"
)

var (
	ErrNoBirthday      = errors.New("no birthday provided")
	ErrInvalidBirthday = errors.New("invalid birthday")
)

// layouts accepted by Parse, tried in order
var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// Parse converts a user supplied birthday string into a date at UTC midnight.
// The calendar day written in the input is kept, whatever offset it carries.
func Parse(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, ErrNoBirthday
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthday, input)
}

// Age returns the age in whole years on the given day.
// The birthday itself counts as already passed.
// birth is read as a UTC date; today is read in its own zone.
func Age(birth, today time.Time) int {
	by, bm, bd := birth.UTC().Date()
	ty, tm, td := today.Date()
	age := ty - by
	if tm < bm || (tm == bm && td < bd) {
		age--
	}
	return age
}

// AgeText returns the age as a decimal string, or one of the sentinel texts
func AgeText(input string, today time.Time) string {
	birth, err := Parse(input)
	if err != nil {
		return sentinel(err)
	}
	return strconv.Itoa(Age(birth, today))
}

// Format renders "<Month> <day>, <year> (<age> years old)" for a birthday string
func Format(input string, today time.Time) string {
	birth, err := Parse(input)
	if err != nil {
		return sentinel(err)
	}
	return FormatDate(birth, today)
}

// FormatDate renders an already parsed birthday
func FormatDate(birth, today time.Time) string {
	return fmt.Sprintf("%s (%d years old)", birth.UTC().Format("January 2, 2006"), Age(birth, today))
}

func sentinel(err error) string {
	if errors.Is(err, ErrNoBirthday) {
		return NoBirthdayText
	}
	return InvalidBirthdayText
}
