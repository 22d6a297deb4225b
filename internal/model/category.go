package model

import "strings"

// Category classifies what an expense was spent on.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTravel        Category = "Travel"
	CategorySnacking      Category = "Snacking"
	CategoryShopping      Category = "Shopping"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryImpulse       Category = "Impulse"
	CategoryOther         Category = "Other"

	// CategoryNone is returned by aggregates over an empty collection.
	// It is never a valid record category.
	CategoryNone Category = "None"
)

var categories = []Category{
	CategoryFood,
	CategoryTravel,
	CategorySnacking,
	CategoryShopping,
	CategoryUtilities,
	CategoryEntertainment,
	CategoryImpulse,
	CategoryOther,
}

// Categories returns the recordable categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// Valid reports whether c is one of the recordable categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category label case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Mood is how the user felt when logging an expense.
type Mood string

const (
	MoodHappy       Mood = "happy"
	MoodNeutral     Mood = "neutral"
	MoodStressed    Mood = "stressed"
	MoodOverwhelmed Mood = "overwhelmed"
)

var moods = []Mood{MoodHappy, MoodNeutral, MoodStressed, MoodOverwhelmed}

// Moods returns the selectable moods in display order.
func Moods() []Mood {
	out := make([]Mood, len(moods))
	copy(out, moods)
	return out
}

// Valid reports whether m is a known mood.
func (m Mood) Valid() bool {
	for _, known := range moods {
		if m == known {
			return true
		}
	}
	return false
}

// ParseMood resolves a mood label case-insensitively.
func ParseMood(s string) (Mood, bool) {
	s = strings.TrimSpace(s)
	for _, known := range moods {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}
