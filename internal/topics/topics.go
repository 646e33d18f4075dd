// Package topics defines the quiz subject catalog and difficulty levels.
package topics

import (
	"fmt"
	"strings"
)

// Level is an ordered difficulty level.
type Level int

const (
	Easy Level = iota
	Medium
	Hard
)

// Levels returns every level from easiest to hardest.
func Levels() []Level {
	return []Level{Easy, Medium, Hard}
}

func (l Level) String() string {
	switch l {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Valid reports whether l is one of the defined levels.
func (l Level) Valid() bool {
	return l >= Easy && l <= Hard
}

// Complexity describes what a question at this level should test.
func (l Level) Complexity() string {
	switch l {
	case Medium:
		return "Focus on connections between events, basic causes and effects, while keeping language simple for 11-12 year olds."
	case Hard:
		return "Include comparisons between events, understanding of consequences, but still appropriate for 6th graders."
	default:
		return "Focus on simple facts, basic dates, and well-known leaders. Use vocabulary appropriate for 11-12 year olds."
	}
}

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown level %q (want Easy, Medium or Hard)", s)
}

// Topic is a quiz subject.
type Topic struct {
	ID          string
	Name        string
	Description string
	// Focus lists the subjects questions should draw from.
	Focus []string
}

// DefaultTopics returns the built-in World Wars catalog.
func DefaultTopics() []Topic {
	return []Topic{
		{
			ID:          "world-war-i",
			Name:        "World War I",
			Description: "The Great War of 1914-1918",
			Focus: []string{
				"Main causes of World War I",
				"Key countries involved (Allies vs Central Powers)",
				"Important dates (1914-1918)",
				"Famous leaders and figures",
				"How the war ended",
			},
		},
		{
			ID:          "world-war-ii",
			Name:        "World War II",
			Description: "The global war of 1939-1945",
			Focus: []string{
				"Major battles and turning points",
				"Key countries involved (Allies vs Axis)",
				"Important dates (1939-1945)",
				"The Holocaust, covered age-appropriately",
				"Pearl Harbor and D-Day",
				"How the war ended",
			},
		},
		{
			ID:          "world-wars-general",
			Name:        "World Wars General",
			Description: "Connections between both world wars",
			Focus: []string{
				"Key figures: Roosevelt, Churchill, Hitler, Stalin",
				"How the first war led to the second",
				"Life on the home front",
				"Consequences of both wars",
			},
		},
	}
}

// Custom builds a topic for a learner-specified subject.
func Custom(name string) Topic {
	name = strings.TrimSpace(name)
	return Topic{
		ID:          Slug(name),
		Name:        name,
		Description: name,
	}
}

// Lookup finds a topic by ID or case-insensitive name.
func Lookup(catalog []Topic, idOrName string) (Topic, bool) {
	needle := strings.TrimSpace(idOrName)
	for _, t := range catalog {
		if t.ID == needle || strings.EqualFold(t.Name, needle) {
			return t, true
		}
	}
	return Topic{}, false
}

// Resolve returns the catalog topic matching idOrName, or a custom topic
// when nothing matches.
func Resolve(catalog []Topic, idOrName string) Topic {
	if t, ok := Lookup(catalog, idOrName); ok {
		return t
	}
	return Custom(idOrName)
}

// Names returns the display names of the given topics.
func Names(catalog []Topic) []string {
	out := make([]string, len(catalog))
	for i, t := range catalog {
		out[i] = t.Name
	}
	return out
}

// Slug lowercases s and joins alphanumeric runs with hyphens.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		default:
			dash = true
		}
	}
	return b.String()
}
