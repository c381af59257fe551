// Package observe extracts persona traits, hobbies and speaking style from
// raw utterances using fixed lexical cues. Observations are sticky: once a
// tag has been attributed it is never revoked.
package observe

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const snippetLen = 100

// Snapshot is everything one persona has gathered about their partner.
// Observed hobbies surface as interests; the remaining fields exist for
// profile merging and stay at their zero values during live dialogue.
type Snapshot struct {
	PersonalityTraits  []string
	Interests          []string
	CommunicationStyle []string
	Goals              []string
	Age                int
	Location           string
	Occupation         string
}

// NewObservations lists the tags a single utterance added.
type NewObservations struct {
	PersonalityTraits  []string
	Hobbies            []string
	CommunicationStyle []string
}

func (n NewObservations) Empty() bool {
	return len(n.PersonalityTraits) == 0 && len(n.Hobbies) == 0 && len(n.CommunicationStyle) == 0
}

// Record is one history entry: when something new was learned and from what.
type Record struct {
	At      time.Time
	Snippet string
	Added   NewObservations
}

// Observer accumulates observations about a single named persona.
type Observer struct {
	name    string
	traits  []string
	hobbies []string
	styles  []string
	history []Record
}

func NewObserver(name string) *Observer {
	return &Observer{name: name}
}

func (o *Observer) Name() string { return o.name }

// Observe scans one utterance and returns the newly attributed tags. The
// history gets an entry only when the utterance taught us something.
func (o *Observer) Observe(message string) NewObservations {
	lower := strings.ToLower(message)

	added := NewObservations{
		PersonalityTraits:  matchNew(lower, traitCues, o.traits),
		Hobbies:            matchNew(lower, hobbyCues, o.hobbies),
		CommunicationStyle: matchNew(lower, styleCues, o.styles),
	}

	o.traits = append(o.traits, added.PersonalityTraits...)
	o.hobbies = append(o.hobbies, added.Hobbies...)
	o.styles = append(o.styles, added.CommunicationStyle...)

	if !added.Empty() {
		o.history = append(o.history, Record{
			At:      time.Now(),
			Snippet: snippet(message),
			Added:   added,
		})
	}
	return added
}

// Scan extracts tags from free text without touching any observer state.
// The profile importer uses it to mine scraped pages.
func Scan(text string) NewObservations {
	lower := strings.ToLower(text)
	return NewObservations{
		PersonalityTraits:  matchNew(lower, traitCues, nil),
		Hobbies:            matchNew(lower, hobbyCues, nil),
		CommunicationStyle: matchNew(lower, styleCues, nil),
	}
}

func (o *Observer) Snapshot() Snapshot {
	return Snapshot{
		PersonalityTraits:  append([]string(nil), o.traits...),
		Interests:          append([]string(nil), o.hobbies...),
		CommunicationStyle: append([]string(nil), o.styles...),
	}
}

func (o *Observer) History() []Record {
	return append([]Record(nil), o.history...)
}

func (o *Observer) Reset() {
	o.traits = nil
	o.hobbies = nil
	o.styles = nil
	o.history = nil
}

// Summary renders the accumulated picture as one human-readable line.
func (o *Observer) Summary() string {
	var parts []string
	if len(o.traits) > 0 {
		parts = append(parts, "Personality: "+strings.Join(o.traits, ", "))
	}
	if len(o.hobbies) > 0 {
		parts = append(parts, "Interests: "+strings.Join(o.hobbies, ", "))
	}
	if len(o.styles) > 0 {
		parts = append(parts, "Communication style: "+strings.Join(o.styles, ", "))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("No specific traits observed for %s yet.", o.name)
	}
	return fmt.Sprintf("%s appears to be: %s", o.name, strings.Join(parts, "; "))
}

func matchNew(lower string, cues map[string][]string, seen []string) []string {
	var out []string
	for tag, words := range cues {
		if contains(seen, tag) {
			continue
		}
		for _, w := range words {
			if strings.Contains(lower, w) {
				out = append(out, tag)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func snippet(message string) string {
	if len(message) > snippetLen {
		return message[:snippetLen] + "..."
	}
	return message
}
