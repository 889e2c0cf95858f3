// Package labels holds the static UI text for each supported language.
package labels

import (
	"slices"

	"github.com/zjrosen/breathe/internal/breathing"
)

// Supported language codes.
const (
	English = "en"
	Russian = "ru"
)

// Set is the text shown by the presenters for one language.
type Set struct {
	Title    string
	Subtitle string
	Start    string
	Paused   string
	Seconds  string
	Reset    string
	Cycles   string
	Time     string
	Muted    string
	Unmuted  string
	Help     string
	phases   map[breathing.Phase]string
}

// Phase returns the label for p. Idle has no phase label and yields Start.
func (s Set) Phase(p breathing.Phase) string {
	if label, ok := s.phases[p]; ok {
		return label
	}
	return s.Start
}

var sets = map[string]Set{
	English: {
		Title:    "SQUARE BREATHING",
		Subtitle: "Restore balance and lower stress.",
		Start:    "START",
		Paused:   "PAUSED",
		Seconds:  "SECONDS",
		Reset:    "Reset",
		Cycles:   "Cycles",
		Time:     "Time",
		Muted:    "Sound off",
		Unmuted:  "Sound on",
		Help:     "help",
		phases: map[breathing.Phase]string{
			breathing.Inhale:  "INHALE",
			breathing.HoldIn:  "HOLD",
			breathing.Exhale:  "EXHALE",
			breathing.HoldOut: "HOLD",
		},
	},
	Russian: {
		Title:    "КВАДРАТНОЕ ДЫХАНИЕ",
		Subtitle: "Восстановите баланс и снизьте стресс.",
		Start:    "СТАРТ",
		Paused:   "ПАУЗА",
		Seconds:  "СЕКУНДЫ",
		Reset:    "Сброс",
		Cycles:   "Циклы",
		Time:     "Время",
		Muted:    "Звук выключен",
		Unmuted:  "Звук включен",
		Help:     "помощь",
		phases: map[breathing.Phase]string{
			breathing.Inhale:  "ВДОХ",
			breathing.HoldIn:  "ЗАДЕРЖКА",
			breathing.Exhale:  "ВЫДОХ",
			breathing.HoldOut: "ЗАДЕРЖКА",
		},
	},
}

// For returns the label set for lang, falling back to English.
func For(lang string) Set {
	if s, ok := sets[lang]; ok {
		return s
	}
	return sets[English]
}

// IsSupported reports whether lang has a label set.
func IsSupported(lang string) bool {
	_, ok := sets[lang]
	return ok
}

// Languages returns the supported language codes, sorted.
func Languages() []string {
	langs := make([]string, 0, len(sets))
	for lang := range sets {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}
