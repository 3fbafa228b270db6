// Package meters holds the meter value identifier space: value rows, the
// identifiers and tree paths derived from them, phase grouping, translation
// bundles and the meter class enumeration.
package meters

import "strings"

const internalMarker = "*"

// Classifier is one classifier column of a table row. Internal classifiers
// take part in the tree path but are left out of display names and
// identifiers.
type Classifier struct {
	Text     string
	Internal bool
}

// ParseClassifier reads the table convention where a leading "*" marks an
// internal classifier.
func ParseClassifier(raw string) Classifier {
	if strings.HasPrefix(raw, internalMarker) {
		return Classifier{Text: strings.ReplaceAll(raw, internalMarker, ""), Internal: true}
	}
	return Classifier{Text: raw}
}

// Empty reports whether the classifier carries no text.
func (c Classifier) Empty() bool {
	return c.Text == ""
}

// Visible reports whether the classifier contributes to display names.
func (c Classifier) Visible() bool {
	return !c.Empty() && !c.Internal
}

// Segment returns the tree path segment for the classifier.
func (c Classifier) Segment() string {
	return strings.ToLower(strings.ReplaceAll(c.Text, " ", "_"))
}

// Locale names a translation language.
type Locale string

const (
	LocaleEN Locale = "en"
	LocaleDE Locale = "de"
)

// Locales lists the supported locales in output order.
var Locales = []Locale{LocaleEN, LocaleDE}

// IsLocale reports whether s names a supported locale.
func IsLocale(s string) bool {
	for _, l := range Locales {
		if string(l) == s {
			return true
		}
	}
	return false
}

// Label is a display string with its muted variant.
type Label struct {
	Text  string
	Muted string
}

// ValueRow is one row of the value identifier table.
type ValueRow struct {
	ID           uint32
	Measurand    Classifier
	Submeasurand Classifier
	Phase        Classifier
	Direction    Classifier
	Kind         Classifier
	Unit         string
	Digits       int
	Labels       map[Locale]Label
}

func (r ValueRow) classifiers() []Classifier {
	return []Classifier{r.Measurand, r.Submeasurand, r.Phase, r.Direction, r.Kind}
}

func (r ValueRow) classifiersWithoutPhase() []Classifier {
	return []Classifier{r.Measurand, r.Submeasurand, r.Direction, r.Kind}
}

// GroupRow is one row of the value group table. Groups are keyed like the
// phase-less identifier of the values they collect.
type GroupRow struct {
	Measurand    Classifier
	Submeasurand Classifier
	Direction    Classifier
	Kind         Classifier
	Labels       map[Locale]Label
}

func (r GroupRow) classifiers() []Classifier {
	return []Classifier{r.Measurand, r.Submeasurand, r.Direction, r.Kind}
}

// FragmentRow is one row of the fragment table. Fragments have no muted
// variant; Label.Muted is ignored.
type FragmentRow struct {
	Fragment string
	Labels   map[Locale]Label
}

func joinVisible(cs []Classifier, sep string) string {
	parts := make([]string, 0, len(cs))
	for _, c := range cs {
		if c.Visible() {
			parts = append(parts, c.Text)
		}
	}
	return strings.Join(parts, sep)
}
