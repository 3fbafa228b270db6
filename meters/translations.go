package meters

import "strings"

// MissingPrefix starts every placeholder for an untranslated label so the
// gap stays visible in the UI and greppable in generated files.
const MissingPrefix = "TRANSLATION_MISSING "

// Entry is one key/value pair of a translation bundle.
type Entry struct {
	Key   string
	Value string
}

// Bundle collects the translation entries of one locale by namespace.
type Bundle struct {
	Locale    Locale
	Values    []Entry
	Groups    []Entry
	Fragments []Entry
}

// Translations holds one bundle per locale.
type Translations struct {
	locales []Locale
	bundles map[Locale]*Bundle
}

// NewTranslations creates empty bundles for locales.
func NewTranslations(locales ...Locale) *Translations {
	t := &Translations{bundles: make(map[Locale]*Bundle, len(locales))}
	for _, l := range locales {
		if _, ok := t.bundles[l]; ok {
			continue
		}
		t.locales = append(t.locales, l)
		t.bundles[l] = &Bundle{Locale: l}
	}
	return t
}

// Locales returns the locales in creation order.
func (t *Translations) Locales() []Locale {
	return t.locales
}

// Bundle returns the bundle for l, or nil.
func (t *Translations) Bundle(l Locale) *Bundle {
	return t.bundles[l]
}

func (t *Translations) addValue(v Value) {
	key := "value_" + formatID(v.ID)
	for _, l := range t.locales {
		label := v.Labels[l]
		b := t.bundles[l]
		b.Values = append(b.Values,
			Entry{Key: key, Value: orMissing(label.Text, v.Name)},
			Entry{Key: key + "_muted", Value: label.Muted},
		)
	}
}

func (t *Translations) addGroup(row GroupRow) {
	name := joinVisible(row.classifiers(), " ")
	key := "group_" + strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	for _, l := range t.locales {
		label := row.Labels[l]
		b := t.bundles[l]
		b.Groups = append(b.Groups,
			Entry{Key: key, Value: orMissing(label.Text, name)},
			Entry{Key: key + "_muted", Value: label.Muted},
		)
	}
}

func (t *Translations) addFragment(row FragmentRow) {
	key := "fragment_" + strings.ToLower(strings.ReplaceAll(row.Fragment, " ", "_"))
	for _, l := range t.locales {
		b := t.bundles[l]
		b.Fragments = append(b.Fragments, Entry{Key: key, Value: orMissing(row.Labels[l].Text, row.Fragment)})
	}
}

func orMissing(text, name string) string {
	if text == "" {
		return MissingPrefix + name
	}
	return text
}
