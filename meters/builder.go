package meters

import "strconv"

// MaxDigits is the largest display precision the web front end renders.
const MaxDigits = 3

// Builder derives values from table rows in order and rejects rows that
// would break the identifier space.
type Builder struct {
	values       []Value
	byID         map[uint32]int
	byIdentifier map[string]int
	byPath       map[string]int
	translations *Translations
}

// NewBuilder returns a builder accumulating translations for locales.
func NewBuilder(locales ...Locale) *Builder {
	if len(locales) == 0 {
		locales = Locales
	}
	return &Builder{
		byID:         make(map[uint32]int),
		byIdentifier: make(map[string]int),
		byPath:       make(map[string]int),
		translations: NewTranslations(locales...),
	}
}

// AddValue derives and records one value row.
func (b *Builder) AddValue(row ValueRow) (Value, error) {
	v := DeriveValue(row)

	if row.Digits < 0 || row.Digits > MaxDigits {
		return Value{}, &InvalidDigitsError{ID: row.ID, Digits: row.Digits}
	}
	if !ValidIdentifier(v.Identifier) {
		return Value{}, &InvalidIdentifierError{ID: row.ID, Identifier: v.Identifier}
	}
	if i, ok := b.byID[row.ID]; ok {
		return Value{}, &DuplicateIDError{ID: row.ID, First: b.values[i].Identifier, Second: v.Identifier}
	}
	if i, ok := b.byIdentifier[v.Identifier]; ok {
		return Value{}, &DuplicateIdentifierError{Identifier: v.Identifier, FirstID: b.values[i].ID, SecondID: row.ID}
	}
	flat := v.Path.Flat()
	if i, ok := b.byPath[flat]; ok {
		return Value{}, &DuplicatePathError{Path: flat, First: b.values[i].Identifier, Second: v.Identifier}
	}

	idx := len(b.values)
	b.values = append(b.values, v)
	b.byID[row.ID] = idx
	b.byIdentifier[v.Identifier] = idx
	b.byPath[flat] = idx
	b.translations.addValue(v)
	return v, nil
}

// AddGroup records the translations of a value group.
func (b *Builder) AddGroup(row GroupRow) {
	b.translations.addGroup(row)
}

// AddFragment records the translations of a name fragment.
func (b *Builder) AddFragment(row FragmentRow) {
	b.translations.addFragment(row)
}

// Values returns the accepted values in table order.
func (b *Builder) Values() []Value {
	return b.values
}

// Translations returns the accumulated bundles.
func (b *Builder) Translations() *Translations {
	return b.translations
}

func formatID(id uint32) string {
	return strconv.FormatUint(uint64(id), 10)
}
