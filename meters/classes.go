package meters

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classes lists the meter classes by ordinal.
//
// NEVER edit or remove entries, only append. Ordinals are stored in device
// configs and exchanged over the API.
var Classes = []string{
	"None",
	"RS485 Bricklet",
	"EVSE V2",
	"Energy Manager",
	"API",
	"Sun Spec",
	"Modbus TCP",
	"MQTT Subscription",
}

// MaxClasses is the number of ordinals the firmware's uint8 enum can hold.
const MaxClasses = 256

// ClassEntry is one meter class with its enum member name.
type ClassEntry struct {
	Name       string
	Identifier string
	Ordinal    int
}

// ClassIdentifier turns a class name into CamelCase without lowering the
// rest of each word: "RS485 Bricklet" becomes "RS485Bricklet".
func ClassIdentifier(name string) string {
	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		b.WriteString(caser.String(word))
	}
	return b.String()
}

// ClassEntries numbers names in order.
func ClassEntries(names []string) ([]ClassEntry, error) {
	if len(names) > MaxClasses {
		return nil, fmt.Errorf("%d meter classes exceed the limit of %d", len(names), MaxClasses)
	}

	entries := make([]ClassEntry, 0, len(names))
	seen := make(map[string]int, len(names))
	for i, name := range names {
		id := ClassIdentifier(name)
		if !ValidIdentifier(id) {
			return nil, fmt.Errorf("meter class %q derives invalid identifier %q", name, id)
		}
		if prev, ok := seen[id]; ok {
			return nil, fmt.Errorf("meter classes %d and %d both derive identifier %s", prev, i, id)
		}
		seen[id] = i
		entries = append(entries, ClassEntry{Name: name, Identifier: id, Ordinal: i})
	}
	return entries, nil
}
