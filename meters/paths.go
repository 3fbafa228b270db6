package meters

// ValidatePaths checks that no two values share a tree path and that no path
// is a structural prefix of another. The first conflict in table order is
// returned.
func ValidatePaths(values []Value) error {
	for i := range values {
		for k := range values {
			if i == k {
				continue
			}
			a, b := values[i].Path, values[k].Path
			if i < k && a.Equal(b) {
				return &DuplicatePathError{Path: a.Flat(), First: values[i].Identifier, Second: values[k].Identifier}
			}
			if a.IsPrefixOf(b) {
				return &PrefixConflictError{Prefix: a.Flat(), Path: b.Flat()}
			}
		}
	}
	return nil
}
