package meters

import "fmt"

// DuplicatePathError reports two values resolving to the same tree path.
type DuplicatePathError struct {
	Path   string
	First  string
	Second string
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("tree path %s is not unique (%s, %s)", e.Path, e.First, e.Second)
}

// PrefixConflictError reports a tree path that is a structural prefix of
// another one. The tree cannot hold a node that is both leaf and branch.
type PrefixConflictError struct {
	Prefix string
	Path   string
}

func (e *PrefixConflictError) Error() string {
	return fmt.Sprintf("tree path %s is prefix of %s", e.Prefix, e.Path)
}

// DuplicateIDError reports a numeric id used by more than one row.
type DuplicateIDError struct {
	ID     uint32
	First  string
	Second string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("value id %d is used by %s and %s", e.ID, e.First, e.Second)
}

// DuplicateIdentifierError reports two rows deriving the same enum member,
// which happens when they differ only in internal classifiers.
type DuplicateIdentifierError struct {
	Identifier string
	FirstID    uint32
	SecondID   uint32
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("identifier %s is derived by ids %d and %d", e.Identifier, e.FirstID, e.SecondID)
}

// InvalidIdentifierError reports a derived identifier that is not a valid
// enum member name.
type InvalidIdentifierError struct {
	ID         uint32
	Identifier string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("value id %d derives invalid identifier %q", e.ID, e.Identifier)
}

// InvalidDigitsError reports a display precision outside 0..3.
type InvalidDigitsError struct {
	ID     uint32
	Digits int
}

func (e *InvalidDigitsError) Error() string {
	return fmt.Sprintf("value id %d has digits %d, want 0..%d", e.ID, e.Digits, MaxDigits)
}
