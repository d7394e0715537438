package opc

import "errors"

var (
	// ErrNotFound is returned when a lookup by relationship ID, index, or
	// reltype has no match, and when MainPart is called on a package without
	// a main-document relationship. It is never silently defaulted.
	ErrNotFound = errors.New("relationship not found")

	// ErrAmbiguous is returned by singular lookups (SingleOfType, MainPart)
	// when more than one relationship of the requested type exists. It is a
	// distinct kind from ErrNotFound so callers can tell "missing" from
	// "over-specified".
	ErrAmbiguous = errors.New("multiple relationships of the requested type")

	// ErrExternalTarget is returned by Relationship.TargetPart when the
	// relationship's target mode is external. An external relationship has
	// no target part; only its TargetRef is defined.
	ErrExternalTarget = errors.New("target part undefined for external relationship")

	// ErrMalformedPackage is returned by Unmarshal when a relationship
	// record references a source or target partname that was never
	// constructed. This indicates a corrupt or unsupported container; a
	// failed unmarshal leaves no usable Package.
	ErrMalformedPackage = errors.New("malformed package")

	// ErrInvalidPartName is returned by ParsePartName and SetPartName when
	// a partname is not a normalized, /-rooted path.
	ErrInvalidPartName = errors.New("invalid part name")
)
