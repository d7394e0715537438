package opc

// PartConstructor builds a content-specific part from the raw triple the
// physical reader produced. Constructors may parse blob eagerly and fail;
// the error aborts the unmarshal.
type PartConstructor func(name PartName, contentType string, blob []byte, pkg *Package) (Part, error)

// Factory dispatches part construction on content type. Content types
// without a registered constructor fall back to the generic BasePart,
// never an error, so a package holding unknown content loads as opaque,
// uninterpreted parts rather than failing wholesale.
type Factory struct {
	constructors map[string]PartConstructor
}

// NewFactory creates a factory with no registrations; every part it
// constructs is a generic BasePart until Register is called.
func NewFactory() *Factory {
	return &Factory{constructors: make(map[string]PartConstructor)}
}

// Register maps contentType to fn, replacing any previous registration.
func (f *Factory) Register(contentType string, fn PartConstructor) {
	f.constructors[contentType] = fn
}

// New constructs the part registered for contentType, or a generic BasePart
// when contentType is unregistered.
func (f *Factory) New(name PartName, contentType string, blob []byte, pkg *Package) (Part, error) {
	if fn, ok := f.constructors[contentType]; ok {
		return fn(name, contentType, blob, pkg)
	}
	return NewPart(name, contentType, blob, pkg), nil
}
