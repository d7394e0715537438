package opc

// Part is the capability interface shared by every package part. The
// generic implementation is BasePart; content-specific part types embed
// BasePart and override the hooks (and typically Blob) to parse and
// regenerate their payload.
type Part interface {
	// PartName returns the part's identifier within the package.
	PartName() PartName

	// SetPartName renames the part. The caller supplies a validated
	// PartName (from ParsePartName); no other validation occurs here.
	SetPartName(name PartName)

	// ContentType returns the part's content type, fixed at construction.
	ContentType() string

	// Blob returns the part's payload bytes. The engine makes no
	// assumption about the encoding beyond "bytes the writer can store".
	Blob() []byte

	// Package returns the package this part belongs to. The package owns
	// the reachable-part graph; the part holds a non-owning back-reference.
	Package() *Package

	// Rels returns the part's relationship collection, created lazily on
	// first access and owned exclusively by this part.
	Rels() *Relationships

	// AfterUnmarshal is called by Unmarshal on every part once all parts
	// and all relationships exist, so implementations may safely inspect
	// their own or sibling parts' relationships. The BasePart hook is a
	// no-op.
	AfterUnmarshal() error

	// BeforeMarshal is called by Package.Save on every reachable part
	// before the writer is invoked for any part. The BasePart hook is a
	// no-op.
	BeforeMarshal() error
}

// BasePart is the generic part: an opaque payload with a partname, content
// type, and its own outgoing relationships. It is the fallback the Factory
// constructs for unregistered content types, and the embedding base for
// content-specific part types.
type BasePart struct {
	name        PartName
	contentType string
	blob        []byte
	pkg         *Package
	rels        *Relationships // lazily created
}

// NewPart constructs a generic part. It is the uniform load entry point
// used by Factory for every content type without a registered constructor.
func NewPart(name PartName, contentType string, blob []byte, pkg *Package) *BasePart {
	return &BasePart{
		name:        name,
		contentType: contentType,
		blob:        blob,
		pkg:         pkg,
	}
}

// PartName returns the part's identifier within the package.
func (p *BasePart) PartName() PartName { return p.name }

// SetPartName renames the part.
func (p *BasePart) SetPartName(name PartName) { p.name = name }

// ContentType returns the part's content type.
func (p *BasePart) ContentType() string { return p.contentType }

// Blob returns the payload bytes loaded at construction.
func (p *BasePart) Blob() []byte { return p.blob }

// SetBlob replaces the payload bytes.
func (p *BasePart) SetBlob(blob []byte) { p.blob = blob }

// Package returns the owning package.
func (p *BasePart) Package() *Package { return p.pkg }

// Rels returns this part's relationship collection, creating it on first
// access. The collection's base URI is fixed to the part's directory at
// creation time.
func (p *BasePart) Rels() *Relationships {
	if p.rels == nil {
		p.rels = NewRelationships(p.name.BaseURI())
	}
	return p.rels
}

// AddRelationship adds an internal relationship from this part to target.
// See Relationships.Add for the duplicate-id contract.
func (p *BasePart) AddRelationship(relType string, target Part, id string) *Relationship {
	return p.Rels().Add(relType, target, id)
}

// AddExternalRelationship adds an external relationship from this part to
// the literal URI targetRef.
func (p *BasePart) AddExternalRelationship(relType, targetRef, id string) *Relationship {
	return p.Rels().AddExternal(relType, targetRef, id)
}

// GetOrAddRelationship returns this part's existing relationship of relType
// to target, adding one under the next free id if absent.
func (p *BasePart) GetOrAddRelationship(relType string, target Part) *Relationship {
	return p.Rels().GetOrAdd(relType, target)
}

// AfterUnmarshal is a no-op extension point. It is called unconditionally
// on every part by Unmarshal; embedding types override it to parse their
// payload once the whole graph exists.
func (p *BasePart) AfterUnmarshal() error { return nil }

// BeforeMarshal is a no-op extension point. It is called unconditionally on
// every reachable part by Package.Save before writing begins; embedding
// types override it to regenerate their payload.
func (p *BasePart) BeforeMarshal() error { return nil }
