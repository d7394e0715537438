package opc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"
)

// Relationship is an immutable typed edge from a source (the package or a
// part) to a target part or external URI. Relationships are created through
// a Relationships collection, never directly.
type Relationship struct {
	id         string
	relType    string
	targetPart Part   // nil when external
	targetRef  string // literal URI when external
	baseURI    string
	external   bool
}

// ID returns the relationship identifier, e.g. "rId3". IDs are unique
// within their source's collection when allocated through GetOrAdd/NextID;
// direct Add trusts the caller (see Relationships.Add).
func (r *Relationship) ID() string { return r.id }

// RelType returns the URI classifying this relationship's meaning.
func (r *Relationship) RelType() string { return r.relType }

// IsExternal reports whether the target is a URI outside the package.
func (r *Relationship) IsExternal() bool { return r.external }

// TargetPart returns the target part of an internal relationship.
// Returns ErrExternalTarget for external relationships, where no target
// part exists.
func (r *Relationship) TargetPart() (Part, error) {
	if r.external {
		return nil, fmt.Errorf("%w: %s", ErrExternalTarget, r.id)
	}
	return r.targetPart, nil
}

// TargetRef returns the serialized target reference: the target partname
// made relative to the source's base URI for internal relationships, or the
// literal external URI for external ones.
func (r *Relationship) TargetRef() string {
	if r.external {
		return r.targetRef
	}
	return r.targetPart.PartName().RelativeRef(r.baseURI)
}

// Relationships is an ordered collection of Relationship values scoped to a
// single source. Insertion order is preserved for serialization determinism
// but carries no other meaning. The zero value is not usable; create
// collections with NewRelationships.
type Relationships struct {
	baseURI string
	rels    []*Relationship
}

// NewRelationships creates an empty collection whose relative target
// references are computed against baseURI (the source part's directory, or
// "/" for the package).
func NewRelationships(baseURI string) *Relationships {
	return &Relationships{baseURI: baseURI}
}

// Len returns the number of relationships in the collection.
func (rs *Relationships) Len() int { return len(rs.rels) }

// BaseURI returns the base URI relative references are computed against.
func (rs *Relationships) BaseURI() string { return rs.baseURI }

// All returns the relationships in insertion order. The returned slice is a
// copy; the Relationship pointers are shared.
func (rs *Relationships) All() []*Relationship { return slices.Clone(rs.rels) }

// Add appends a new internal relationship of relType to target under id and
// returns it.
//
// Add does not reject a duplicate id: during unmarshalling the ids are fixed
// by the source container and are trusted as-is. Callers building graphs
// programmatically should prefer GetOrAdd, which allocates fresh ids and
// never duplicates.
func (rs *Relationships) Add(relType string, target Part, id string) *Relationship {
	rel := &Relationship{
		id:         id,
		relType:    relType,
		targetPart: target,
		baseURI:    rs.baseURI,
	}
	rs.rels = append(rs.rels, rel)
	return rel
}

// AddExternal appends a new external relationship of relType whose target
// is the literal URI targetRef, under id, and returns it. The same
// duplicate-id permissiveness as Add applies.
func (rs *Relationships) AddExternal(relType, targetRef, id string) *Relationship {
	rel := &Relationship{
		id:        id,
		relType:   relType,
		targetRef: targetRef,
		baseURI:   rs.baseURI,
		external:  true,
	}
	rs.rels = append(rs.rels, rel)
	return rel
}

// GetOrAdd returns the existing relationship matching (relType, target), or
// adds one under the next available id. Both the reltype and the target
// part identity must match; external relationships never match. GetOrAdd is
// idempotent: a second call with the same arguments returns the same
// relationship and does not grow the collection.
func (rs *Relationships) GetOrAdd(relType string, target Part) *Relationship {
	for _, rel := range rs.rels {
		if !rel.external && rel.relType == relType && rel.targetPart == target {
			return rel
		}
	}
	return rs.Add(relType, target, rs.NextID())
}

// NextID returns the first unused id of the form "rIdN", scanning N=1,2,...
// in increasing order. Gaps left by removed relationships are filled before
// a new high id is minted, keeping ids dense and low. The scan inspects at
// most Len()+1 candidates, so it always terminates with an unused id.
func (rs *Relationships) NextID() string {
	inUse := make(map[string]bool, len(rs.rels))
	for _, rel := range rs.rels {
		inUse[rel.id] = true
	}
	for n := 1; ; n++ {
		candidate := fmt.Sprintf("rId%d", n)
		if !inUse[candidate] {
			return candidate
		}
	}
}

// Remove deletes the relationship with the given id from the collection.
// Returns ErrNotFound if no relationship has that id. Removing the last
// relationship reaching a part makes that part unreachable: it disappears
// from enumeration and save without any further cleanup. The freed id is
// reused by the next NextID allocation.
func (rs *Relationships) Remove(id string) error {
	for i, rel := range rs.rels {
		if rel.id == id {
			rs.rels = slices.Delete(rs.rels, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("%w: no id %q in collection", ErrNotFound, id)
}

// ByID returns the relationship with the given id.
// Returns ErrNotFound if no relationship has that id.
func (rs *Relationships) ByID(id string) (*Relationship, error) {
	for _, rel := range rs.rels {
		if rel.id == id {
			return rel, nil
		}
	}
	return nil, fmt.Errorf("%w: no id %q in collection", ErrNotFound, id)
}

// Index returns the i-th relationship in insertion order.
// Returns ErrNotFound if i is out of range.
func (rs *Relationships) Index(i int) (*Relationship, error) {
	if i < 0 || i >= len(rs.rels) {
		return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrNotFound, i, len(rs.rels))
	}
	return rs.rels[i], nil
}

// SingleOfType returns the single relationship of relType.
// Returns ErrNotFound on zero matches and ErrAmbiguous on more than one.
// Use it where the graph invariant "at most one relationship of this type
// from this source" is expected to hold; a violation is a caller error, not
// a recoverable condition.
func (rs *Relationships) SingleOfType(relType string) (*Relationship, error) {
	matching := rs.AllOfType(relType)
	switch len(matching) {
	case 0:
		return nil, fmt.Errorf("%w: no relationship of type %q", ErrNotFound, relType)
	case 1:
		return matching[0], nil
	default:
		return nil, fmt.Errorf("%w: %d relationships of type %q", ErrAmbiguous, len(matching), relType)
	}
}

// AllOfType returns every relationship of relType in insertion order.
// Returns an empty slice, not an error, when there are none.
func (rs *Relationships) AllOfType(relType string) []*Relationship {
	var matching []*Relationship
	for _, rel := range rs.rels {
		if rel.relType == relType {
			matching = append(matching, rel)
		}
	}
	return matching
}

// PartWithRelType returns the target part of the single relationship of
// relType. It combines SingleOfType and TargetPart, forwarding their
// errors.
func (rs *Relationships) PartWithRelType(relType string) (Part, error) {
	rel, err := rs.SingleOfType(relType)
	if err != nil {
		return nil, err
	}
	return rel.TargetPart()
}

// relationshipsNS is the XML namespace of OPC relationship files.
const relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

type relationshipsXML struct {
	XMLName xml.Name           `xml:"Relationships"`
	Xmlns   string             `xml:"xmlns,attr"`
	Rels    []*relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// XML serializes the collection into the OPC relationship-file form: one
// Relationship element per entry in insertion order, each carrying Id,
// Type, Target, and TargetMode="External" only for external relationships.
func (rs *Relationships) XML() ([]byte, error) {
	doc := relationshipsXML{Xmlns: relationshipsNS}
	for _, rel := range rs.rels {
		entry := &relationshipXML{
			ID:     rel.id,
			Type:   rel.relType,
			Target: rel.TargetRef(),
		}
		if rel.external {
			entry.TargetMode = "External"
		}
		doc.Rels = append(doc.Rels, entry)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode relationships: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
