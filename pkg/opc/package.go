package opc

// Package is the root of the part graph. It owns the package-scoped
// relationship collection; the set of parts is not stored anywhere, it is
// derived by traversal, so the relationship graph is the only ground truth.
// A part no relationship path reaches is excluded from enumeration and
// save, even if some object still references it in memory.
type Package struct {
	rels *Relationships
}

// NewPackage creates an empty package with no relationships.
func NewPackage() *Package {
	return &Package{rels: NewRelationships(PackageURI)}
}

// Open builds a package graph from the physical reader r, constructing
// parts through factory. Reader failures propagate unchanged; on error no
// usable Package is returned. A nil factory means every part loads as a
// generic BasePart.
func Open(r Reader, factory *Factory) (*Package, error) {
	pkg := NewPackage()
	if factory == nil {
		factory = NewFactory()
	}
	if err := Unmarshal(r, pkg, factory); err != nil {
		return nil, err
	}
	return pkg, nil
}

// Rels returns the package-scoped relationship collection (relationships
// whose source is the package itself).
func (p *Package) Rels() *Relationships { return p.rels }

// AddRelationship adds an internal relationship from the package to target.
// See Relationships.Add for the duplicate-id contract.
func (p *Package) AddRelationship(relType string, target Part, id string) *Relationship {
	return p.rels.Add(relType, target, id)
}

// AddExternalRelationship adds an external relationship from the package to
// the literal URI targetRef.
func (p *Package) AddExternalRelationship(relType, targetRef, id string) *Relationship {
	return p.rels.AddExternal(relType, targetRef, id)
}

// GetOrAddRelationship returns the package's existing relationship of
// relType to target, adding one under the next free id if absent.
func (p *Package) GetOrAddRelationship(relType string, target Part) *Relationship {
	return p.rels.GetOrAdd(relType, target)
}

// MainPart returns the main document part: the target of the package's
// single officeDocument relationship. Returns ErrNotFound when the
// relationship is absent and ErrAmbiguous when more than one exists.
func (p *Package) MainPart() (Part, error) {
	return p.rels.PartWithRelType(RTOfficeDocument)
}

// Parts returns every part reachable from the package's relationships,
// each exactly once, in depth-first visitation order. The order is
// deterministic given fixed relationship insertion order, since the walk
// follows each collection's sequence. Cycles and convergent references are
// handled by an identity-keyed visited set: partnames could in a malformed
// package collide, so identity, not name, is the discriminator.
func (p *Package) Parts() []Part {
	var parts []Part
	visited := make(map[Part]bool)

	var walk func(rs *Relationships)
	walk = func(rs *Relationships) {
		for _, rel := range rs.All() {
			if rel.IsExternal() {
				continue
			}
			part, _ := rel.TargetPart()
			if visited[part] {
				continue
			}
			visited[part] = true
			parts = append(parts, part)
			walk(part.Rels())
		}
	}
	walk(p.rels)
	return parts
}

// Save marshals the graph to the physical writer w. Every reachable part's
// BeforeMarshal hook runs to completion, in Parts order, before w is
// invoked, so a hook never observes writing having started. The first hook
// failure aborts the save before any writer call, so either all hooks
// complete and the writer runs once, or nothing is written.
func (p *Package) Save(w Writer) error {
	parts := p.Parts()
	for _, part := range parts {
		if err := part.BeforeMarshal(); err != nil {
			return err
		}
	}
	return w.Write(p.rels, parts)
}

// AfterUnmarshal is called by Unmarshal after every part's own
// AfterUnmarshal hook has run. The base behavior is a no-op.
func (p *Package) AfterUnmarshal() error { return nil }
