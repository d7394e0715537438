package opc

import "fmt"

// Unmarshal builds the part graph from r into pkg, delegating part
// construction to factory. It runs in three phases:
//
//  1. Part construction: one part per raw (partname, content type, blob)
//     triple. No relationships exist yet, so forward references in the raw
//     part list cannot dangle.
//  2. Relationship wiring: every raw relationship record is attached to its
//     source (the package for SourceURI "/", else the part constructed in
//     phase 1). A record whose source or internal target was never
//     constructed fails loudly with ErrMalformedPackage; it is never
//     silently skipped.
//  3. Post-processing: AfterUnmarshal runs on every part in construction
//     order, then on the package, so every hook sees the complete graph.
//
// On any failure the error is returned unchanged and pkg must be discarded.
func Unmarshal(r Reader, pkg *Package, factory *Factory) error {
	parts, order, err := unmarshalParts(r, pkg, factory)
	if err != nil {
		return err
	}
	if err := unmarshalRelationships(r, pkg, parts); err != nil {
		return err
	}
	for _, part := range order {
		if err := part.AfterUnmarshal(); err != nil {
			return err
		}
	}
	return pkg.AfterUnmarshal()
}

// unmarshalParts constructs one part per raw triple and returns both the
// partname index used for wiring and the construction order used for
// post-processing.
func unmarshalParts(r Reader, pkg *Package, factory *Factory) (map[PartName]Part, []Part, error) {
	sparts, err := r.SerializedParts()
	if err != nil {
		return nil, nil, err
	}

	parts := make(map[PartName]Part, len(sparts))
	order := make([]Part, 0, len(sparts))
	for _, sp := range sparts {
		part, err := factory.New(sp.PartName, sp.ContentType, sp.Blob, pkg)
		if err != nil {
			return nil, nil, fmt.Errorf("construct part %s: %w", sp.PartName, err)
		}
		parts[sp.PartName] = part
		order = append(order, part)
	}
	return parts, order, nil
}

// unmarshalRelationships attaches every raw relationship record to its
// resolved source with its resolved target.
func unmarshalRelationships(r Reader, pkg *Package, parts map[PartName]Part) error {
	srels, err := r.SerializedRels()
	if err != nil {
		return err
	}

	for _, sr := range srels {
		var rels *Relationships
		if sr.SourceURI == PackageURI {
			rels = pkg.Rels()
		} else {
			source, ok := parts[PartName(sr.SourceURI)]
			if !ok {
				return fmt.Errorf("%w: relationship %s sourced at unknown part %s",
					ErrMalformedPackage, sr.ID, sr.SourceURI)
			}
			rels = source.Rels()
		}

		if sr.External {
			rels.AddExternal(sr.RelType, sr.Target, sr.ID)
			continue
		}

		target, ok := parts[PartName(sr.Target)]
		if !ok {
			return fmt.Errorf("%w: relationship %s targets missing part %s",
				ErrMalformedPackage, sr.ID, sr.Target)
		}
		rels.Add(sr.RelType, target, sr.ID)
	}
	return nil
}
