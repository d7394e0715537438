package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/opckit/opckit/pkg/opc"
)

// Manifest is the canonical serialization format for a package graph's
// structure. Used for API responses, storage, caching, and as the input to
// rendering. It captures shape and identity, not payloads: part blobs are
// reduced to a size and digest.
//
// The format is human-readable and deterministic: the same package always
// produces the same manifest bytes.
type Manifest struct {
	Parts []PartInfo `json:"parts" bson:"parts"`
	Rels  []RelInfo  `json:"rels" bson:"rels"`
}

// PartInfo describes one reachable part.
type PartInfo struct {
	PartName    string `json:"partname" bson:"partname"`
	ContentType string `json:"content_type" bson:"content_type"`
	Size        int    `json:"size" bson:"size"`
	SHA256      string `json:"sha256" bson:"sha256"`
}

// RelInfo describes one relationship edge. Source is "/" for package-root
// relationships, otherwise the source partname. Target is a partname for
// internal edges and the literal URI for external ones.
type RelInfo struct {
	Source   string `json:"source" bson:"source"`
	ID       string `json:"id" bson:"id"`
	RelType  string `json:"reltype" bson:"reltype"`
	Target   string `json:"target" bson:"target"`
	External bool   `json:"external,omitempty" bson:"external,omitempty"`
}

// FromPackage reduces a package graph to its manifest. Parts are sorted by
// partname for deterministic output; relationship records keep their
// collection order under a per-source grouping (package root first, then
// each part in sorted order).
func FromPackage(pkg *opc.Package) Manifest {
	parts := pkg.Parts()
	slices.SortFunc(parts, func(a, b opc.Part) int {
		switch {
		case a.PartName() < b.PartName():
			return -1
		case a.PartName() > b.PartName():
			return 1
		default:
			return 0
		}
	})

	m := Manifest{Parts: make([]PartInfo, len(parts))}
	for i, p := range parts {
		sum := sha256.Sum256(p.Blob())
		m.Parts[i] = PartInfo{
			PartName:    string(p.PartName()),
			ContentType: p.ContentType(),
			Size:        len(p.Blob()),
			SHA256:      hex.EncodeToString(sum[:]),
		}
	}

	m.Rels = append(m.Rels, relInfos(opc.PackageURI, pkg.Rels())...)
	for _, p := range parts {
		m.Rels = append(m.Rels, relInfos(string(p.PartName()), p.Rels())...)
	}
	return m
}

func relInfos(source string, rels *opc.Relationships) []RelInfo {
	var out []RelInfo
	for _, rel := range rels.All() {
		info := RelInfo{
			Source:   source,
			ID:       rel.ID(),
			RelType:  rel.RelType(),
			External: rel.IsExternal(),
		}
		if rel.IsExternal() {
			info.Target = rel.TargetRef()
		} else {
			part, _ := rel.TargetPart()
			info.Target = string(part.PartName())
		}
		out = append(out, info)
	}
	return out
}

// UnmarshalManifest deserializes JSON bytes to a Manifest.
func UnmarshalManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}
