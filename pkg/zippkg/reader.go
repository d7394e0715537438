package zippkg

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/opckit/opckit/pkg/opc"
)

// Reader is a fully inflated physical package. It implements opc.Reader:
// every part exactly once, every relationship exactly once, package-root
// relationships reported under source URI "/". All data is read into memory
// at open time, so a Reader is independent of the archive it came from.
type Reader struct {
	parts []opc.SerializedPart
	rels  []opc.SerializedRel
}

// Open reads the OPC package at the given filesystem path.
func Open(name string) (*Reader, error) {
	zr, err := zip.OpenReader(name)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) {
			return nil, fmt.Errorf("open %s: %w: %v", name, opc.ErrMalformedPackage, err)
		}
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer zr.Close()
	return load(&zr.Reader)
}

// NewReader reads an OPC package from r, which must be a zip datastream of
// the given size.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", opc.ErrMalformedPackage, err)
	}
	return load(zr)
}

// SerializedParts returns every part in archive member order.
func (r *Reader) SerializedParts() ([]opc.SerializedPart, error) { return r.parts, nil }

// SerializedRels returns every relationship record, package root first,
// then part sidecars in archive member order.
func (r *Reader) SerializedRels() ([]opc.SerializedRel, error) { return r.rels, nil }

func load(zr *zip.Reader) (*Reader, error) {
	members := make(map[string][]byte, len(zr.File))
	var order []string
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue // directory entry
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open member %s: %w", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read member %s: %w", f.Name, err)
		}
		members[f.Name] = data
		order = append(order, f.Name)
	}

	ct, err := parseContentTypes(members[contentTypesMember])
	if err != nil {
		return nil, err
	}

	r := &Reader{}
	if err := r.loadParts(ct, members, order); err != nil {
		return nil, err
	}
	if err := r.loadRels(members, order); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) loadParts(ct *contentTypes, members map[string][]byte, order []string) error {
	for _, name := range order {
		if name == contentTypesMember || isRelsMember(name) {
			continue
		}
		partname, err := opc.ParsePartName("/" + name)
		if err != nil {
			return fmt.Errorf("%w: member %q: %v", opc.ErrMalformedPackage, name, err)
		}
		ctype, err := ct.lookup(partname)
		if err != nil {
			return err
		}
		r.parts = append(r.parts, opc.SerializedPart{
			PartName:    partname,
			ContentType: ctype,
			Blob:        members[name],
		})
	}
	return nil
}

func (r *Reader) loadRels(members map[string][]byte, order []string) error {
	// Package-root relationships come first so unmarshalling output is
	// stable regardless of where _rels/.rels sits in the archive.
	if data, ok := members[packageRelsMember]; ok {
		if err := r.parseRels(data, opc.PackageURI); err != nil {
			return err
		}
	}
	for _, name := range order {
		if !isRelsMember(name) || name == packageRelsMember {
			continue
		}
		if err := r.parseRels(members[name], sourceURIFor(name)); err != nil {
			return err
		}
	}
	return nil
}

// parseRels decodes one relationship sidecar sourced at sourceURI and
// resolves each internal target to an absolute partname.
func (r *Reader) parseRels(data []byte, sourceURI string) error {
	var doc relsXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: parse rels for %s: %v", opc.ErrMalformedPackage, sourceURI, err)
	}

	baseURI := opc.PackageURI
	if sourceURI != opc.PackageURI {
		baseURI = opc.PartName(sourceURI).BaseURI()
	}

	for _, entry := range doc.Rels {
		external := entry.TargetMode == "External"
		target := entry.Target
		if !external {
			target = resolveTarget(baseURI, target)
		}
		r.rels = append(r.rels, opc.SerializedRel{
			SourceURI: sourceURI,
			ID:        entry.ID,
			RelType:   entry.Type,
			Target:    target,
			External:  external,
		})
	}
	return nil
}

// isRelsMember reports whether an archive member is a relationship sidecar:
// a .rels file directly inside an _rels directory.
func isRelsMember(name string) bool {
	return strings.HasSuffix(name, ".rels") && path.Base(path.Dir(name)) == "_rels"
}

// sourceURIFor maps a sidecar member to the partname it describes,
// e.g. "ppt/_rels/presentation.xml.rels" -> "/ppt/presentation.xml".
func sourceURIFor(member string) string {
	parent := path.Dir(path.Dir(member)) // strip "_rels"
	filename := strings.TrimSuffix(path.Base(member), ".rels")
	if parent == "." {
		return "/" + filename
	}
	return "/" + parent + "/" + filename
}

// resolveTarget turns a relationship Target attribute into an absolute
// partname against the source's base URI. Absolute targets pass through
// cleaned; relative ones (including ../ forms) are joined.
func resolveTarget(baseURI, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	return path.Clean(path.Join(baseURI, target))
}
