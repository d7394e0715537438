package zippkg

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/opckit/opckit/pkg/opc"
)

// defaultContentTypes maps extensions whose content type is conventionally
// registered as a Default rather than a per-part Override.
var defaultContentTypes = map[string]string{
	"rels": opc.CTRelationships,
	"xml":  opc.CTXML,
	"png":  opc.CTPNG,
	"jpeg": opc.CTJPEG,
	"jpg":  opc.CTJPEG,
	"gif":  opc.CTGIF,
}

// Writer persists a package graph as a zip archive on dst. It implements
// opc.Writer: each part's blob lands under its partname, each part with
// relationships gets its sidecar record, and the package-root record is
// written to _rels/.rels.
type Writer struct {
	dst io.Writer
}

// NewWriter creates a Writer emitting to dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteFile saves a package graph to the file at the given path, creating
// or truncating it.
func WriteFile(name string, pkgRels *opc.Relationships, parts []opc.Part) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if err := NewWriter(f).Write(pkgRels, parts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FileWriter is an opc.Writer that saves to a file path. The file is only
// created once Write is called, so a save aborted by a part hook leaves no
// partial output behind.
type FileWriter struct {
	name string
}

// NewFileWriter creates a FileWriter targeting the given path.
func NewFileWriter(name string) *FileWriter {
	return &FileWriter{name: name}
}

// Write creates the file and emits the complete archive into it.
func (w *FileWriter) Write(pkgRels *opc.Relationships, parts []opc.Part) error {
	return WriteFile(w.name, pkgRels, parts)
}

// Write emits the complete archive. The parts slice is written in the
// order given (the engine passes depth-first order), which keeps output
// byte-stable for an unchanged graph.
func (w *Writer) Write(pkgRels *opc.Relationships, parts []opc.Part) error {
	zw := zip.NewWriter(w.dst)

	ctData, err := buildContentTypes(parts)
	if err != nil {
		return err
	}
	if err := writeMember(zw, contentTypesMember, ctData); err != nil {
		return err
	}

	relsData, err := pkgRels.XML()
	if err != nil {
		return err
	}
	if err := writeMember(zw, packageRelsMember, relsData); err != nil {
		return err
	}

	for _, part := range parts {
		if err := writeMember(zw, memberName(part.PartName()), part.Blob()); err != nil {
			return err
		}
		if part.Rels().Len() == 0 {
			continue
		}
		sidecar, err := part.Rels().XML()
		if err != nil {
			return err
		}
		if err := writeMember(zw, memberName(part.PartName().RelsURI()), sidecar); err != nil {
			return err
		}
	}

	return zw.Close()
}

func writeMember(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create member %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write member %s: %w", name, err)
	}
	return nil
}

// memberName strips the leading slash: partnames are /-rooted, archive
// members are not.
func memberName(p opc.PartName) string {
	return strings.TrimPrefix(string(p), "/")
}

// buildContentTypes assembles [Content_Types].xml for the given parts:
// a Default entry where the part's extension conventionally carries its
// content type, an Override entry otherwise. Entries are sorted so output
// is deterministic.
func buildContentTypes(parts []opc.Part) ([]byte, error) {
	defaults := map[string]string{
		"rels": opc.CTRelationships,
		"xml":  opc.CTXML,
	}
	var overrides []overrideXML
	for _, part := range parts {
		ext := part.PartName().Ext()
		if dct, ok := defaultContentTypes[ext]; ok && dct == part.ContentType() {
			defaults[ext] = dct
			continue
		}
		overrides = append(overrides, overrideXML{
			PartName:    string(part.PartName()),
			ContentType: part.ContentType(),
		})
	}

	doc := typesXML{Xmlns: contentTypesNS}
	exts := make([]string, 0, len(defaults))
	for ext := range defaults {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		doc.Defaults = append(doc.Defaults, defaultXML{Extension: ext, ContentType: defaults[ext]})
	}
	sort.Slice(overrides, func(i, j int) bool { return overrides[i].PartName < overrides[j].PartName })
	doc.Overrides = overrides

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode content types: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
