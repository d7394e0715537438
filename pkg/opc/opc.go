package opc

// SerializedPart is one raw part as produced by the physical reader: the
// absolute partname, the content type resolved from [Content_Types].xml,
// and the complete payload bytes.
type SerializedPart struct {
	PartName    PartName
	ContentType string
	Blob        []byte
}

// SerializedRel is one raw relationship record as produced by the physical
// reader. SourceURI is PackageURI ("/") for package-root relationships,
// otherwise the absolute partname of the source part. Target is the
// absolute partname of the target part for internal relationships, or the
// literal URI for external ones.
type SerializedRel struct {
	SourceURI string
	ID        string
	RelType   string
	Target    string
	External  bool
}

// Reader is the physical-package collaborator Unmarshal consumes. An
// implementation must enumerate every part exactly once and every
// relationship exactly once, with package-root relationships distinguished
// by SourceURI == PackageURI. Both methods return complete in-memory data;
// the engine performs no I/O of its own.
type Reader interface {
	SerializedParts() ([]SerializedPart, error)
	SerializedRels() ([]SerializedRel, error)
}

// Writer is the physical-package collaborator Package.Save hands the graph
// to. An implementation must persist each part's blob under its partname,
// each part's serialized relationships as that part's sidecar record, and
// the package-root relationship record.
type Writer interface {
	Write(pkgRels *Relationships, parts []Part) error
}
