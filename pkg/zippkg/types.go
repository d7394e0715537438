package zippkg

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/opckit/opckit/pkg/opc"
)

// Reserved member names inside the archive.
const (
	contentTypesMember = "[Content_Types].xml"
	packageRelsMember  = "_rels/.rels"
)

// contentTypesNS is the XML namespace of [Content_Types].xml.
const contentTypesNS = "http://schemas.openxmlformats.org/package/2006/content-types"

type typesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// relsXML mirrors the OPC relationship-file schema for decoding sidecars.
// (The opc package owns the encoding side.)
type relsXML struct {
	XMLName xml.Name   `xml:"Relationships"`
	Rels    []relEntry `xml:"Relationship"`
}

type relEntry struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// contentTypes resolves a partname to its content type: an Override entry
// wins, otherwise the Default registered for the partname's extension.
type contentTypes struct {
	defaults  map[string]string // extension (lowercase) -> content type
	overrides map[string]string // partname -> content type
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: missing %s", opc.ErrMalformedPackage, contentTypesMember)
	}
	var doc typesXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", opc.ErrMalformedPackage, contentTypesMember, err)
	}

	ct := &contentTypes{
		defaults:  make(map[string]string, len(doc.Defaults)),
		overrides: make(map[string]string, len(doc.Overrides)),
	}
	for _, d := range doc.Defaults {
		ct.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range doc.Overrides {
		ct.overrides[o.PartName] = o.ContentType
	}
	return ct, nil
}

func (ct *contentTypes) lookup(partname opc.PartName) (string, error) {
	if t, ok := ct.overrides[string(partname)]; ok {
		return t, nil
	}
	if t, ok := ct.defaults[partname.Ext()]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: no content type for %s", opc.ErrMalformedPackage, partname)
}
