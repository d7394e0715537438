package opc

import (
	"fmt"
	"path"
	"strconv"
	"strings"
)

// PackageURI is the pack URI of the package itself. The physical reader
// reports relationships sourced at the package root under this URI.
const PackageURI = "/"

// PartName identifies a part within a package as a normalized absolute
// POSIX-style path, e.g. "/ppt/slides/slide1.xml". Equality is plain string
// equality of the normalized form, which makes PartName usable as a map key
// during unmarshalling.
//
// Construct values with ParsePartName; a PartName built by other means may
// violate the leading-slash invariant the rest of the engine relies on.
type PartName string

// ParsePartName validates and normalizes s into a PartName.
// Returns ErrInvalidPartName if s is empty, is not /-rooted, or names the
// package root itself.
func ParsePartName(s string) (PartName, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidPartName)
	}
	if !strings.HasPrefix(s, "/") {
		return "", fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPartName, s)
	}
	clean := path.Clean(s)
	if clean == "/" {
		return "", fmt.Errorf("%w: %q names the package root", ErrInvalidPartName, s)
	}
	return PartName(clean), nil
}

// String returns the partname as a string.
func (p PartName) String() string { return string(p) }

// BaseURI returns the directory portion of the partname, e.g. "/ppt/slides"
// for "/ppt/slides/slide1.xml". This is the base against which relative
// target references are computed for relationships sourced at this part.
func (p PartName) BaseURI() string { return path.Dir(string(p)) }

// Filename returns the last path segment, e.g. "slide1.xml".
func (p PartName) Filename() string { return path.Base(string(p)) }

// Ext returns the filename extension without the leading dot, lowercased,
// e.g. "xml". Returns "" when the filename has no extension. Extensions are
// the lookup key for content-type defaults in [Content_Types].xml.
func (p PartName) Ext() string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(string(p)), "."))
}

// Idx returns the integer suffix of the filename stem, e.g. 3 for
// "/ppt/slides/slide3.xml". The second return is false when the stem has no
// trailing digits. Content part families (slides, layouts) use this index
// when allocating new partnames.
func (p PartName) Idx() (int, bool) {
	stem := strings.TrimSuffix(p.Filename(), path.Ext(p.Filename()))
	i := len(stem)
	for i > 0 && stem[i-1] >= '0' && stem[i-1] <= '9' {
		i--
	}
	if i == len(stem) {
		return 0, false
	}
	n, err := strconv.Atoi(stem[i:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// RelsURI returns the partname of this part's sidecar relationship file,
// e.g. "/ppt/_rels/presentation.xml.rels" for "/ppt/presentation.xml".
func (p PartName) RelsURI() PartName {
	return PartName(path.Join(p.BaseURI(), "_rels", p.Filename()+".rels"))
}

// RelativeRef returns the standard relative-path reference from baseURI to
// this partname, e.g. "../media/image1.png" against base "/ppt/slides".
// This is the Target attribute form used in relationship files for internal
// targets.
func (p PartName) RelativeRef(baseURI string) string {
	if baseURI == "" || baseURI == "/" {
		return strings.TrimPrefix(string(p), "/")
	}
	base := strings.Split(strings.Trim(baseURI, "/"), "/")
	target := strings.Split(strings.TrimPrefix(string(p), "/"), "/")

	common := 0
	for common < len(base) && common < len(target) && base[common] == target[common] {
		common++
	}

	segments := make([]string, 0, len(base)-common+len(target)-common)
	for range base[common:] {
		segments = append(segments, "..")
	}
	segments = append(segments, target[common:]...)
	return strings.Join(segments, "/")
}
