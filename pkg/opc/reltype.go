package opc

// Well-known relationship types. RTOfficeDocument marks the package-to-main-
// document edge and is the reltype MainPart resolves.
const (
	RTOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RTCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RTExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extendedProperties"
	RTThumbnail      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/thumbnail"
	RTHyperlink      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	RTImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RTTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RTSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RTSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RTSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RTNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
)

// Well-known content types for the common part payloads the toolkit meets.
const (
	CTPresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	CTSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	CTSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	CTSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	CTTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
	CTCoreProps     = "application/vnd.openxmlformats-package.core-properties+xml"
	CTRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	CTXML           = "application/xml"
	CTPNG           = "image/png"
	CTJPEG          = "image/jpeg"
	CTGIF           = "image/gif"
)
