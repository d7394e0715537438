// Package opc implements the package graph engine for Open Packaging
// Convention (OPC) containers: the zip-based format underlying the
// OOXML document families (.pptx, .docx, .xlsx).
//
// An OPC package is a graph of typed binary/XML parts connected by typed,
// identified relationships. This package owns the in-memory data model
// (Package, Part, Relationship), the two-phase unmarshalling protocol that
// builds the graph from a physical reader, and the depth-first traversal
// used for both enumeration and serialization ordering.
//
// The byte-level zip/XML codec lives in package zippkg; anything that
// satisfies the Reader and Writer interfaces defined here can serve as the
// physical layer. Content-type-specific part behavior is plugged in through
// a Factory; unregistered content types load as opaque generic parts.
//
// # Opening and saving
//
//	r, err := zippkg.Open("deck.pptx")
//	if err != nil {
//	    return err
//	}
//	pkg, err := opc.Open(r, opc.NewFactory())
//	if err != nil {
//	    return err
//	}
//	main, err := pkg.MainPart()
//
// The graph is private, mutable, unsynchronized state. Concurrent mutation
// of the same Package, Part, or Relationships from multiple goroutines is
// out of contract and must be serialized by the caller.
package opc
