// Package zippkg implements the physical layer of OPC containers: the
// zip archive holding part payloads, the [Content_Types].xml map, and the
// *.rels relationship sidecars.
//
// Reader inflates an archive into the raw (partname, content type, blob)
// triples and relationship records the opc engine unmarshals; Writer does
// the reverse. Both work on complete in-memory buffers, not streams.
//
//	r, err := zippkg.Open("deck.pptx")
//	pkg, err := opc.Open(r, opc.NewFactory())
//	...
//	err = zippkg.WriteFile("out.pptx", pkg.Rels(), pkg.Parts())
package zippkg
