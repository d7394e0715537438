// Package pkg provides the core libraries for opckit OPC container tooling.
//
// # Overview
//
// opckit reads, inspects, and rewrites Open Packaging Convention containers
// (the zip-based format behind pptx, docx, and xlsx). The pkg directory is
// organized by layer:
//
//  1. [opc] - The package graph engine: parts, typed relationships, the
//     two-phase unmarshaller, and the save path
//  2. [zippkg] - The physical layer: zip archives, [Content_Types].xml,
//     and .rels relationship sidecars
//  3. [manifest] - Flat, deterministic serialization of a package's
//     structure, used by the CLI, the HTTP API, caching, and rendering
//  4. [render] - Graphviz visualization of the relationship graph
//  5. [cache], [catalog] - Storage: content-addressed byte caches and the
//     MongoDB-backed manifest catalog
//  6. [errors], [buildinfo] - Cross-cutting support
//
// # Architecture
//
// The typical data flow:
//
//	container file
//	       ↓  zippkg.Reader (inflate members, resolve rel targets)
//	raw parts + relationship records
//	       ↓  opc.Unmarshal (construct parts, wire graph, run hooks)
//	*opc.Package
//	       ↓  manifest.FromPackage
//	manifest.Manifest → render / cache / catalog / API
//
// Writing runs the reverse: Package.Save runs every part's BeforeMarshal
// hook, then hands the reachable graph to a zippkg.Writer.
//
// [opc]: github.com/opckit/opckit/pkg/opc
// [zippkg]: github.com/opckit/opckit/pkg/zippkg
// [manifest]: github.com/opckit/opckit/pkg/manifest
// [render]: github.com/opckit/opckit/pkg/render
// [cache]: github.com/opckit/opckit/pkg/cache
// [catalog]: github.com/opckit/opckit/pkg/catalog
// [errors]: github.com/opckit/opckit/pkg/errors
// [buildinfo]: github.com/opckit/opckit/pkg/buildinfo
package pkg
