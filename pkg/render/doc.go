// Package render visualizes package manifests as Graphviz diagrams: parts
// as nodes, relationships as typed edges, the package root as the single
// source. DOT generation is pure string assembly; SVG and PNG output go
// through the embedded Graphviz engine.
package render
