// Package lean locates unresolved proof obligations in Lean 4 source trees.
//
// A proof obligation is a `sorry` placeholder inside a declaration. The
// scanner records enough surrounding context (declaration name, snippet,
// whole file) for downstream analysis and issue creation.
package lean

// Obligation is a single unresolved `sorry` found in a Lean source file.
type Obligation struct {
	// File is the path to the source file, relative to the scanned
	// search path.
	File string

	// Line is the 1-based line number of the `sorry` marker.
	Line int

	// DeclName is the name of the enclosing declaration, or empty when
	// no name could be extracted.
	DeclName string

	// Snippet is the source text from the declaration header through the
	// marker line.
	Snippet string

	// FileContent is the complete content of the source file.
	FileContent string

	// ImportsContext is the concatenated content of the file's resolved
	// imports, labeled per import.
	ImportsContext string
}
