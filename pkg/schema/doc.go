// Package schema is the in-memory description of chunk layouts recovered
// from an executable's reflection tables.
//
// A Chunk lists the versions of one chunk magic; each Version has a root
// Type. Types are built with the constructors in this package, which compute
// whether a type borrows from the decode input (holds text or byte views)
// while the graph is assembled. Graphs are immutable once built.
package schema
