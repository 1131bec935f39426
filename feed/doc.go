/*
Package feed loads a GTFS archive into an immutable, indexed in-memory
representation.

It is source-agnostic: OpenZipPath, OpenZipBytes, and OpenDirectory all
produce the same Archive, which Build turns into a Container. Nothing in
this package emits a report or applies a rule — it only materializes
typed tables, the primary-key indexes backing them, and the derived
cross-table indexes (stop/station graph, trip stop-time sequences, shape
points, block membership) that the validatorset package reads.

Parsing is permissive and lossy by design: a malformed cell becomes a
missing value plus a notice, never an aborted load.
*/
package feed
