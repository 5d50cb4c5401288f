/*
Package memvcs provides an in-memory, content-addressable version control engine.

Content is staged in areas: mappings from paths to strings or byte sequences.
Committing an area freezes its content into an immutable commit, identified by
a hash of the content alone. Commits link to their parents, forming an
append-only graph, and named branches point to commits.

The engine lives in pkg/engine. The memvcs command replays scripts of steps
against a fresh repository.
*/
package memvcs
