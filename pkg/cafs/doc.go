// Package cafs provides content addressing for areas.
//
// All content is indexed according to a deduplication scheme,
// e.g. Blake hash: a set of (path, content) entries is serialized into a
// canonical stream, then hashed into a Key.
//
// Two sets holding the same entries, regardless of the order in which they
// were built, produce the same key. Any change to a path or content byte
// produces a different key.
package cafs
