// Package blob attaches raw attribute bytes to token identifiers. It does
// not interpret the values: URIs, names and media hashes all live here as
// opaque blobs, keyed by the token and an attribute name.
package blob
