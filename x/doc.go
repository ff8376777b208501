/*
Package x contains the interfaces shared by the ledger extensions, most
importantly the Authenticator used to resolve the caller identity of an
operation.

Subpackages implement the ledgers themselves: x/unique for single-owner
assets, x/fungible for per-category balances, x/blob for attribute storage.
*/
package x
