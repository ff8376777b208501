/*
Package orm provides a thin, type-safe layer for storing protobuf models in
a KVStore under prefixed keys.

It intentionally supports only the access patterns the ledger kernels need:
point reads, writes, deletes and prefix scans. Anything fancier belongs to
the host environment.
*/
package orm
