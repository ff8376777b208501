/*
Package ledger defines the common interfaces that tie the token ledger
together: the key-value storage contracts, the message and handler
abstractions, transfer hooks, the event emitter and the recipient
notification protocol.

The interesting logic lives in the extensions under x/. x/unique keeps a
single-owner record per asset, x/fungible keeps per-category balances with
batched operations. Both mutate state only through a KVStore, so the host
environment decides how (and whether) state survives between calls. The app
package provides the atomic call boundary: every delivered operation runs
against a cache-wrapped store that is written back only on success.
*/
package ledger
