/*
Package ledgertest provides mocks and helpers for testing ledger
extensions.

Mocks follow the same pattern: zero value is a usable default, fields
configure behavior, counters record usage. They are not safe for
concurrent use.
*/
package ledgertest
