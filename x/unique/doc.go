/*
Package unique implements the single-owner asset ledger.

Every asset is identified by a TokenID and held by exactly one owner. The
owner may grant a single-spender approval per asset (cleared on every
transfer) and owner-wide operator approvals. Transfers, mints and burns run
through the shared transfer hooks, and the safe-transfer path notifies the
recipient before the operation is reported successful.
*/
package unique
