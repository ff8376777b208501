/*
Package fungible implements the multi-category balance ledger.

Token categories are identified by a TokenID and every account holds an
amount per category. Operations are batched: one transfer can move several
categories at once and either applies completely or not at all, which the
caller enforces by running it inside a cache wrap. Spending on behalf of
another account is possible through per-category allowances or owner-wide
operator approvals.
*/
package fungible
