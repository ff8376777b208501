/*
Package errors implements the error surface of the ledger.

Every failure returned by this library wraps one of the root errors declared
here. Roots are registered with a unique numeric code, so integrators can
match on them (via the Is method) or report the code to the host environment
without parsing strings. Wrapping adds human readable context and a stack
trace without losing the root.
*/
package errors
