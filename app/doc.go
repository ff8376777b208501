/*
Package app wires the extension handlers into a dispatchable unit and
draws the atomicity boundary around every operation.
*/
package app
