// Package assertdiff is a set of assertion helpers that explain why two values
// differ, on top of github.com/stretchr/testify/assert.
//
// testify decides whether an assertion passes. assertdiff only builds the
// message attached to a failure:
//
//   - AssertSameMap diffs two nested mappings and lists the leaves missing from
//     actual and the ones actual shouldn't have. Mappings are *Map (ordered),
//     Go maps keyed by strings, and slices or arrays keyed by index.
//   - AssertStringsEqual & AssertHTMLStringsEqual point at the first byte two
//     strings differ at, with some context on either side:
//
//     ------------------------------------------------------------------------
//
//     First difference at position 6.
//
//     Expected length: 11, Actual length: 11
//
//     Expected:  hello | ----> |world
//     Actual:    hello | ----> |earth
//     ------------------------------------------------------------------------
//
// Leaves are compared loosely by Diff: the string "1" and the number 1 are the
// same leaf, and so are nil and false. When two mappings are loosely equal but
// not strictly equal (key order, leaf types) the message falls back to
// comparing type-annotated dumps of both values.
//
// ReadHidden & InvokeHidden give tests access to unexported fields and,
// through RegisterHidden, unexported methods.
package assertdiff
