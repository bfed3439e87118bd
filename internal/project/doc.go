// Package project resolves the root directory of the tracker source tree.
//
// The root is passed to services as an explicit Configuration value rather
// than read from the process environment at the point of use.
package project
