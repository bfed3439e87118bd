// Package discovery walks the project tree and collects files for the formatters.
//
// Hidden directories and configured directory names are pruned; file
// selection is delegated to pure FilePredicate functions.
package discovery
