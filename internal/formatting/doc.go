// Package formatting runs external code formatters over the tracker project.
//
// The format command applies cmake-format, clang-format, and clang-tidy in
// place; the cmake-format command rewrites CMake files from the formatter's
// standard output. A formatter that is not installed stops the run.
package formatting
