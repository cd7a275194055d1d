// Package intern holds the read-only records an internship contract is built from.
//
// Records are plain values filled by a records.Source. Nothing in this
// module writes them back.
package intern
