// Package reftree builds a rooted tree out of a flat map of entries and the
// entry links embedded in their fields.
//
// Every occurrence of an entry is its own node, so an entry linked from two
// parents appears twice. A link back to an entry already on the current
// branch becomes a leaf, which keeps the walk finite without hiding the
// entry. Below MaxLevel a single placeholder child stands in for deeper
// content.
//
// Node positions are addressed by paths: the entry ids from the root down to
// the node joined with PathDelimiter.
package reftree
