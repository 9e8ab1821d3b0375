// Package unflatten rebuilds nested documents from flat key paths.
//
// Keys use '.' for mapping access and "[N]" for sequence indexing:
//
//	src := unflatten.Pairs{
//		{Key: "user.name", Value: "ada"},
//		{Key: "user.roles[0]", Value: "admin"},
//		{Key: "user.roles[1]", Value: "dev"},
//	}
//	doc, err := unflatten.Unflatten(src)
//	// doc: {"user": {"name": "ada", "roles": ["admin", "dev"]}}
//
// Mappings in the result are *Map values, which keep first-seen key order.
// Sequences are []any. Terminal values are returned as given.
//
// Whether a path prefix is a mapping or a sequence is decided by the first
// key that reaches it; a later key that needs the other kind, or a terminal
// value where nested structure already exists, fails with an error wrapping
// ErrConflictingStructure. Sequence indexes may be sparse: missing slots are
// filled according to the GapPolicy (an empty *Map by default).
package unflatten
