// Package clarity decodes the JSON-flavored Clarity values returned by
// read-only contract calls and builds tagged call arguments.
//
// The node is not consistent about response shapes: the same logical value
// can arrive as a tagged wrapper {"type":"uint","value":"42"}, as a bare
// primitive, or (for tuples) as a record whose fields are themselves
// tagged. All three decode to the same plain result here.
//
// Decoding is permissive: an unrecognized shape yields the zero value for
// numbers and the empty string for text rather than an error. Amounts are
// parsed digit-by-digit into uint64 and never pass through float64.
package clarity
