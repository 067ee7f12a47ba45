// Package field holds the bubbles of a board and the geometry used to place
// and compare them.
//
// Two field layouts exist:
//
//   - [Free]: an ordered set of free-floating bubbles. Two bubbles touch when
//     their centers are closer than twice the radius.
//   - [Grid]: a fixed rows x cols matrix of cells, each holding at most one
//     bubble. Cells touch their four orthogonal neighbours.
//
// Both layouts expose an index-based view (Len, ColorAt, Neighbors) so the
// cluster search can run over either without caring which one it is given.
//
// # Ownership
//
// A field owns its bubbles. Accessors return copies; the only way to change
// a field is through its methods.
package field
