// Package completion provides tab completion of file paths for an input
// line. It finds the word under the cursor and turns path suggestions into
// replacement candidates anchored at the cursor.
package completion
