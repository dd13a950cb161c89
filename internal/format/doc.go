// Package format lays out cell text inside fixed-width table columns.
//
// A rendered cell always occupies width+2 terminal columns:
//
//	" " + aligned text + tail
//
// where tail is a single space, or the overflow marker when the text had
// to be cut to fit. Widths are measured in terminal cells, so wide runes
// and embedded ANSI sequences are handled.
//
// # Alignment
//
//   - left: text followed by padding
//   - right: padding followed by text
//   - center: the odd padding cell goes to the right, unless both the
//     padding and the width are odd, in which case it goes to the left
//
// # Numbers
//
// Floats are printed with a fixed number of decimal places, integers
// without decimals. See [value.Value.Format].
package format
