// Package regexgen converts a set of Unicode scalar values and strings into a
// pattern for a regex engine that knows nothing about Unicode sets.
//
// Scalar ranges become the body of a bracket expression and string members
// become alternates. For engines that match 16-bit units (OnlyBMP), ranges
// above U+FFFF are split into lead×trail surrogate blocks; blocks sharing
// the same trail range are merged into one alternate whose lead part is
// itself a bracket expression:
//
//	\uDBC4[\uDC0F-\uDFFF]|[\uDBC0\uDBCC][\uDC00-\uDC0F]
//
// Everything is computed per call; no state is shared between calls.
package regexgen
