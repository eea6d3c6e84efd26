// Package render converts rendered SVG into other image formats.
//
// [ToPDF] and [ToPNG] shell out to rsvg-convert (from librsvg). The
// [nodelink] subpackage produces the SVG from a resolved tree.
package render
