package stitch

import "image"

// SelectWidth picks the output width for a document from its first page:
// portrait when the page is at least as tall as it is wide, landscape
// otherwise.
func SelectWidth(first image.Rectangle, portrait, landscape int) int {
	if first.Dy() >= first.Dx() {
		return portrait
	}
	return landscape
}

// IsPortrait reports whether r would select the portrait width.
func IsPortrait(r image.Rectangle) bool {
	return r.Dy() >= r.Dx()
}
