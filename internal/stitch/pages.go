package stitch

import "image"

// Pages is an ordered, random-access sequence of page images. Page may decode
// lazily; Stitch asks for each index exactly once.
type Pages interface {
	Len() int
	Page(i int) (image.Image, error)
}

// Images adapts an in-memory slice to Pages.
type Images []image.Image

func (s Images) Len() int { return len(s) }

func (s Images) Page(i int) (image.Image, error) { return s[i], nil }
