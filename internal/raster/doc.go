// Package raster turns documents into ordered page images.
//
// Pdftoppm shells out to poppler's pdftoppm and collects the PNG files it
// writes; FilePages decodes an ordered list of image files lazily, one page
// at a time, so only the page being composited is held in memory. Crop trims
// fixed insets from every page before it reaches the stitcher.
package raster
