// Package stitch assembles the pages of one document into a single tall
// image.
//
// A run moves through fixed phases:
//
//	Init -> OrientationChosen -> Compositing -> Aborted
//	                                         -> Trimmed -> (Reduced)
//
// The first page decides the output width for the whole document (portrait
// or landscape). Pages are then resampled to that width and written one
// below the other into a provisional canvas sized [Spec.ProvisionalHeight]
// rows. A page that would run past the provisional canvas aborts the run with
// a [*PageFitError]. Once every page is placed the canvas is trimmed to the
// rows actually used, and if that height exceeds [Spec.MaxHeight] the whole
// composite is scaled down uniformly so it fits the PNG dimension limit.
//
// Each call to [Stitcher.Stitch] owns its canvas and [State]; nothing is
// shared between documents.
package stitch
