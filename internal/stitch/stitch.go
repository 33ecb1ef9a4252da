package stitch

import (
	"fmt"
	"image"
	"io"
	"log/slog"
)

// Result is a trimmed (and possibly reduced) composite.
type Result struct {
	Image *image.RGBA
	State State
}

// Reduced reports whether the composite was scaled down to fit MaxHeight.
func (r *Result) Reduced() bool {
	return r.State.Phase == PhaseReduced
}

// Stitcher runs the stitch state machine with a fixed Spec.
// A Stitcher holds no per-document state and may be used concurrently.
type Stitcher struct {
	spec   Spec
	logger *slog.Logger
}

// New creates a Stitcher. A nil logger discards events.
func New(spec Spec, logger *slog.Logger) (*Stitcher, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Stitcher{spec: spec, logger: logger}, nil
}

// Spec returns the geometry the Stitcher was built with.
func (s *Stitcher) Spec() Spec {
	return s.spec
}

// Stitch composes pages into a single image for the document doc.
//
// On a page-fit failure the returned State is in PhaseAborted, the error
// wraps ErrPageFit and the Result is nil. The returned State is always
// valid, so callers can report how far composition got.
func (s *Stitcher) Stitch(doc string, pages Pages) (*Result, State, error) {
	st := newState(s.spec.TopMargin)

	if pages == nil || pages.Len() == 0 {
		return nil, st, ErrNoPages
	}

	first, err := pages.Page(0)
	if err != nil {
		st.Phase = PhaseAborted
		return nil, st, fmt.Errorf("page 1: %w", err)
	}
	if first.Bounds().Empty() {
		st.Phase = PhaseAborted
		return nil, st, fmt.Errorf("%w: page 1", ErrEmptyPage)
	}

	st.TargetWidth = SelectWidth(first.Bounds(), s.spec.PortraitWidth, s.spec.LandscapeWidth)
	st.Phase = PhaseOrientationChosen
	s.logger.Debug("orientation chosen",
		"document", doc,
		"portrait", IsPortrait(first.Bounds()),
		"width", st.TargetWidth)

	c := newCanvas(st.TargetWidth, s.spec.ProvisionalHeight)
	st.Phase = PhaseCompositing

	for i := 0; i < pages.Len(); i++ {
		page := first
		if i > 0 {
			page, err = pages.Page(i)
			if err != nil {
				st.Phase = PhaseAborted
				return nil, st, fmt.Errorf("page %d: %w", i+1, err)
			}
			if page.Bounds().Empty() {
				st.Phase = PhaseAborted
				return nil, st, fmt.Errorf("%w: page %d", ErrEmptyPage, i+1)
			}
		}

		crossed, err := compositePage(&st, c, page, i, doc, s.spec.MaxHeight)
		if err != nil {
			st.Phase = PhaseAborted
			s.logger.Error("page does not fit, abandoning document",
				"document", doc,
				"page", i+1,
				"offset", st.WriteOffset,
				"limit", s.spec.ProvisionalHeight)
			return nil, st, err
		}
		if crossed {
			s.logger.Warn("composite exceeds max height, output will be resized",
				"document", doc,
				"page", i+1,
				"height", st.WriteOffset,
				"max", s.spec.MaxHeight)
		}
	}

	img := c.trim(st.WriteOffset)
	st.Phase = PhaseTrimmed

	if reduced := reduce(img, s.spec.MaxHeight); reduced != img {
		img = reduced
		st.Phase = PhaseReduced
		s.logger.Debug("composite reduced",
			"document", doc,
			"from", st.WriteOffset,
			"width", img.Bounds().Dx(),
			"height", img.Bounds().Dy())
	}

	return &Result{Image: img, State: st}, st, nil
}
