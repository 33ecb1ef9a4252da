package stitch

import "fmt"

// Output limits and defaults.
const (
	// MaxPNGDimension is the largest width or height the PNG writer accepts
	// in practice (two-byte readers choke beyond it).
	MaxPNGDimension = 65535

	DefaultPortraitWidth     = 640
	DefaultLandscapeWidth    = 1000
	DefaultProvisionalHeight = 100000
	DefaultTopMargin         = 10
)

// Spec holds the geometry for one stitch run.
type Spec struct {
	PortraitWidth     int // output width when the first page is taller than wide (or square)
	LandscapeWidth    int // output width when the first page is wider than tall
	MaxHeight         int // hard ceiling of the finished image
	ProvisionalHeight int // rows allocated up front; overrunning them aborts the document
	TopMargin         int // blank rows above the first page
}

// DefaultSpec returns the stock geometry.
func DefaultSpec() Spec {
	return Spec{
		PortraitWidth:     DefaultPortraitWidth,
		LandscapeWidth:    DefaultLandscapeWidth,
		MaxHeight:         MaxPNGDimension,
		ProvisionalHeight: DefaultProvisionalHeight,
		TopMargin:         DefaultTopMargin,
	}
}

// Validate checks that the spec describes a canvas that can be allocated.
func (s Spec) Validate() error {
	if s.PortraitWidth < 1 || s.PortraitWidth > MaxPNGDimension {
		return fmt.Errorf("%w: portrait width %d (must be 1-%d)", ErrInvalidSpec, s.PortraitWidth, MaxPNGDimension)
	}
	if s.LandscapeWidth < 1 || s.LandscapeWidth > MaxPNGDimension {
		return fmt.Errorf("%w: landscape width %d (must be 1-%d)", ErrInvalidSpec, s.LandscapeWidth, MaxPNGDimension)
	}
	if s.MaxHeight < 1 || s.MaxHeight > MaxPNGDimension {
		return fmt.Errorf("%w: max height %d (must be 1-%d)", ErrInvalidSpec, s.MaxHeight, MaxPNGDimension)
	}
	if s.TopMargin < 0 {
		return fmt.Errorf("%w: top margin %d", ErrInvalidSpec, s.TopMargin)
	}
	if s.ProvisionalHeight < s.MaxHeight {
		return fmt.Errorf("%w: provisional height %d is below max height %d", ErrInvalidSpec, s.ProvisionalHeight, s.MaxHeight)
	}
	if s.TopMargin >= s.ProvisionalHeight {
		return fmt.Errorf("%w: top margin %d leaves no room in %d rows", ErrInvalidSpec, s.TopMargin, s.ProvisionalHeight)
	}
	return nil
}
