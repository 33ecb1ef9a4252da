package raster

import "errors"

// Sentinel errors.
var (
	ErrRasterize    = errors.New("rasterization failed")
	ErrToolNotFound = errors.New("rasterizer executable not found")
	ErrNoOutput     = errors.New("rasterizer produced no pages")
	ErrDecodePage   = errors.New("cannot decode page image")
	ErrCropTooLarge = errors.New("crop insets leave no pixels")
)
