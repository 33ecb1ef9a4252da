package main

import (
	"context"
	"fmt"

	pdf2png "github.com/qpng/go-pdf2png"
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input pdf2png.Input) (*pdf2png.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*pdf2png.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire(ctx context.Context) (CLIConverter, error)
	Release(CLIConverter)
	Size() int
}

// poolAdapter exposes a *pdf2png.ConverterPool as a Pool.
type poolAdapter struct {
	pool *pdf2png.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire(ctx context.Context) (CLIConverter, error) {
	conv, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return conv, nil
}

// Release panics if conv did not come from this adapter (programmer error).
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*pdf2png.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}
