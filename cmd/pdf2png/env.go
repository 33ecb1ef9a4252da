package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/qpng/go-pdf2png/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now         func() time.Time
	Stdout      io.Writer
	Stderr      io.Writer
	Interactive bool           // Stderr is a terminal; enables progress lines
	Config      *config.Config // Loaded once per command
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Interactive: term.IsTerminal(int(os.Stderr.Fd())), // #nosec G115 -- fd fits in int
		Config:      config.DefaultConfig(),
	}
}
