//go:build !cgo

package profile

import "codehunter/internal/parser"

func (b *Builder) countDefinitions(unit *parser.Unit) {}
