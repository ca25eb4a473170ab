package main

import (
	"github.com/Garik-/midilanes/pkg/midi"
	"go.uber.org/zap"
)

var decodeLog = zap.NewNop()

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func enableLogging(l *zap.Logger, debug bool) {
	decodeLog = l.Named("decode")
	if debug {
		midi.SetLogger(l.Named("midi"))
	}
}
