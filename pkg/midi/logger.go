package midi

import "go.uber.org/zap"

var decoderLog = zap.NewNop()

// SetLogger installs l for debug output of the decoder. A nil logger restores
// the silent default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	decoderLog = l
}
