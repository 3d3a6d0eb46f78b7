package log

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ndrean/linreg/pkg/errors"
)

// EnableZerologWarnings routes warnings raised through pkg/errors.Warn to a
// zerolog logger. Warning types that implement zerolog.LogObjectMarshaler
// (DivergenceWarning, ConvergenceWarning) are emitted as structured objects.
//
// Pass nil to write to stderr.
func EnableZerologWarnings(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	logger := zerolog.New(w).With().Timestamp().Logger()

	errors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if obj, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.Object("warning", obj).Msg(warning.Error())
			return
		}
		event.Err(warning).Msg("solver warning")
	})
}
