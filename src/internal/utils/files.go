package utils

import (
	"io"

	"github.com/mergehosts/mergehosts/src/internal/log"
)

// CloseOrWarn closes c and logs a warning if closing fails.
func CloseOrWarn(logger *log.Logger, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warnf("Failed to close file: %v", err)
	}
}
