// Package goroutine launches background work with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"github.com/modorifa/rifas/internal/shared/logger"
)

// Go runs fn on a new goroutine through Run.
func Go(log logger.Interface, task string, fn func()) {
	go Run(log, task, fn)
}

// Run calls fn and turns a panic into an error log entry carrying the stack.
// It reports whether fn panicked.
func Run(log logger.Interface, task string, fn func()) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			log.Errorw("background task panicked",
				"task", task,
				"panic", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn()
	return false
}
