package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/npillmayer/flowbox/core"
)

// Errors returned (wrapped) by layout runs.
var (
	ErrNoConvergence = errors.New("layout run did not converge")
	ErrOwnership     = errors.New("dimension written by a layout not owning it")
	ErrMissingLayout = errors.New("component lacks a required layout")
)

// ConvergenceError is returned by Context.Run if a run stalls or hits the
// cycle watchdog while layouts are still pending.
type ConvergenceError struct {
	Unresolved []string // IDs of items with layouts not done
	Cycles     int
	Watchdog   bool // true if the cycle limit has been reached
}

func (e *ConvergenceError) Error() string {
	reason := "no progress"
	if e.Watchdog {
		reason = "cycle limit reached"
	}
	return fmt.Sprintf("layout failed after %d cycles (%s), unresolved: [%s]",
		e.Cycles, reason, strings.Join(e.Unresolved, " "))
}

// Unwrap makes ConvergenceError match ErrNoConvergence with errors.Is.
func (e *ConvergenceError) Unwrap() error {
	return ErrNoConvergence
}

// ErrorCode is part of interface core.AppError.
func (e *ConvergenceError) ErrorCode() core.ErrorCode {
	return core.ECONVERGENCE
}

// UserMessage is part of interface core.AppError.
func (e *ConvergenceError) UserMessage() string {
	return e.Error()
}

var _ core.AppError = &ConvergenceError{}

func ownershipError(item *Item, name string, writer Layout) error {
	return core.WrapError(ErrOwnership, core.ECONFIG,
		"%s of [%s] (%s) written by %s", name, item.ID(), item.models, writer.ID())
}

func missingLayoutError(c Component, which string) error {
	return core.WrapError(ErrMissingLayout, core.ECONFIG,
		"component [%s] has no %s", c.ID(), which)
}
