// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/querytrans/internal/core/domain"
)

// TransformCompleted carries the explanation of one query back to the model.
// Seq orders requests so that a slow result never replaces a newer one.
type TransformCompleted struct {
	Seq         int
	Input       string
	Explanation *domain.Explanation
	Err         error
}

// Failed reports whether the transform returned an error.
func (m TransformCompleted) Failed() bool {
	return m.Err != nil
}

// SettingsLoaded carries the transform settings shown in the status bar.
type SettingsLoaded struct {
	Settings *domain.Settings
	Err      error
}

// ErrorOccurred signals an error that should be displayed.
type ErrorOccurred struct {
	Err error
}
