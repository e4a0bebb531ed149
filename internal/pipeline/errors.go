package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/cameronsjo/stevedore/internal/build"
	"github.com/cameronsjo/stevedore/internal/provider"
)

// ErrorKind classifies a terminal run error for the invoker.
type ErrorKind string

const (
	// Configuration-shape errors, detected before external side effects.
	KindUnsupportedProvider ErrorKind = "UnsupportedProvider"
	KindUnsupportedLanguage ErrorKind = "UnsupportedLanguage"

	// Collaborator-reported failures, detail passed through verbatim.
	KindFetch    ErrorKind = "FetchError"
	KindBuild    ErrorKind = "BuildError"
	KindProvider ErrorKind = "ProviderError"

	// KindCanceled marks a run aborted at a stage boundary.
	KindCanceled ErrorKind = "Canceled"
)

// StageError is the terminal error of a failed run: the stage that owned
// the failure, its kind, and the underlying cause unchanged.
type StageError struct {
	Stage Stage
	Kind  ErrorKind
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// classify maps a stage's error to its kind. Configuration-shape errors
// keep their dedicated kinds so the invoker can distinguish them from
// collaborator failures at the same stage.
func classify(stage Stage, err error) ErrorKind {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	var langErr *build.UnsupportedLanguageError
	if errors.As(err, &langErr) {
		return KindUnsupportedLanguage
	}

	var provErr *provider.UnsupportedProviderError
	if errors.As(err, &provErr) {
		return KindUnsupportedProvider
	}

	switch stage {
	case StageCheckout:
		return KindFetch
	case StageBuild:
		return KindBuild
	default:
		return KindProvider
	}
}
