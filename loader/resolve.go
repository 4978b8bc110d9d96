package loader

import (
	"context"
	"fmt"

	"github.com/docsync/docsync/oaserrors"
)

const chooseMessage = "Multiple API definitions found in this directory. Which one do you want to use?"

// Resolve returns the definition to work on.
//
// An explicit input is wrapped as is and validated later by the
// normalizer. Otherwise dir is searched with Discover: no candidate is a
// NoDefinitionFoundError, a single candidate is used with a notice, and
// several candidates are offered to the Prompter, or reported as an
// AmbiguousDefinitionError when the environment is not interactive.
func Resolve(ctx context.Context, explicitInput, dir string, opts ...Option) (SourceDescriptor, error) {
	if explicitInput != "" {
		return NewSourceDescriptor(explicitInput), nil
	}

	cfg, err := applyOptions(opts...)
	if err != nil {
		return SourceDescriptor{}, err
	}

	candidates, err := Discover(ctx, dir, opts...)
	if err != nil {
		return SourceDescriptor{}, err
	}

	switch len(candidates) {
	case 0:
		return SourceDescriptor{}, &oaserrors.NoDefinitionFoundError{Dir: dir}
	case 1:
		chosen := candidates[0]
		cfg.notify(fmt.Sprintf("We found %s and are attempting to use it as your %s definition.",
			chosen.Locator, chosen.DeclaredFormat.Label()))
		return chosen, nil
	}

	if !cfg.env.IsInteractive() {
		locators := make([]string, len(candidates))
		for i, c := range candidates {
			locators[i] = c.Locator
		}
		return SourceDescriptor{}, &oaserrors.AmbiguousDefinitionError{Candidates: locators}
	}

	labels := make([]string, len(candidates))
	for i, c := range candidates {
		labels[i] = c.Label()
	}
	idx, err := cfg.prompter.ChooseOne(chooseMessage, labels)
	if err != nil {
		return SourceDescriptor{}, fmt.Errorf("loader: selecting a definition: %w", err)
	}
	if idx < 0 || idx >= len(candidates) {
		return SourceDescriptor{}, fmt.Errorf("loader: selection %d out of range", idx)
	}
	cfg.logger.Debug("definition selected", "locator", candidates[idx].Locator)
	return candidates[idx], nil
}
