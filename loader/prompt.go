package loader

import (
	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the user to pick one of several labeled options and
// returns the chosen index.
type Prompter interface {
	ChooseOne(message string, options []string) (int, error)
}

// SurveyPrompter prompts on the terminal with a select list.
type SurveyPrompter struct {
	// AskOpts are passed to survey, e.g. survey.WithStdio in tests
	AskOpts []survey.AskOpt
}

// ChooseOne implements Prompter.
func (p SurveyPrompter) ChooseOne(message string, options []string) (int, error) {
	var idx int
	err := survey.AskOne(
		&survey.Select{
			Message: message,
			Options: options,
		},
		&idx,
		p.AskOpts...,
	)
	if err != nil {
		return -1, err
	}
	return idx, nil
}

var _ Prompter = SurveyPrompter{}
