package tui

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// CommitOption is one choice in a commit selector
type CommitOption struct {
	Hash    string
	Subject string
}

// Label renders the option as shown in the selector
func (o CommitOption) Label() string {
	short := o.Hash
	if len(short) > 7 {
		short = short[:7]
	}
	return fmt.Sprintf("%s %s", short, o.Subject)
}

// SelectCommit asks the user to pick one commit and returns its hash
func SelectCommit(message string, options []CommitOption) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("no commits to choose from")
	}

	labels := make([]string, len(options))
	byLabel := make(map[string]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label()
		byLabel[labels[i]] = opt.Hash
	}

	var selected string
	prompt := &survey.Select{
		Message:  message,
		Options:  labels,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", ErrCanceled
	}

	return byLabel[selected], nil
}
