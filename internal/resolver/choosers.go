package resolver

import (
	"fmt"
	"io"

	"github.com/fenilsonani/dupsweep/internal/config"
	"github.com/fenilsonani/dupsweep/internal/duplicates"
	"github.com/fenilsonani/dupsweep/internal/prompt"
	"github.com/fenilsonani/dupsweep/internal/ui/styles"
	"github.com/fenilsonani/dupsweep/pkg/utils"
)

// PromptChooser lists a group with zero-based indices and asks which file to
// keep, repeating the question until a valid index is given
type PromptChooser struct {
	in  prompt.Provider
	out io.Writer
}

// NewPromptChooser creates a chooser that reads answers from in and writes listings to out
func NewPromptChooser(in prompt.Provider, out io.Writer) *PromptChooser {
	return &PromptChooser{in: in, out: out}
}

// Choose prints the group and returns the validated index
func (c *PromptChooser) Choose(group *duplicates.Group) (int, error) {
	fmt.Fprintln(c.out, styles.HeaderStyle.Render(fmt.Sprintf("- Checksum: %s", group.Checksum)))
	for i, file := range group.Files {
		fmt.Fprintf(c.out, "%s %s %s\n",
			styles.IndexStyle.Render(fmt.Sprintf("%d:", i)),
			styles.FilePathStyle.Render(file.Path),
			styles.DimStyle.Render(fmt.Sprintf("(%s, modified %s)", utils.FormatBytes(file.Size), file.ModTime.Format("2006-01-02 15:04:05"))))
	}
	fmt.Fprintln(c.out, "What file do you want to keep?")

	return prompt.AskIndex(c.in, c.out, "Index: ", group.Len())
}

// RuleChooser keeps a file without asking, based on a fixed rule
type RuleChooser struct {
	rule string
}

// NewRuleChooser creates a chooser for one of the non-interactive keep rules
func NewRuleChooser(rule string) (*RuleChooser, error) {
	switch rule {
	case config.KeepFirst, config.KeepNewest, config.KeepOldest, config.KeepShortestName:
		return &RuleChooser{rule: rule}, nil
	default:
		return nil, fmt.Errorf("keep rule %q needs an interactive chooser", rule)
	}
}

// Choose returns the index selected by the rule. Ties go to the earliest file in scan order.
func (c *RuleChooser) Choose(group *duplicates.Group) (int, error) {
	if group.Len() == 0 {
		return 0, fmt.Errorf("%s: %w", group.Checksum, duplicates.ErrTooSmall)
	}

	best := 0
	for i := 1; i < group.Len(); i++ {
		candidate, current := group.Files[i], group.Files[best]
		switch c.rule {
		case config.KeepNewest:
			if candidate.ModTime.After(current.ModTime) {
				best = i
			}
		case config.KeepOldest:
			if candidate.ModTime.Before(current.ModTime) {
				best = i
			}
		case config.KeepShortestName:
			if len(candidate.Name) < len(current.Name) {
				best = i
			}
		}
	}

	return best, nil
}
