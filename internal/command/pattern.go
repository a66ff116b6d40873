package command

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrPatternAlreadySet is returned when a command's pattern is assigned twice.
var ErrPatternAlreadySet = errors.New("command pattern already set")

// pattern is embedded by every command. The whole comment body has to match,
// so the configured expression is anchored on both ends.
type pattern struct {
	raw string
	re  *regexp.Regexp
}

func (p *pattern) CommandRegex() string {
	return p.raw
}

func (p *pattern) SetCommandRegex(expr string) error {
	if p.re != nil {
		return ErrPatternAlreadySet
	}
	re, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	p.raw, p.re = expr, re
	return nil
}

func (p *pattern) Matches(body string) bool {
	return p.re != nil && p.re.MatchString(body)
}
