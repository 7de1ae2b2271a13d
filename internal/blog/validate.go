package blog

import (
	"errors"
	"strings"
)

// RequiredMessage is shown above a form whose title or content was blank.
const RequiredMessage = "Title and content are required."

// ErrInvalidInput is returned when title or content is blank after trimming.
var ErrInvalidInput = errors.New("title and content are required")

// Input is a validated, trimmed title/content pair.
type Input struct {
	Title   string
	Content string
}

// Validate trims both fields and rejects the pair if either ends up empty.
func Validate(title, content string) (Input, error) {
	in := Input{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
	if in.Title == "" || in.Content == "" {
		return Input{}, ErrInvalidInput
	}
	return in, nil
}
