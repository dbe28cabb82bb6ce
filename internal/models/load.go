package models

import (
	"fmt"
	"os"
)

// LoadContent reads interference messages from a YAML file. An empty path
// yields the default content. Lists missing from the file fall back to the
// defaults so a file may override only conflicts or only code reviews.
func LoadContent(path string) (Content, error) {
	content := DefaultContent()
	if path == "" {
		return content, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("reading content file: %w", err)
	}

	custom, err := parseContent(data)
	if err != nil {
		return Content{}, fmt.Errorf("parsing content file %s: %w", path, err)
	}

	if custom.Conflicts != nil {
		content.Conflicts = custom.Conflicts
	}
	if custom.CodeReviews != nil {
		content.CodeReviews = custom.CodeReviews
	}
	return content, nil
}
