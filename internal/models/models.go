package models

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed content.yaml
var defaultContent []byte

// Content holds the messages the game throws at the player when it interferes.
type Content struct {
	Conflicts   []string `yaml:"conflicts"`
	CodeReviews []string `yaml:"code_reviews"`
}

// DefaultContent returns the messages shipped with the game.
func DefaultContent() Content {
	content, err := parseContent(defaultContent)
	if err != nil {
		panic(fmt.Sprintf("embedded content.yaml is invalid: %v", err))
	}
	return content
}

func parseContent(data []byte) (Content, error) {
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return Content{}, err
	}
	return content, nil
}
