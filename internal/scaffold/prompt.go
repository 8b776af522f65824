package scaffold

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// PromptDriver abstracts the interactive prompts so Ask can be tested
// without a real terminal.
type PromptDriver interface {
	Input(message, def string) (string, error)
	Select(message string, options []string) (int, error)
	Confirm(message string, def bool) (bool, error)
}

type surveyDriver struct{}

// NewSurveyDriver returns a PromptDriver backed by survey prompts.
func NewSurveyDriver() PromptDriver { return &surveyDriver{} }

func (d *surveyDriver) Input(message, def string) (string, error) {
	var out string
	prompt := &survey.Input{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (d *surveyDriver) Select(message string, options []string) (int, error) {
	var out int
	prompt := &survey.Select{Message: message, Options: options}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, err
	}
	return out, nil
}

func (d *surveyDriver) Confirm(message string, def bool) (bool, error) {
	var out bool
	prompt := &survey.Confirm{Message: message, Default: def}
	if err := survey.AskOne(prompt, &out); err != nil {
		return false, err
	}
	return out, nil
}

// Ask walks the interactive scaffolding flow and returns a validated spec.
func Ask(driver PromptDriver) (ModelSpec, error) {
	var spec ModelSpec

	name, err := driver.Input("Model name (e.g. Article):", "")
	if err != nil {
		return spec, err
	}
	spec.Name = strings.TrimSpace(name)

	pkg, err := driver.Input("Package name:", "main")
	if err != nil {
		return spec, err
	}
	spec.Package = strings.TrimSpace(pkg)

	table, err := driver.Input("Table name:", snakePlural(spec.Name))
	if err != nil {
		return spec, err
	}
	spec.Table = strings.TrimSpace(table)

	kinds := Kinds()
	for {
		fieldName, err := driver.Input("Field name:", "")
		if err != nil {
			return spec, err
		}
		fieldName = strings.TrimSpace(fieldName)
		if fieldName == "" {
			if len(spec.Fields) > 0 {
				break
			}
			return spec, fmt.Errorf("scaffold: at least one field is required")
		}

		idx, err := driver.Select(fmt.Sprintf("Kind of %q:", fieldName), kinds)
		if err != nil {
			return spec, err
		}
		if idx < 0 || idx >= len(kinds) {
			return spec, fmt.Errorf("scaffold: kind selection out of range")
		}
		spec.Fields = append(spec.Fields, FieldSpec{
			Name: fieldName,
			Kind: fieldKinds[kinds[idx]],
		})

		more, err := driver.Confirm("Add another field?", true)
		if err != nil {
			return spec, err
		}
		if !more {
			break
		}
	}

	if err := spec.Validate(); err != nil {
		return spec, err
	}
	return spec, nil
}
