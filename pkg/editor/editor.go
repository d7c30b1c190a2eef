// Package editor implements the interactive, terminal-driven schema editing
// flow. It operates on the ordered model representation so field order always
// reflects what the user arranged, and leaves schema export to the caller.
package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/bvqbao/Kiln/pkg/model"
	"github.com/bvqbao/Kiln/pkg/schema"
)

const (
	actionAdd    = "Add field"
	actionEdit   = "Edit field"
	actionRemove = "Remove field"
	actionMove   = "Move field"
	actionDone   = "Done"
)

var typeOptions = []schema.PropertyType{
	schema.TypeString,
	schema.TypeNumber,
	schema.TypeInteger,
	schema.TypeBoolean,
}

// Run drives an editing session over the starting model and returns the
// edited copy. The input model is never mutated. A nil driver defaults to the
// terminal-backed implementation.
func Run(ctx context.Context, driver PromptDriver, start model.Model) (model.Model, error) {
	if driver == nil {
		driver = NewSurveyDriver()
	}

	working := append([]model.Property(nil), start.Properties...)
	for {
		options := []string{actionAdd}
		if len(working) > 0 {
			options = append(options, actionEdit, actionRemove, actionMove)
		}
		options = append(options, actionDone)

		choice, err := driver.Select(ctx, SelectConfig{
			Message: fmt.Sprintf("Schema fields (%d)", len(working)),
			Options: options,
		})
		if err != nil {
			return model.Model{}, err
		}
		if choice < 0 || choice >= len(options) {
			return model.Model{}, fmt.Errorf("editor: invalid menu choice %d", choice)
		}

		switch options[choice] {
		case actionAdd:
			prop, err := promptField(ctx, driver, model.Property{Type: schema.TypeString})
			if err != nil {
				return model.Model{}, err
			}
			working = append(working, prop)
		case actionEdit:
			idx, err := pickField(ctx, driver, working, "Edit which field?")
			if err != nil {
				return model.Model{}, err
			}
			prop, err := promptField(ctx, driver, working[idx])
			if err != nil {
				return model.Model{}, err
			}
			working[idx] = prop
		case actionRemove:
			idx, err := pickField(ctx, driver, working, "Remove which field?")
			if err != nil {
				return model.Model{}, err
			}
			working = append(working[:idx], working[idx+1:]...)
		case actionMove:
			moved, err := moveField(ctx, driver, working)
			if err != nil {
				return model.Model{}, err
			}
			working = moved
		case actionDone:
			if working == nil {
				working = []model.Property{}
			}
			return model.Model{Properties: working}, nil
		}
	}
}

func promptField(ctx context.Context, driver PromptDriver, current model.Property) (model.Property, error) {
	title, err := driver.Input(ctx, InputConfig{
		Message:   "Field title",
		Default:   current.Title,
		Help:      "Display name; the schema key is derived from it",
		Validator: validateTitle,
	})
	if err != nil {
		return model.Property{}, err
	}

	defaultIndex := 0
	for i, option := range typeOptions {
		if option == current.Type {
			defaultIndex = i
		}
	}
	typeIdx, err := driver.Select(ctx, SelectConfig{
		Message:      "Field type",
		Options:      typeOptionLabels(),
		DefaultIndex: defaultIndex,
	})
	if err != nil {
		return model.Property{}, err
	}
	if typeIdx < 0 || typeIdx >= len(typeOptions) {
		return model.Property{}, fmt.Errorf("editor: invalid type choice %d", typeIdx)
	}

	description, err := driver.Input(ctx, InputConfig{
		Message: "Description",
		Default: current.Description,
	})
	if err != nil {
		return model.Property{}, err
	}

	required, err := driver.Confirm(ctx, ConfirmConfig{
		Message: "Required?",
		Default: current.Required,
	})
	if err != nil {
		return model.Property{}, err
	}

	return model.Property{
		Title:       title,
		Description: description,
		Type:        typeOptions[typeIdx],
		Required:    required,
	}, nil
}

func pickField(ctx context.Context, driver PromptDriver, properties []model.Property, message string) (int, error) {
	labels := make([]string, 0, len(properties))
	for _, prop := range properties {
		labels = append(labels, fmt.Sprintf("%s (%s)", prop.Title, prop.Type))
	}
	idx, err := driver.Select(ctx, SelectConfig{Message: message, Options: labels})
	if err != nil {
		return 0, err
	}
	if idx < 0 || idx >= len(properties) {
		return 0, fmt.Errorf("editor: invalid field choice %d", idx)
	}
	return idx, nil
}

func moveField(ctx context.Context, driver PromptDriver, properties []model.Property) ([]model.Property, error) {
	from, err := pickField(ctx, driver, properties, "Move which field?")
	if err != nil {
		return nil, err
	}

	positions := make([]string, len(properties))
	for i := range properties {
		positions[i] = fmt.Sprintf("Position %d", i+1)
	}
	to, err := driver.Select(ctx, SelectConfig{
		Message:      "Move to",
		Options:      positions,
		DefaultIndex: from,
	})
	if err != nil {
		return nil, err
	}
	if to < 0 || to >= len(properties) {
		return nil, fmt.Errorf("editor: invalid position choice %d", to)
	}

	moved := append([]model.Property(nil), properties...)
	prop := moved[from]
	moved = append(moved[:from], moved[from+1:]...)
	moved = append(moved[:to], append([]model.Property{prop}, moved[to:]...)...)
	return moved, nil
}

func validateTitle(value string) error {
	if value == "" {
		return errors.New("title is required")
	}
	if model.TitleToName(value) == "" {
		return errors.New("title must contain at least one letter, digit, underscore, or period")
	}
	return nil
}

func typeOptionLabels() []string {
	labels := make([]string, len(typeOptions))
	for i, option := range typeOptions {
		labels[i] = string(option)
	}
	return labels
}
