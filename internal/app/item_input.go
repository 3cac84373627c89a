package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hylla/lanes/internal/validation"
)

// Field constraints shared by the input form and the server adapters.
var (
	titleConstraints = validation.Constraints{
		Required:  true,
		MinLength: validation.Length(2),
	}
	descriptionConstraints = validation.Constraints{
		Required:  true,
		MinLength: validation.Length(5),
	}
	peopleConstraints = validation.Constraints{
		Required: true,
		Min:      validation.Bound(1),
		Max:      validation.Bound(5),
	}
)

// ItemInput holds the values needed to create an item.
type ItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	People      int    `json:"people"`
}

// CheckItemInput validates item fields and reports the first failing field.
func CheckItemInput(in ItemInput) error {
	switch {
	case !validation.Validate(in.Title, titleConstraints):
		return fmt.Errorf("%w: title must have at least 2 characters", ErrInvalidInput)
	case !validation.Validate(in.Description, descriptionConstraints):
		return fmt.Errorf("%w: description must have at least 5 characters", ErrInvalidInput)
	case !validation.Validate(in.People, peopleConstraints):
		return fmt.Errorf("%w: people must be between 1 and 5", ErrInvalidInput)
	default:
		return nil
	}
}

// ParseItemInput converts raw form values into a checked ItemInput.
func ParseItemInput(title, description, people string) (ItemInput, error) {
	if !validation.Validate(people, validation.Constraints{Required: true}) {
		return ItemInput{}, fmt.Errorf("%w: people is required", ErrInvalidInput)
	}
	n, err := strconv.Atoi(strings.TrimSpace(people))
	if err != nil {
		return ItemInput{}, fmt.Errorf("%w: people must be a whole number", ErrInvalidInput)
	}
	in := ItemInput{Title: title, Description: description, People: n}
	if err := CheckItemInput(in); err != nil {
		return ItemInput{}, err
	}
	return in, nil
}
