package order

import (
	"errors"

	"meatdelivery/internal/pkg/errs"
)

const (
	MinScore = 1
	MaxScore = 5
)

// Rating is the customer's feedback on a delivered order. Either score may be absent.
type Rating struct {
	Food     *int
	Delivery *int
	Comment  string
}

// Validate requires at least one of the scores or a comment and keeps scores in 1..5.
func (r Rating) Validate() error {
	if r.Food == nil && r.Delivery == nil && r.Comment == "" {
		return errs.NewValueIsRequiredError("rating")
	}
	return errors.Join(validateScore("rating.food", r.Food), validateScore("rating.delivery", r.Delivery))
}

func validateScore(name string, score *int) error {
	if score == nil {
		return nil
	}
	if *score < MinScore || *score > MaxScore {
		return errs.NewValueIsOutOfRangeError(name, *score, MinScore, MaxScore)
	}
	return nil
}
