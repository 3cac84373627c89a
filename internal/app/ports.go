package app

import (
	"context"

	"github.com/hylla/lanes/internal/domain"
)

// ChangeLedger stores the activity log derived from store notifications.
type ChangeLedger interface {
	AppendChangeEvents(context.Context, []domain.ChangeEvent) error
	ListChangeEvents(context.Context, int) ([]domain.ChangeEvent, error)
}

// ActivityReader lists recorded activity, newest first.
type ActivityReader interface {
	ListChangeEvents(context.Context, int) ([]domain.ChangeEvent, error)
}
