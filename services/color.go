package services

import (
	"context"
	"fmt"

	"github.com/looplan/looplan/core"
)

// ColorService owns the shared color registry. Colors have no owner: any
// authenticated user can create one, and every authenticated user sees
// all of them.
type ColorService struct {
	storage core.ColorStorage
}

func NewColorService(storage core.ColorStorage) *ColorService {
	return &ColorService{storage: storage}
}

func (s *ColorService) Create(ctx context.Context, input core.CreateColorInput) (*core.ScheduleColor, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Color == "" {
		return nil, core.ErrColorRequired
	}

	color := &core.ScheduleColor{
		Name:  input.Name,
		Color: input.Color,
	}

	if err := s.storage.CreateColor(ctx, color); err != nil {
		return nil, fmt.Errorf("failed to create color: %w", err)
	}

	return color, nil
}

func (s *ColorService) List(ctx context.Context) ([]*core.ScheduleColor, error) {
	colors, err := s.storage.ListColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list colors: %w", err)
	}
	if colors == nil {
		// serialize as [] rather than null
		colors = []*core.ScheduleColor{}
	}
	return colors, nil
}
