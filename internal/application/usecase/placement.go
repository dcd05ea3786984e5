package usecase

import (
	"context"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
)

// Placement defaults.
const (
	DefaultTopOffset  = "80px"
	DefaultSideMargin = 10
	DefaultDemoWidth  = "45%"
	DefaultDemoHeight = "40%"
	DefaultDemoTop    = "500px"

	shadowElement = "search-preview-window"
)

// PlacementConfig holds the static parts of overlay placement.
type PlacementConfig struct {
	// TopOffset is the vertical space reserved for host-page chrome.
	TopOffset  string
	SideMargin int
	DemoWidth  string
	DemoHeight string
	DemoTop    string
}

// DefaultPlacementConfig returns the stock placement.
func DefaultPlacementConfig() PlacementConfig {
	return PlacementConfig{
		TopOffset:  DefaultTopOffset,
		SideMargin: DefaultSideMargin,
		DemoWidth:  DefaultDemoWidth,
		DemoHeight: DefaultDemoHeight,
		DemoTop:    DefaultDemoTop,
	}
}

// ComputePlacement derives placement options from stored preferences.
// Demo mode forces a fixed small size and a lower vertical offset.
func ComputePlacement(
	ctx context.Context,
	prefs port.Preferences,
	cfg PlacementConfig,
	demo bool,
	zIndex int,
	frameName string,
) entity.PlacementOptions {
	opts := entity.PlacementOptions{
		Width:     readString(ctx, prefs, entity.PrefWidth, entity.DefaultWidth) + "%",
		Height:    readString(ctx, prefs, entity.PrefHeight, entity.DefaultHeight) + "%",
		Top:       cfg.TopOffset,
		Side:      entity.ParsePosition(readString(ctx, prefs, entity.PrefPosition, string(entity.DefaultPosition))),
		Margin:    cfg.SideMargin,
		ZIndex:    zIndex,
		Classes:   []string{"no-max", "no-full"},
		Hidden:    false,
		ShadowEl:  shadowElement,
		FrameName: frameName,
	}

	if demo {
		opts.Width = cfg.DemoWidth
		opts.Height = cfg.DemoHeight
		opts.Top = cfg.DemoTop
	}

	return opts
}
