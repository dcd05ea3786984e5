package usecase

import (
	"context"
	"testing"

	"github.com/bnema/previewr/internal/application/port/mocks"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/google/go-cmp/cmp"
)

func TestComputePlacement(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultPlacementConfig()

	tests := []struct {
		name  string
		prefs func(t *testing.T) *mocks.MockPreferences
		demo  bool
		want  entity.PlacementOptions
	}{
		{
			name:  "defaults",
			prefs: func(t *testing.T) *mocks.MockPreferences { return storedPrefs(t, nil) },
			want: entity.PlacementOptions{
				Width: "55%", Height: "80%", Top: "80px", Side: entity.PositionRight, Margin: 10, ZIndex: 7,
				Classes: []string{"no-max", "no-full"}, ShadowEl: "search-preview-window", FrameName: "app/mainframe",
			},
		},
		{
			name:  "stored numbers and left side",
			prefs: func(t *testing.T) *mocks.MockPreferences {
				return storedPrefs(t, map[string]any{entity.PrefWidth: 40, entity.PrefHeight: "70", entity.PrefPosition: "left"})
			},
			want: entity.PlacementOptions{
				Width: "40%", Height: "70%", Top: "80px", Side: entity.PositionLeft, Margin: 10, ZIndex: 7,
				Classes: []string{"no-max", "no-full"}, ShadowEl: "search-preview-window", FrameName: "app/mainframe",
			},
		},
		{
			name:  "demo override",
			prefs: func(t *testing.T) *mocks.MockPreferences { return storedPrefs(t, map[string]any{entity.PrefWidth: "90"}) },
			demo:  true,
			want: entity.PlacementOptions{
				Width: "45%", Height: "40%", Top: "500px", Side: entity.PositionRight, Margin: 10, ZIndex: 7,
				Classes: []string{"no-max", "no-full"}, ShadowEl: "search-preview-window", FrameName: "app/mainframe",
			},
		},
		{
			name:  "store failure",
			prefs: failingPrefs,
			want: entity.PlacementOptions{
				Width: "55%", Height: "80%", Top: "80px", Side: entity.PositionRight, Margin: 10, ZIndex: 7,
				Classes: []string{"no-max", "no-full"}, ShadowEl: "search-preview-window", FrameName: "app/mainframe",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputePlacement(ctx, tt.prefs(t), cfg, tt.demo, 7, "app/mainframe")
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("ComputePlacement() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
