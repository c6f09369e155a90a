// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeInitializesStyles(t *testing.T) {
	theme := NewTheme()
	if theme == nil {
		t.Fatal("NewTheme returned nil")
	}
	// Spot-check a few styles render without panicking.
	if theme.ScreenTitle.Render("Groups") == "" {
		t.Error("ScreenTitle rendered empty")
	}
	if theme.ErrorBox.Render("boom") == "" {
		t.Error("ErrorBox rendered empty")
	}
}

func TestGetLayoutMode(t *testing.T) {
	theme := NewTheme()
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
		{200, LayoutWide},
	}
	for _, tt := range tests {
		theme.SetSize(tt.width, 24)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestRenderStatusHelpers(t *testing.T) {
	if RenderSuccess("done") == "" {
		t.Error("RenderSuccess rendered empty")
	}
	if RenderError("failed") == "" {
		t.Error("RenderError rendered empty")
	}
}
