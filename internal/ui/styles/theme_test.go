// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"
)

func TestNewThemeInitializesStyles(t *testing.T) {
	th := NewTheme()

	// A sample across the style groups; an uninitialized style would
	// render its input unchanged without padding.
	if got := th.ChatItemSelected.GetPaddingLeft(); got == 0 {
		t.Error("ChatItemSelected should carry padding")
	}
	if !th.HeaderTitle.GetBold() {
		t.Error("HeaderTitle should be bold")
	}
	if !th.Sidebar.GetBorderRight() {
		t.Error("Sidebar should have a right border")
	}
}

func TestGetLayoutMode(t *testing.T) {
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

	th := NewTheme()
	for _, tt := range tests {
		th.SetSize(tt.width, 24)
		if got := th.GetLayoutMode(); got != tt.want {
			t.Errorf("GetLayoutMode() at width %d = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestStatusRenderersIncludeIndicator(t *testing.T) {
	if got := RenderSuccess("saved"); !strings.Contains(got, StatusIndicators.Success) {
		t.Errorf("RenderSuccess missing indicator: %q", got)
	}
	if got := RenderError("failed"); !strings.Contains(got, StatusIndicators.Error) {
		t.Errorf("RenderError missing indicator: %q", got)
	}
	if got := RenderWarning("careful"); !strings.Contains(got, "careful") {
		t.Errorf("RenderWarning missing message: %q", got)
	}
}
