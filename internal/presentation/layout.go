// Package presentation derives display hints from the client viewport. The
// validation and encoding code never reads these values.
package presentation

import (
	"net/http"
	"strconv"
	"strings"
)

type Layout string

const (
	// LayoutPanel shows the QR code next to the form.
	LayoutPanel Layout = "panel"
	// LayoutModal shows the QR code in an overlay opened on demand.
	LayoutModal Layout = "modal"
)

// MobileBreakpoint is the narrowest viewport that still gets the side panel.
const MobileBreakpoint = 1024

func LayoutFor(viewportWidth int) Layout {
	if viewportWidth > 0 && viewportWidth < MobileBreakpoint {
		return LayoutModal
	}
	return LayoutPanel
}

// ViewportWidth reads the width from the viewport_width query parameter,
// falling back to the Sec-CH-Viewport-Width client hint. It returns 0 when
// neither is usable.
func ViewportWidth(r *http.Request) int {
	for _, raw := range []string{
		r.URL.Query().Get("viewport_width"),
		r.Header.Get("Sec-CH-Viewport-Width"),
	} {
		if w, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil && w > 0 {
			return w
		}
	}
	return 0
}
