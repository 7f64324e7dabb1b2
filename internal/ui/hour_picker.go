package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ngmaloney/weather-terminal/internal/wmo"
)

const slotWidth = 9

// liveIndex returns the hourly slot containing the current time, or 0 when
// the clock falls outside the series
func (m Model) liveIndex() int {
	if m.bundle == nil {
		return 0
	}
	now := m.now().In(m.bundle.TimeLocation())
	if idx, ok := m.bundle.Hourly.IndexAt(now); ok {
		return idx
	}
	return 0
}

// cursor is the slot the picker is centred on
func (m Model) cursor() int {
	if idx, ok := m.selection.Index(); ok {
		return idx
	}
	return m.liveIndex()
}

// visibleSlots returns the [start, end) window of slots that fit in width
func visibleSlots(cursor, total, width int) (int, int) {
	visible := width / slotWidth
	if visible < 1 {
		visible = 1
	}
	if visible > total {
		visible = total
	}
	start := cursor - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

// renderHourPicker renders a horizontal strip of hourly slots
func (m Model) renderHourPicker(width int) string {
	if m.bundle == nil || m.bundle.Hourly.Len() == 0 {
		return ""
	}

	h := m.bundle.Hourly
	live := m.liveIndex()
	selected, hasSelection := m.selection.Index()
	start, end := visibleSlots(m.cursor(), h.Len(), width-4)

	slots := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		t := h.Time[i]
		label := formatHour(t.Hour())
		if i == live {
			label = "Now"
		}

		icon := "?"
		if m.codes != nil {
			if e, err := m.codes.Lookup(h.WeatherCode[i], wmo.PeriodFor(t.Hour())); err == nil {
				icon = e.Icon
			}
		}

		cell := strings.Join([]string{
			label,
			icon,
			formatTemperature(h.Temperature[i], m.unit),
		}, "\n")

		style := slotStyle
		switch {
		case hasSelection && i == selected:
			style = selectedSlotStyle
		case !hasSelection && i == live:
			style = currentSlotStyle
		}
		slots = append(slots, style.Width(slotWidth).Render(cell))
	}

	day := h.Time[m.cursor()].Format("Monday, January 2")
	header := titleStyle.Render("Hourly") + "  " + mutedStyle.Render(day)
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, slots...))
}
