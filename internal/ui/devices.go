package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleDevicesKey processes keyboard input for the Devices view.
func (m Model) handleDevicesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down", "k", "up", "g", "home", "G", "end":
		m.moveCursor(msg.String(), len(m.devices))
		return m, nil
	case "enter":
		return m.switchToSelectedDevice()
	}
	return m, nil
}

// switchToSelectedDevice transfers playback to the selected device and
// returns to the Player. The device is marked active optimistically;
// the next poll confirms or corrects the guess.
func (m Model) switchToSelectedDevice() (tea.Model, tea.Cmd) {
	if !m.canCallProvider() {
		return m, nil
	}
	f := m.current()
	if len(m.devices) == 0 || f.cursor >= len(m.devices) {
		return m, nil
	}
	target := m.devices[f.cursor]

	m.reconcileDevices(target.ID)
	if m.snapshot.HasPlayback {
		m.snapshot.Playing.DeviceID = target.ID
		m.snapshot.Playing.DeviceName = target.Name
	}

	provider := m.provider
	cmd := commandCmd(m.ctx, ViewPlayer, opSwitch, func(ctx context.Context) error {
		return provider.SwitchDevice(ctx, target.ID)
	})

	m.popFrame()
	if m.current().view != ViewPlayer {
		m.removeFrames(ViewPlayer)
		m.pushFrame(frame{view: ViewPlayer})
	}
	return m, cmd
}

// renderDevices renders the available playback devices.
func (m Model) renderDevices() string {
	if m.devicesLoading && len(m.devices) == 0 {
		return m.renderPlaceholder("Looking for devices...")
	}
	if len(m.devices) == 0 {
		return m.renderPlaceholder("No devices found (open the app on one and press d)")
	}

	lines := []string{m.renderListTitle(fmt.Sprintf("Devices (%d)", len(m.devices))), ""}

	f := m.current()
	visible := maxInt(1, m.contentHeight()-len(lines))
	start, end := listWindow(len(m.devices), f.cursor, visible)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderDeviceRow(i, i == f.cursor))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderDeviceRow(index int, selected bool) string {
	d := m.devices[index]
	styles := m.theme.Styles()

	marker := styles.FaintText.Render("○")
	if d.Active {
		marker = styles.SuccessText.Render("●")
	}

	name := truncate(d.Name, maxInt(10, m.width/2))
	detail := strings.ToLower(d.Type)
	if d.Volume > 0 {
		detail = fmt.Sprintf("%s · vol %d%%", detail, d.Volume)
	}

	if selected {
		bg := NewBgStyle(m.theme.SelectionBg)
		style := m.theme.Styles().Selected
		content := bg.Render(ternary(d.Active, "●", "○"), style) + bg.Space() +
			bg.Render(name, style) + bg.Spaces(2) + bg.Render(detail, style)
		return lipgloss.NewStyle().
			Background(lipgloss.Color(m.theme.SelectionBg)).
			Width(m.width).
			Render(content)
	}

	return marker + " " + styles.Text.Render(name) + "  " + styles.MutedText.Render(detail)
}
