package ui

import (
	"reflect"
	"testing"
)

func deviceActive(m Model, id string) bool {
	for _, d := range m.devices {
		if d.ID == id {
			return d.Active
		}
	}
	return false
}

func TestDevicesViewSelectsActiveDevice(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "d")
	if m.current().view != ViewDevices {
		t.Fatalf("view = %v, want ViewDevices", m.current().view)
	}
	if !m.devicesLoading {
		t.Fatalf("devicesLoading not set while the fetch runs")
	}
	m = exec(t, m, cmd)

	if len(m.devices) != 2 {
		t.Fatalf("len(devices) = %d, want 2", len(m.devices))
	}
	if m.devicesLoading {
		t.Fatalf("devicesLoading still set after the list arrived")
	}
	if got := m.current().cursor; got != 0 {
		t.Fatalf("cursor = %d, want 0 (the active device)", got)
	}
}

func TestDeviceSwitchOptimisticThenCorrected(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)
	m, _ = drive(t, m, snapshotMsg(playingSnapshot("Song", 50)))

	m, cmd := press(t, m, "d")
	m = exec(t, m, cmd)

	m, _ = press(t, m, "j") // select the inactive Laptop
	m, cmd = press(t, m, "enter")

	// Optimistic: the chosen device shows active and the Player opens
	// before the provider answers.
	if m.current().view != ViewPlayer {
		t.Fatalf("view = %v, want ViewPlayer after switch", m.current().view)
	}
	if !deviceActive(m, "dev-x") || deviceActive(m, "dev-a") {
		t.Fatalf("optimistic active flags wrong: %+v", m.devices)
	}
	if m.snapshot.Playing.DeviceID != "dev-x" {
		t.Fatalf("optimistic snapshot device = %q, want dev-x", m.snapshot.Playing.DeviceID)
	}

	m = exec(t, m, cmd)
	if want := []string{"dev-x"}; !reflect.DeepEqual(provider.switched, want) {
		t.Fatalf("SwitchDevice calls = %v, want %v", provider.switched, want)
	}

	// The poll reports the switch did not take: flags follow the poll.
	m, _ = drive(t, m, snapshotMsg(playingSnapshot("Song", 50))) // still dev-a
	if !deviceActive(m, "dev-a") || deviceActive(m, "dev-x") {
		t.Fatalf("poll did not correct active flags: %+v", m.devices)
	}
	if m.snapshot.Playing.DeviceID != "dev-a" {
		t.Fatalf("snapshot device = %q, want dev-a", m.snapshot.Playing.DeviceID)
	}
}

func TestDevicesKeyRefetchesWhenCurrent(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "d")
	m = exec(t, m, cmd)

	m, cmd = press(t, m, "d")
	if cmd == nil {
		t.Fatalf("d in the Devices view should refetch the list")
	}

	frames := 0
	for _, f := range m.stack {
		if f.view == ViewDevices {
			frames++
		}
	}
	if frames != 1 {
		t.Fatalf("Devices frames on stack = %d, want 1", frames)
	}
}

func TestLateDevicesResultDiscardedAfterBack(t *testing.T) {
	provider := libraryProvider()
	m := newTestModel(t, provider)

	m, cmd := press(t, m, "d")
	m, _ = press(t, m, "backspace") // leave before the list arrives
	m = exec(t, m, cmd)

	if m.current().view != ViewExplorer {
		t.Fatalf("view = %v, want ViewExplorer", m.current().view)
	}
	if len(m.devices) != 0 {
		t.Fatalf("late device list applied: %+v", m.devices)
	}
}
