package tray

import (
	"errors"
	"testing"
)

type fakeCheckbox struct {
	checked bool
	title   string
}

func (c *fakeCheckbox) Checked() bool         { return c.checked }
func (c *fakeCheckbox) Check()                { c.checked = true }
func (c *fakeCheckbox) Uncheck()              { c.checked = false }
func (c *fakeCheckbox) SetTitle(title string) { c.title = title }

func TestAutostartToggle_Click(t *testing.T) {
	errDenied := errors.New("failed to add to startup: access denied")

	tests := []struct {
		name    string
		initial bool
		setErr  error
		want    bool
	}{
		{"enable", false, nil, true},
		{"disable", true, nil, false},
		{"failed enable reverts", false, errDenied, false},
		{"failed disable reverts", true, errDenied, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &fakeCheckbox{}
			var got []bool
			a := &autostartToggle{
				item:  item,
				query: func() (bool, error) { return tt.initial, nil },
				set: func(enabled bool) error {
					got = append(got, enabled)
					return tt.setErr
				},
			}
			a.refresh()
			a.click()

			if item.checked != tt.want {
				t.Errorf("checked = %v, want %v", item.checked, tt.want)
			}
			if len(got) != 1 || got[0] != !tt.initial {
				t.Errorf("set called with %v, want [%v]", got, !tt.initial)
			}
		})
	}
}

func TestAutostartToggle_NilSetter(t *testing.T) {
	item := &fakeCheckbox{}
	a := &autostartToggle{item: item}
	a.refresh()
	a.click()
	if !item.checked {
		t.Error("click without a setter did not check the item")
	}
}

func TestAutostartToggle_UnknownState(t *testing.T) {
	item := &fakeCheckbox{checked: true}
	sets := 0
	a := &autostartToggle{
		item:  item,
		query: func() (bool, error) { return false, errors.New("unable to resolve config directory") },
		set: func(bool) error {
			sets++
			return nil
		},
	}

	a.refresh()
	if item.title != autostartTitleUnknown || item.checked {
		t.Fatalf("after failed query: title %q checked %v", item.title, item.checked)
	}

	a.click()
	if sets != 0 {
		t.Errorf("click in unknown state changed the registration %d times", sets)
	}

	a.query = func() (bool, error) { return true, nil }
	a.click()
	if item.title != autostartTitle || !item.checked {
		t.Errorf("after recovered query: title %q checked %v", item.title, item.checked)
	}
	if sets != 0 {
		t.Errorf("recovering click changed the registration %d times", sets)
	}

	a.click()
	if sets != 1 || item.checked {
		t.Errorf("toggle after recovery: sets %d checked %v", sets, item.checked)
	}
}
