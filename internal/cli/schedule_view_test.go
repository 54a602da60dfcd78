package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/samplan/internal/contract"
	"github.com/alexanderramin/samplan/internal/domain"
	"github.com/alexanderramin/samplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewSchedule(t *testing.T) *contract.ScheduleResponse {
	t.Helper()
	app := testApp(t)
	resp, err := app.Projects.Preview(context.Background(), contract.PreviewRequest{Kickoff: domain.MustParseDate("2025-06-02")})
	require.NoError(t, err)
	return resp
}

func TestScheduleView_PhaseNavigation(t *testing.T) {
	d := teatest.New(t, newScheduleView(previewSchedule(t)), teatest.WithSize(120, 40))
	assert.Contains(t, d.View(), "P01")

	d.Press(tea.KeyTab)
	assert.Equal(t, 1, d.Model.(scheduleView).phase)
	assert.Contains(t, d.View(), "C01")
	assert.NotContains(t, d.View(), "P01")

	d.Press(tea.KeyShiftTab)
	d.Press(tea.KeyShiftTab)
	assert.Equal(t, 3, d.Model.(scheduleView).phase, "shift+tab wraps to the last phase")
	assert.Contains(t, d.View(), "U01")

	d.Type("l")
	assert.Equal(t, 0, d.Model.(scheduleView).phase)
}

func TestScheduleView_Quit(t *testing.T) {
	for _, k := range []string{"q", "esc"} {
		t.Run(k, func(t *testing.T) {
			d := teatest.New(t, newScheduleView(previewSchedule(t)))
			if k == "esc" {
				d.Press(tea.KeyEsc)
			} else {
				d.Type(k)
			}
			assert.True(t, d.Quitting)
		})
	}
}

func TestScheduleView_Resize(t *testing.T) {
	d := teatest.New(t, newScheduleView(previewSchedule(t)), teatest.WithSize(120, 40))
	v := d.Model.(scheduleView)
	assert.Equal(t, 120, v.vp.Width)
	assert.Equal(t, 36, v.vp.Height)
}

func TestScheduleView_NoPhases(t *testing.T) {
	d := teatest.New(t, newScheduleView(&contract.ScheduleResponse{}))
	d.Press(tea.KeyTab)
	assert.Contains(t, d.View(), "No phases.")
}
