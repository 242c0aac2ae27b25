package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/commands"
	"github.com/sandeepkv93/medtui/internal/model"
	"github.com/sandeepkv93/medtui/internal/transport"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		if msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + " ")
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.store == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "medication store not configured"}
			}
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			med, err := m.store.WriteThrough(ctx, createFields(a))
			if err != nil {
				return commands.Result{}, err
			}
			m.CurrentScreen = ScreenToday
			m.refreshMedications()
			if med.Provenance == model.ProvenanceLocalCache {
				return commands.Result{Message: fmt.Sprintf("added %s (saved locally, pending sync)", med.Name)}, nil
			}
			return commands.Result{Message: fmt.Sprintf("added %s", med.Name)}, nil
		},
		Take: func(a commands.TakeArgs) (commands.Result, error) {
			med, ok := m.findMedicationByName(a.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no medication named %q", a.Name)}
			}
			m.selectMedication(med.ID)
			m.markSelectedDose(model.DoseStatusTaken)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: fmt.Sprintf("%s marked taken", med.Name)}, nil
		},
		Dismiss: func(a commands.DismissArgs) (commands.Result, error) {
			med, ok := m.findMedicationByName(a.Name)
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no medication named %q", a.Name)}
			}
			m.removeReminderNotifications(med.ID, model.DateOf(m.now().UTC()))
			return commands.Result{Message: fmt.Sprintf("reminders dismissed for %s", med.Name)}, nil
		},
		Meal: func(a commands.MealArgs) (commands.Result, error) {
			msg, err := m.logMealFromPalette(a.MealType, a.Items)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: msg}, nil
		},
		Water: func(a commands.WaterArgs) (commands.Result, error) {
			m.trackWater(a.Glasses)
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Summary: func() (commands.Result, error) {
			m.CurrentScreen = ScreenDaily
			m.refreshDailySummary()
			s := m.Daily.Summary
			return commands.Result{Message: fmt.Sprintf("today: %d meals, %d glasses, %d activities, %d doses taken", s.MealsLogged, s.WaterGlasses, s.ActivitiesCompleted, s.DosesTaken)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "", "error")
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func createFields(a commands.AddArgs) transport.CreateMedicationFields {
	tz, _ := time.Now().Zone()
	return transport.CreateMedicationFields{
		Name:     a.Name,
		Dosage:   a.Dosage,
		Times:    a.Times,
		Days:     a.Days,
		Timezone: tz,
		IsActive: true,
	}
}

func (m *Model) findMedicationByName(name string) (model.Medication, bool) {
	for _, med := range m.Today.Medications {
		if strings.EqualFold(med.Name, name) {
			return med, true
		}
	}
	return model.Medication{}, false
}

func (m *Model) selectMedication(id string) {
	for i, med := range m.Today.Medications {
		if med.ID == id {
			m.Today.Cursor = i
			m.SelectedMedID = id
			return
		}
	}
}
