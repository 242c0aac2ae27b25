package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/medtui/internal/dailyliving"
	"github.com/sandeepkv93/medtui/internal/views"
)

func (m Model) handleDailyKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "w":
		m.trackWater(1)
	case "a":
		m.logQuickActivity("walk")
	case "e":
		m.logQuickActivity("exercise")
	case "r":
		m.refreshDailySummary()
		m.Status = StatusBar{Text: "daily summary refreshed", IsError: false}
	}
	return m
}

func (m *Model) refreshDailySummary() {
	if m.daily == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	summary, err := m.daily.Summary(ctx)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Daily.Summary = summary
	if m.Daily.Hydration.GoalGlasses == 0 {
		m.Daily.Hydration.GoalGlasses = dailyliving.DailyGlassGoal
	}
	m.Daily.Hydration.ConsumedToday = summary.WaterGlasses
}

func (m *Model) trackWater(glasses int) {
	if m.daily == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	status, err := m.daily.TrackHydration(ctx, glasses)
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Daily.Hydration = status
	m.refreshDailySummary()
	m.Status = StatusBar{Text: fmt.Sprintf("water logged: %d/%d glasses", status.ConsumedToday, status.GoalGlasses), IsError: false}
}

func (m *Model) logQuickActivity(activityType string) {
	if m.daily == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	res, err := m.daily.LogActivity(ctx, activityType, "")
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.refreshDailySummary()
	m.Status = StatusBar{Text: fmt.Sprintf("%s logged (%s): %s", res.ActivityType, res.Intensity, res.Benefits), IsError: false}
}

func (m *Model) logMealFromPalette(mealType string, items []string) (string, error) {
	if m.daily == nil {
		return "", fmt.Errorf("daily living service not configured")
	}
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	res, err := m.daily.LogMeal(ctx, dailyliving.MealType(mealType), items, "")
	if err != nil {
		return "", err
	}
	m.Daily.Feedback = res.Feedback
	m.refreshDailySummary()
	return fmt.Sprintf("%s logged; %s", res.MealType, res.NextMealSuggestion), nil
}

func (m Model) renderDailyScreen() string {
	s := m.Daily.Summary
	appts := make([]views.AppointmentItemData, 0, len(s.Appointments))
	for _, appt := range s.Appointments {
		appts = append(appts, views.AppointmentItemData{
			Title:    appt.Title,
			Kind:     appt.AppointmentType,
			Location: appt.Location,
			At:       appt.DateTime.Format("15:04"),
		})
	}
	return views.RenderDailyPanel(views.DailyPanelData{
		Date:                s.Date,
		MealsLogged:         s.MealsLogged,
		WaterGlasses:        s.WaterGlasses,
		WaterGoal:           dailyliving.DailyGlassGoal,
		HydrationView:       m.hydrationProgress.View(),
		HydrationReminder:   m.Daily.Hydration.Reminder,
		ActivitiesCompleted: s.ActivitiesCompleted,
		DosesTaken:          s.DosesTaken,
		WellnessScore:       s.WellnessScore,
		Feedback:            m.Daily.Feedback,
		Appointments:        appts,
	})
}
