package dailyliving

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/medtui/internal/storage"
)

var ErrInvalidMealType = errors.New("dailyliving: invalid meal type")

const DailyGlassGoal = 8

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) IsValid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}

type MealResult struct {
	LogID              string
	MealType           MealType
	Items              []string
	CompletionLevel    string
	Feedback           []string
	NextMealSuggestion string
}

type HydrationStatus struct {
	GoalGlasses      int
	ConsumedToday    int
	RemainingGlasses int
	Status           string
	Reminder         string
}

type ActivityResult struct {
	ActivityID   string
	ActivityType string
	Benefits     string
	Intensity    string
}

type TodaySummary struct {
	Date                string
	MealsLogged         int
	WaterGlasses        int
	ActivitiesCompleted int
	DosesTaken          int
	Appointments        []storage.AppointmentRecord
	WellnessScore       int
}

// Service records daily-living events (meals, hydration, activities,
// appointments) in the same durable store the medication mirror uses and
// returns the canned guidance the companion app shows alongside them.
type Service struct {
	repo  storage.Repository
	newID func() string
	now   func() time.Time
}

func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo, newID: uuid.NewString, now: time.Now}
}

func NewServiceWithClock(repo storage.Repository, newID func() string, now func() time.Time) *Service {
	s := NewService(repo)
	if newID != nil {
		s.newID = newID
	}
	if now != nil {
		s.now = now
	}
	return s
}

func (s *Service) LogMeal(ctx context.Context, mealType MealType, items []string, completionLevel string) (MealResult, error) {
	if !mealType.IsValid() {
		return MealResult{}, fmt.Errorf("%w: %q", ErrInvalidMealType, mealType)
	}
	if len(items) == 0 {
		items = defaultMealItems(mealType)
	}
	if completionLevel == "" {
		completionLevel = "full"
	}

	rec := storage.MealLogRecord{
		ID:              s.newID(),
		MealType:        string(mealType),
		Items:           items,
		CompletionLevel: completionLevel,
		LoggedAt:        s.now().UTC(),
	}
	if err := s.repo.AppendMealLog(ctx, rec); err != nil {
		return MealResult{}, err
	}

	return MealResult{
		LogID:              rec.ID,
		MealType:           mealType,
		Items:              items,
		CompletionLevel:    completionLevel,
		Feedback:           nutritionFeedback(mealType, items),
		NextMealSuggestion: nextMealSuggestion(mealType),
	}, nil
}

func (s *Service) TrackHydration(ctx context.Context, glasses int) (HydrationStatus, error) {
	if glasses <= 0 {
		glasses = 1
	}
	now := s.now().UTC()
	if err := s.repo.AppendHydration(ctx, storage.HydrationEvent{
		ID:       s.newID(),
		Glasses:  glasses,
		LoggedAt: now,
	}); err != nil {
		return HydrationStatus{}, err
	}

	total, err := s.repo.HydrationGlassesOn(ctx, now.Format("2006-01-02"))
	if err != nil {
		return HydrationStatus{}, err
	}
	remaining := DailyGlassGoal - total
	if remaining < 0 {
		remaining = 0
	}
	status := "needs_improvement"
	if total >= 6 {
		status = "good"
	}
	reminder := "Goal reached, nicely done"
	if remaining > 0 {
		reminder = fmt.Sprintf("%d glasses to go today", remaining)
	}
	return HydrationStatus{
		GoalGlasses:      DailyGlassGoal,
		ConsumedToday:    total,
		RemainingGlasses: remaining,
		Status:           status,
		Reminder:         reminder,
	}, nil
}

func (s *Service) LogActivity(ctx context.Context, activityType, notes string) (ActivityResult, error) {
	activityType = strings.ToLower(strings.TrimSpace(activityType))
	if activityType == "" {
		activityType = "walk"
	}
	rec := storage.ActivityRecord{
		ID:           s.newID(),
		ActivityType: activityType,
		Notes:        notes,
		LoggedAt:     s.now().UTC(),
	}
	if err := s.repo.AppendActivity(ctx, rec); err != nil {
		return ActivityResult{}, err
	}
	benefits, intensity := activityInfo(activityType)
	return ActivityResult{
		ActivityID:   rec.ID,
		ActivityType: activityType,
		Benefits:     benefits,
		Intensity:    intensity,
	}, nil
}

func (s *Service) AddAppointment(ctx context.Context, title, appointmentType, location string, when time.Time, notes string) (storage.AppointmentRecord, error) {
	rec := storage.AppointmentRecord{
		ID:              s.newID(),
		Title:           title,
		AppointmentType: appointmentType,
		Location:        location,
		DateTime:        when.UTC(),
		Notes:           notes,
	}
	if err := s.repo.CreateAppointment(ctx, rec); err != nil {
		return storage.AppointmentRecord{}, err
	}
	return rec, nil
}

// NextAppointment returns the earliest appointment today that has not
// started yet, or false when the day has none left.
func (s *Service) NextAppointment(ctx context.Context) (storage.AppointmentRecord, bool, error) {
	now := s.now().UTC()
	appts, err := s.repo.ListAppointments(ctx, storage.DayFilter{Day: now.Format("2006-01-02")})
	if err != nil {
		return storage.AppointmentRecord{}, false, err
	}
	for _, appt := range appts {
		if appt.DateTime.After(now) {
			return appt, true, nil
		}
	}
	return storage.AppointmentRecord{}, false, nil
}

func (s *Service) Summary(ctx context.Context) (TodaySummary, error) {
	now := s.now().UTC()
	day := now.Format("2006-01-02")

	meals, err := s.repo.ListMealLogs(ctx, storage.DayFilter{Day: day})
	if err != nil {
		return TodaySummary{}, err
	}
	glasses, err := s.repo.HydrationGlassesOn(ctx, day)
	if err != nil {
		return TodaySummary{}, err
	}
	activities, err := s.repo.ListActivities(ctx, storage.DayFilter{Day: day})
	if err != nil {
		return TodaySummary{}, err
	}
	doses, err := s.repo.ListDoseLogs(ctx, storage.DoseLogFilter{Status: "taken", Day: day})
	if err != nil {
		return TodaySummary{}, err
	}
	appts, err := s.repo.ListAppointments(ctx, storage.DayFilter{Day: day})
	if err != nil {
		return TodaySummary{}, err
	}

	summary := TodaySummary{
		Date:                day,
		MealsLogged:         len(meals),
		WaterGlasses:        glasses,
		ActivitiesCompleted: len(activities),
		DosesTaken:          len(doses),
		Appointments:        appts,
	}
	summary.WellnessScore = wellnessScore(summary)
	return summary, nil
}

// wellnessScore is a coarse 0-100 signal: three meals, the glass goal, one
// activity and one taken dose each earn a quarter of the score.
func wellnessScore(s TodaySummary) int {
	score := 0
	score += scaled(s.MealsLogged, 3, 25)
	score += scaled(s.WaterGlasses, DailyGlassGoal, 25)
	score += scaled(s.ActivitiesCompleted, 1, 25)
	score += scaled(s.DosesTaken, 1, 25)
	return score
}

func scaled(have, want, weight int) int {
	if have >= want {
		return weight
	}
	if want == 0 {
		return 0
	}
	return have * weight / want
}

func defaultMealItems(mealType MealType) []string {
	switch mealType {
	case MealBreakfast:
		return []string{"oatmeal with fruit", "toast", "orange juice"}
	case MealLunch:
		return []string{"chicken soup", "whole wheat bread", "apple"}
	case MealDinner:
		return []string{"baked fish", "steamed vegetables", "rice"}
	default:
		return []string{"yogurt", "nuts", "banana"}
	}
}

func nutritionFeedback(mealType MealType, items []string) []string {
	joined := strings.ToLower(strings.Join(items, " "))
	feedback := make([]string, 0, 2)
	if strings.Contains(joined, "vegetable") || strings.Contains(joined, "fruit") {
		feedback = append(feedback, "Great job including fruits or vegetables")
	}
	if strings.Contains(joined, "whole") || strings.Contains(joined, "grain") {
		feedback = append(feedback, "Good fiber choice with whole grains")
	}
	switch mealType {
	case MealBreakfast:
		feedback = append(feedback, "Good start to the day with breakfast")
	case MealLunch:
		feedback = append(feedback, "A balanced lunch helps maintain energy")
	case MealDinner:
		feedback = append(feedback, "A nutritious dinner supports good sleep")
	}
	if len(feedback) == 0 {
		feedback = append(feedback, "Thanks for logging your meal; regular meals matter")
	}
	return feedback
}

func nextMealSuggestion(mealType MealType) string {
	switch mealType {
	case MealBreakfast:
		return "For lunch, consider protein like chicken or fish with vegetables"
	case MealLunch:
		return "For dinner, a light meal with complex carbs helps sleep"
	case MealDinner:
		return "For tomorrow's breakfast, oatmeal with berries provides sustained energy"
	default:
		return "Next meal: a balanced plate with protein, veggies, and whole grains"
	}
}

func activityInfo(activityType string) (benefits, intensity string) {
	switch activityType {
	case "exercise":
		return "Strengthens muscles, improves balance", "moderate"
	case "social":
		return "Reduces loneliness, improves mental health", "light"
	case "hobby":
		return "Cognitive stimulation, relaxation", "sedentary"
	default:
		return "Improves circulation, mood, and joint health", "light"
	}
}
