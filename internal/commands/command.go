package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sandeepkv93/medtui/internal/model"
)

type Type string

const (
	TypeAdd     Type = "add"
	TypeTake    Type = "take"
	TypeDismiss Type = "dismiss"
	TypeMeal    Type = "meal"
	TypeWater   Type = "water"
	TypeSummary Type = "summary"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Name   string
	Dosage string
	Times  []string
	Days   []string // empty means every day
}

type TakeArgs struct {
	Name string
}

type DismissArgs struct {
	Name string
}

type MealArgs struct {
	MealType string
	Items    []string
}

type WaterArgs struct {
	Glasses int
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Take    *TakeArgs
	Dismiss *DismissArgs
	Meal    *MealArgs
	Water   *WaterArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeTake:
		return parseName(input, TypeTake, args)
	case TypeDismiss:
		return parseName(input, TypeDismiss, args)
	case TypeMeal:
		return parseMeal(input, args)
	case TypeWater:
		return parseWater(input, args)
	case TypeSummary:
		return Command{Type: TypeSummary, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// parseAdd reads `add <name…> dose=<dosage> at=<HH:MM[,HH:MM]>
// [days=<d1,d2|daily>]`. Words before the first key=value pair form the
// medication name.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a medication name"}
	}

	var nameParts []string
	parsed := AddArgs{}
	for _, arg := range args {
		key, value, isPair := strings.Cut(arg, "=")
		if !isPair {
			if len(parsed.Dosage) > 0 || len(parsed.Times) > 0 || len(parsed.Days) > 0 {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unexpected argument after options: %s", arg)}
			}
			nameParts = append(nameParts, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "dose":
			parsed.Dosage = value
		case "at":
			times, err := splitTimes(value)
			if err != nil {
				return Command{}, err
			}
			parsed.Times = times
		case "days":
			days, err := splitDays(value)
			if err != nil {
				return Command{}, err
			}
			parsed.Days = days
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown option: %s", key)}
		}
	}

	parsed.Name = strings.TrimSpace(strings.Join(nameParts, " "))
	if parsed.Name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a medication name"}
	}
	if len(parsed.Times) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires at=<HH:MM[,HH:MM]>"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &parsed}, nil
}

func splitTimes(value string) ([]string, error) {
	var times []string
	for _, t := range strings.Split(value, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, err := model.MinutesOfDay(t); err != nil {
			return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time %q, want HH:MM", t)}
		}
		times = append(times, t)
	}
	if len(times) == 0 {
		return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: "at= requires at least one HH:MM time"}
	}
	return times, nil
}

func splitDays(value string) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(value), "daily") {
		return nil, nil
	}
	var days []string
	for _, d := range strings.Split(value, ",") {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if !model.IsWeekdayName(d) {
			return nil, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid day %q", d)}
		}
		days = append(days, d)
	}
	return days, nil
}

func parseName(raw string, typ Type, args []string) (Command, error) {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a medication name", typ)}
	}
	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeTake:
		cmd.Take = &TakeArgs{Name: name}
	case TypeDismiss:
		cmd.Dismiss = &DismissArgs{Name: name}
	}
	return cmd, nil
}

func parseMeal(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "meal requires a type (breakfast, lunch, dinner, snack)"}
	}
	return Command{Type: TypeMeal, Raw: raw, Meal: &MealArgs{
		MealType: strings.ToLower(args[0]),
		Items:    args[1:],
	}}, nil
}

func parseWater(raw string, args []string) (Command, error) {
	glasses := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid glass count: %s", args[0])}
		}
		glasses = n
	}
	return Command{Type: TypeWater, Raw: raw, Water: &WaterArgs{Glasses: glasses}}, nil
}
