package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add     func(AddArgs) (Result, error)
	Take    func(TakeArgs) (Result, error)
	Dismiss func(DismissArgs) (Result, error)
	Meal    func(MealArgs) (Result, error)
	Water   func(WaterArgs) (Result, error)
	Summary func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeTake:
		if handlers.Take == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "take handler not configured"}
		}
		return handlers.Take(*cmd.Take)
	case TypeDismiss:
		if handlers.Dismiss == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "dismiss handler not configured"}
		}
		return handlers.Dismiss(*cmd.Dismiss)
	case TypeMeal:
		if handlers.Meal == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "meal handler not configured"}
		}
		return handlers.Meal(*cmd.Meal)
	case TypeWater:
		if handlers.Water == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "water handler not configured"}
		}
		return handlers.Water(*cmd.Water)
	case TypeSummary:
		if handlers.Summary == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "summary handler not configured"}
		}
		return handlers.Summary()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
