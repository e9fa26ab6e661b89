// internal/models/game_action.go
package models

// ActionKind identifies a player action handled by the action pipeline.
type ActionKind string

const (
	ActionMove           ActionKind = "move"
	ActionBuild          ActionKind = "build"
	ActionHireWorker     ActionKind = "hire_worker"
	ActionBuyCattle      ActionKind = "buy_cattle"
	ActionSellCattle     ActionKind = "sell_cattle"
	ActionUseAbility     ActionKind = "use_ability"
	ActionTakeFutureCard ActionKind = "take_future_card"
)

// ActionRequest captures a player's in-game move. Fields carries the action-specific
// payload, typically decoded from JSON (numbers arrive as float64).
type ActionRequest struct {
	Kind   ActionKind             `json:"action_type"`
	Fields map[string]interface{} `json:"action_data"`
}

// Failure codes reported in ActionResult.Code.
const (
	CodeValidationFailure = "validation_failure"
	CodeNotImplemented    = "not_implemented"
)

// ActionResult is the response for a submitted ActionRequest.
type ActionResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Kind    ActionKind             `json:"action_type"`
	Code    string                 `json:"code,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}
