// internal/game/pipeline.go
package game

import (
	"github.com/jason-s-yu/cattledrive/internal/models"
	"github.com/jason-s-yu/cattledrive/internal/player"
	"github.com/sirupsen/logrus"
)

// executor applies an already validated action. Executors never fail: everything
// that could go wrong was checked by the matching validator.
type executor interface {
	execute(s *State, p *player.State) (message string, data map[string]interface{})
}

// validator checks an action against the current state and returns the executor
// bound to the parsed fields. It must not mutate anything.
type validator func(s *State, p *player.State, f fields) (executor, error)

type handler struct {
	validate validator
	// phases lists where the action is legal; free lists phases where it may be taken
	// out of turn.
	phases []models.Phase
	free   []models.Phase
}

func actionHandlers() map[models.ActionKind]handler {
	turn := []models.Phase{models.PhasePlayerTurn}
	return map[models.ActionKind]handler{
		models.ActionMove:       {validate: validateMove, phases: turn},
		models.ActionBuild:      {validate: validateBuild, phases: turn},
		models.ActionHireWorker: {validate: validateHireWorker, phases: turn},
		models.ActionBuyCattle:  {validate: validateBuyCattle, phases: turn},
		models.ActionSellCattle: {
			validate: validateSellCattle,
			phases:   []models.Phase{models.PhasePlayerTurn, models.PhaseCattleSale},
			free:     []models.Phase{models.PhaseCattleSale},
		},
		models.ActionUseAbility:     {validate: validateUseAbility, phases: turn},
		models.ActionTakeFutureCard: {validate: validateTakeFutureCard, phases: turn},
	}
}

func phaseIn(p models.Phase, list []models.Phase) bool {
	for _, x := range list {
		if x == p {
			return true
		}
	}
	return false
}

// Apply runs one action through validation and, if accepted, execution. Rejected
// actions leave the state, its version and its history untouched.
func (s *State) Apply(req models.ActionRequest) models.ActionResult {
	log := s.log.WithField("action", req.Kind)

	h, ok := s.handlers[req.Kind]
	if !ok {
		log.Warn("no handler for action")
		return failure(req.Kind, models.CodeNotImplemented, "action type not implemented: "+string(req.Kind))
	}

	p, exec, err := s.validate(h, req)
	if err != nil {
		log.WithField("reason", err.Error()).Debug("action rejected")
		return failure(req.Kind, models.CodeValidationFailure, err.Error())
	}

	message, data := exec.execute(s, p)
	if data == nil {
		data = map[string]interface{}{}
	}
	data["player_id"] = p.ID.String()
	s.commit(p.ID, string(req.Kind), copyFields(req.Fields))
	data["version"] = s.Version

	log.WithFields(logrus.Fields{"player_id": p.ID, "version": s.Version}).Debug("action applied")
	return models.ActionResult{Success: true, Message: message, Kind: req.Kind, Data: data}
}

// Validate reports whether req would be accepted, without applying it.
func (s *State) Validate(req models.ActionRequest) error {
	h, ok := s.handlers[req.Kind]
	if !ok {
		return invalid("action type not implemented: %s", req.Kind)
	}
	_, _, err := s.validate(h, req)
	return err
}

func (s *State) validate(h handler, req models.ActionRequest) (*player.State, executor, error) {
	if !s.Started() {
		return nil, nil, invalid("game has not started")
	}
	if s.Finished() {
		return nil, nil, invalid("game is over")
	}
	if !phaseIn(s.Phase, h.phases) {
		return nil, nil, invalid("%s is not allowed during %s", req.Kind, s.Phase)
	}

	f := fields(req.Fields)
	id, err := f.getUUID("player_id")
	if err != nil {
		return nil, nil, err
	}
	p := s.Player(id)
	if p == nil {
		return nil, nil, invalid("player %s is not in this game", id)
	}
	if !phaseIn(s.Phase, h.free) {
		if cur := s.CurrentPlayer(); cur == nil || cur.ID != p.ID {
			return nil, nil, invalid("it is not %s's turn", p.DisplayName)
		}
	}

	exec, err := h.validate(s, p, f)
	if err != nil {
		return nil, nil, err
	}
	return p, exec, nil
}
