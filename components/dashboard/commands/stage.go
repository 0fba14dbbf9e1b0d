package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-pipeline-dashboard/components/dashboard"
)

// StageAction names a pointer interaction with a funnel stage.
type StageAction string

const (
	StageClick StageAction = "click"
	StageHover StageAction = "hover"
	StageLeave StageAction = "leave"
)

// StageInput targets one stage of a funnel. X/Y are pointer coordinates used
// for hover tooltips.
type StageInput struct {
	Action StageAction          `json:"action"`
	Funnel dashboard.FunnelKind `json:"funnel"`
	Order  int                  `json:"order"`
	X      int                  `json:"x"`
	Y      int                  `json:"y"`
}

type stageController interface {
	ClickStage(ctx context.Context, kind dashboard.FunnelKind, order int) (dashboard.FunnelStage, error)
	HoverStage(ctx context.Context, kind dashboard.FunnelKind, order, x, y int) (dashboard.Tooltip, error)
	LeaveStage(kind dashboard.FunnelKind, order int) bool
}

// StageCommand dispatches stage interactions.
type StageCommand struct {
	controller stageController
	telemetry  Telemetry
}

// NewStageCommand creates the command.
func NewStageCommand(controller stageController, telemetry Telemetry) *StageCommand {
	return &StageCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[StageInput] = (*StageCommand)(nil)

// Execute routes the interaction to the controller.
func (c *StageCommand) Execute(ctx context.Context, msg StageInput) error {
	if c.controller == nil {
		return errors.New("stage command requires controller")
	}
	var err error
	switch msg.Action {
	case StageClick:
		_, err = c.controller.ClickStage(ctx, msg.Funnel, msg.Order)
	case StageHover:
		_, err = c.controller.HoverStage(ctx, msg.Funnel, msg.Order, msg.X, msg.Y)
	case StageLeave:
		c.controller.LeaveStage(msg.Funnel, msg.Order)
	default:
		err = fmt.Errorf("stage command: unknown action %q", msg.Action)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, EventStageAction, map[string]any{
		"action": string(msg.Action),
		"funnel": string(msg.Funnel),
		"order":  msg.Order,
	})
	return nil
}
