package booking

import (
	"fmt"

	"servicehub/models"
)

// Action is something a role can do to a booking.
type Action string

const (
	ActionAssign   Action = "assign"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionDelete   Action = "delete"
	ActionCancel   Action = "cancel"
)

// ParseAction returns the action named by s.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionAssign, ActionStart, ActionComplete, ActionDelete, ActionCancel:
		return a, true
	}
	return "", false
}

// Transition is one row of the lifecycle table. Removes marks a hard delete,
// in which case To is empty.
type Transition struct {
	Actor   models.Role
	Action  Action
	From    []models.BookingStatus
	To      models.BookingStatus
	Removes bool
}

func (t Transition) allows(from models.BookingStatus) bool {
	for _, s := range t.From {
		if s == from {
			return true
		}
	}
	return false
}

var transitions = []Transition{
	{Actor: models.RoleAdmin, Action: ActionAssign, From: []models.BookingStatus{models.StatusCreated}, To: models.StatusAssigned},
	{Actor: models.RoleProvider, Action: ActionStart, From: []models.BookingStatus{models.StatusAssigned}, To: models.StatusInProgress},
	{Actor: models.RoleProvider, Action: ActionComplete, From: []models.BookingStatus{models.StatusInProgress}, To: models.StatusCompleted},
	{Actor: models.RoleAdmin, Action: ActionDelete, From: []models.BookingStatus{models.StatusCreated, models.StatusAssigned}, Removes: true},
	{Actor: models.RoleAdmin, Action: ActionCancel, From: []models.BookingStatus{models.StatusCreated, models.StatusAssigned, models.StatusInProgress}, To: models.StatusCancelled},
}

// Transitions returns a copy of the lifecycle table.
func Transitions() []Transition {
	out := make([]Transition, len(transitions))
	copy(out, transitions)
	return out
}

// TransitionError explains why an action was refused.
type TransitionError struct {
	From   models.BookingStatus
	Actor  models.Role
	Action Action
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// Next looks up the transition for actor performing action on a booking in
// status from.
func Next(from models.BookingStatus, actor models.Role, action Action) (Transition, error) {
	permitted := false
	for _, t := range transitions {
		if t.Action != action || t.Actor != actor {
			continue
		}
		permitted = true
		if t.allows(from) {
			return t, nil
		}
	}

	e := &TransitionError{From: from, Actor: actor, Action: action}
	if !permitted {
		e.Reason = fmt.Sprintf("A %s cannot %s bookings", actor, action)
	} else {
		e.Reason = fmt.Sprintf("Cannot %s a booking that is %s", action, BadgeFor(from).Label)
	}
	return Transition{}, e
}

// Allowed lists the actions actor may take on a booking in status, in table order.
func Allowed(actor models.Role, status models.BookingStatus) []Action {
	var actions []Action
	for _, t := range transitions {
		if t.Actor == actor && t.allows(status) {
			actions = append(actions, t.Action)
		}
	}
	return actions
}

// Can reports whether actor may take action on a booking in status.
func Can(actor models.Role, status models.BookingStatus, action Action) bool {
	_, err := Next(status, actor, action)
	return err == nil
}
