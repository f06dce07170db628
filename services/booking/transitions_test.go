package booking

import (
	"errors"
	"testing"

	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    models.BookingStatus
		actor   models.Role
		action  Action
		want    models.BookingStatus
		removes bool
		wantErr string
	}{
		{"admin assigns new booking", models.StatusCreated, models.RoleAdmin, ActionAssign, models.StatusAssigned, false, ""},
		{"provider starts assigned job", models.StatusAssigned, models.RoleProvider, ActionStart, models.StatusInProgress, false, ""},
		{"provider completes started job", models.StatusInProgress, models.RoleProvider, ActionComplete, models.StatusCompleted, false, ""},
		{"admin deletes new booking", models.StatusCreated, models.RoleAdmin, ActionDelete, "", true, ""},
		{"admin deletes assigned booking", models.StatusAssigned, models.RoleAdmin, ActionDelete, "", true, ""},
		{"admin cancels in-progress booking", models.StatusInProgress, models.RoleAdmin, ActionCancel, models.StatusCancelled, false, ""},
		{"cannot skip from created to completed", models.StatusCreated, models.RoleProvider, ActionComplete, "", false, "Cannot complete a booking that is Booked"},
		{"cannot start unassigned booking", models.StatusCreated, models.RoleProvider, ActionStart, "", false, "Cannot start a booking that is Booked"},
		{"cannot reassign", models.StatusAssigned, models.RoleAdmin, ActionAssign, "", false, "Cannot assign a booking that is Assigned"},
		{"cannot delete started booking", models.StatusInProgress, models.RoleAdmin, ActionDelete, "", false, "Cannot delete a booking that is In Progress"},
		{"cannot cancel completed booking", models.StatusCompleted, models.RoleAdmin, ActionCancel, "", false, "Cannot cancel a booking that is Completed"},
		{"customer cannot assign", models.StatusCreated, models.RoleCustomer, ActionAssign, "", false, "A customer cannot assign bookings"},
		{"provider cannot delete", models.StatusAssigned, models.RoleProvider, ActionDelete, "", false, "A provider cannot delete bookings"},
		{"admin cannot start jobs", models.StatusAssigned, models.RoleAdmin, ActionStart, "", false, "A admin cannot start bookings"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.actor, tt.action)
			if tt.wantErr != "" {
				var te *TransitionError
				require.True(t, errors.As(err, &te))
				assert.Equal(t, tt.wantErr, te.Error())
				assert.Equal(t, tt.from, te.From)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.To)
			assert.Equal(t, tt.removes, got.Removes)
		})
	}
}

func TestTerminalStatusesHaveNoActions(t *testing.T) {
	for _, status := range []models.BookingStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, role := range models.Roles {
			assert.Empty(t, Allowed(role, status), "%s on %s", role, status)
		}
		assert.True(t, IsTerminal(status))
	}
}

func TestAllowed(t *testing.T) {
	assert.Equal(t, []Action{ActionAssign, ActionDelete, ActionCancel}, Allowed(models.RoleAdmin, models.StatusCreated))
	assert.Equal(t, []Action{ActionDelete, ActionCancel}, Allowed(models.RoleAdmin, models.StatusAssigned))
	assert.Equal(t, []Action{ActionStart}, Allowed(models.RoleProvider, models.StatusAssigned))
	assert.Equal(t, []Action{ActionComplete}, Allowed(models.RoleProvider, models.StatusInProgress))
	assert.Empty(t, Allowed(models.RoleCustomer, models.StatusCreated))
	assert.Empty(t, Allowed(models.RoleAdmin, "ARCHIVED"))
}

func TestTransitionsOnlyMoveForward(t *testing.T) {
	order := map[models.BookingStatus]int{}
	for i, s := range Statuses {
		order[s] = i
	}
	for _, tr := range Transitions() {
		if tr.Removes || tr.To == models.StatusCancelled {
			continue
		}
		for _, from := range tr.From {
			assert.Equal(t, order[from]+1, order[tr.To], "%s %s must advance exactly one step", tr.Actor, tr.Action)
		}
	}
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("start")
	assert.True(t, ok)
	assert.Equal(t, ActionStart, a)

	_, ok = ParseAction("accept")
	assert.False(t, ok)
}
