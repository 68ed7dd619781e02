package pickup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		current Status
		next    Status
		wantErr error
	}{
		{"pending to scheduled", StatusPending, StatusScheduled, nil},
		{"pending to cancelled", StatusPending, StatusCancelled, nil},
		{"pending to completed", StatusPending, StatusCompleted, ErrInvalidTransition},
		{"pending to in-progress", StatusPending, StatusInProgress, ErrInvalidTransition},
		{"scheduled to in-progress", StatusScheduled, StatusInProgress, nil},
		{"scheduled to cancelled", StatusScheduled, StatusCancelled, nil},
		{"scheduled to completed", StatusScheduled, StatusCompleted, ErrInvalidTransition},
		{"scheduled back to pending", StatusScheduled, StatusPending, ErrInvalidTransition},
		{"in-progress to completed", StatusInProgress, StatusCompleted, nil},
		{"in-progress to cancelled", StatusInProgress, StatusCancelled, nil},
		{"completed is terminal", StatusCompleted, StatusPending, ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, StatusScheduled, ErrInvalidTransition},
		{"same status is a no-op", StatusScheduled, StatusScheduled, nil},
		{"same terminal status is a no-op", StatusCompleted, StatusCompleted, nil},
		{"unknown current status", Status("bogus"), StatusScheduled, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.current, tt.next)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}

func TestAllowedTransitions(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusScheduled, StatusCancelled}, AllowedTransitions(StatusPending))
	assert.ElementsMatch(t, []Status{StatusInProgress, StatusCancelled}, AllowedTransitions(StatusScheduled))
	assert.ElementsMatch(t, []Status{StatusCompleted, StatusCancelled}, AllowedTransitions(StatusInProgress))
	assert.Empty(t, AllowedTransitions(StatusCompleted))
	assert.Empty(t, AllowedTransitions(StatusCancelled))
}

func TestSlotOrder(t *testing.T) {
	assert.Less(t, SlotOrder(SlotMorning), SlotOrder(SlotAfternoon))
	assert.Less(t, SlotOrder(SlotAfternoon), SlotOrder(SlotEvening))
}

func TestIsValidWasteType(t *testing.T) {
	for _, wt := range WasteTypes {
		assert.True(t, IsValidWasteType(string(wt)))
	}
	assert.False(t, IsValidWasteType("glass"))
	assert.False(t, IsValidWasteType(""))
}

func TestIsValidStatus(t *testing.T) {
	assert.True(t, IsValidStatus("pending"))
	assert.True(t, IsValidStatus("in-progress"))
	assert.False(t, IsValidStatus("in_progress"))
	assert.False(t, IsValidStatus("done"))
}
