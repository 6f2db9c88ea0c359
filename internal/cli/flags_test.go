package cli

import (
	"testing"

	"github.com/alexanderramin/degreeplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlot(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr string
	}{
		{in: "1:Fall", want: domain.SlotID(0, domain.TermFall)},
		{in: "1:fall", want: domain.SlotID(0, domain.TermFall)},
		{in: "y2-winter", want: domain.SlotID(1, domain.TermWinter)},
		{in: "Y3/SPRING", want: domain.SlotID(2, domain.TermSpring)},
		{in: "4 Summer", want: domain.SlotID(3, domain.TermSummer)},
		{in: " 2fall ", want: domain.SlotID(1, domain.TermFall)},
		{in: "quarter-0-Fall", want: "quarter-0-Fall"},
		{in: "0:Fall", wantErr: "years count from 1"},
		{in: "1:Autumn", wantErr: "unknown term"},
		{in: "Fall", wantErr: "YEAR:TERM"},
		{in: "", wantErr: "YEAR:TERM"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSlot(tt.in)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlotValue_Set(t *testing.T) {
	var v slotValue
	require.NoError(t, v.Set("2:spring"))
	assert.Equal(t, domain.SlotID(1, domain.TermSpring), v.String())
	assert.Equal(t, "slot", v.Type())

	require.Error(t, v.Set("nope"))
	assert.Equal(t, domain.SlotID(1, domain.TermSpring), v.String(), "a failed Set keeps the previous value")
}

func TestBinderValue_Set(t *testing.T) {
	var v binderValue
	assert.False(t, v.set)

	require.NoError(t, v.Set("at-least"))
	assert.Equal(t, domain.BinderAtLeast, v.binder)
	assert.True(t, v.set)

	require.NoError(t, v.Set("all"))
	assert.Equal(t, domain.BinderAll, v.binder)

	assert.ErrorContains(t, v.Set("any"), "ALL or AT_LEAST")
	assert.Equal(t, domain.BinderAll, v.binder)
}
