package types_test

import (
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ziggy/pkg/domain/types"
)

func TestAddressIsBlank(t *testing.T) {
	tests := []struct {
		name     string
		address  types.Address
		expected bool
	}{
		{"Empty", types.Address(""), true},
		{"Spaces only", types.Address("   "), true},
		{"Tab and newline", types.Address("\t\n"), true},
		{"Valid address", types.Address("a1@x.com"), false},
		{"Padded address", types.Address(" a1@x.com "), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.expected, tt.address.IsBlank())
		})
	}
}

func TestAddressTrim(t *testing.T) {
	gt.Equal(t, types.Address("a1@x.com"), types.Address("  a1@x.com\t").Trim())
}

func TestParseRoundNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected types.RoundNumber
		wantErr  bool
	}{
		{"Single digit", "1", 1, false},
		{"Padded", " 12 ", 12, false},
		{"Empty means missing", "", 0, false},
		{"Not a number", "one", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := types.ParseRoundNumber(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, tt.expected, n)
		})
	}
}

func TestRoundNumberIsZero(t *testing.T) {
	gt.True(t, types.RoundNumber(0).IsZero())
	gt.False(t, types.RoundNumber(3).IsZero())
	gt.Equal(t, "3", types.RoundNumber(3).String())
}

func TestNewBatchID(t *testing.T) {
	id1 := types.NewBatchID()
	id2 := types.NewBatchID()

	gt.True(t, strings.HasPrefix(id1.String(), "batch-"))
	gt.NotEqual(t, id1, id2)
}
