package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloodType_CanDonateTo(t *testing.T) {
	tests := []struct {
		name      string
		donor     BloodType
		recipient BloodType
		want      bool
	}{
		{name: "universal donor to universal recipient", donor: BloodONeg, recipient: BloodABPos, want: true},
		{name: "universal donor to itself", donor: BloodONeg, recipient: BloodONeg, want: true},
		{name: "O- covers every group", donor: BloodONeg, recipient: BloodBNeg, want: true},
		{name: "A+ cannot donate to O-", donor: BloodAPos, recipient: BloodONeg, want: false},
		{name: "A+ to AB+", donor: BloodAPos, recipient: BloodABPos, want: true},
		{name: "AB+ only to AB+", donor: BloodABPos, recipient: BloodAPos, want: false},
		{name: "B- to AB-", donor: BloodBNeg, recipient: BloodABNeg, want: true},
		{name: "unknown donor type", donor: BloodType("X+"), recipient: BloodABPos, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.donor.CanDonateTo(tt.recipient))
		})
	}
}

func TestParseBloodType(t *testing.T) {
	for _, valid := range []string{"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"} {
		b, ok := ParseBloodType(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, valid, b.String())
	}

	for _, invalid := range []string{"", "o-", "C+", "AB", "N/A"} {
		_, ok := ParseBloodType(invalid)
		assert.False(t, ok, invalid)
	}
}
