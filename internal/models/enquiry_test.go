package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("recomputes the total", func(t *testing.T) {
		e := Enquiry{EnquiryType: TypeHotel, NumAdults: 2, NumKids: -1, NumInfants: 1, NumTotalPax: 40}
		e.Normalize()
		assert.Equal(t, 0, e.NumKids)
		assert.Equal(t, 3, e.NumTotalPax)
	})

	t.Run("huge counts are clamped", func(t *testing.T) {
		e := Enquiry{NumAdults: math.MaxInt, NumKids: math.MaxInt, NumInfants: 1}
		e.Normalize()
		assert.Equal(t, MaxPax, e.NumAdults)
		assert.Equal(t, 2*MaxPax+1, e.NumTotalPax)
	})

	t.Run("keeps only the active block", func(t *testing.T) {
		e := Enquiry{EnquiryType: TypePackage, FlightDetails: &FlightDetails{DepartureCity: "Pune"}}
		e.Normalize()
		assert.Nil(t, e.FlightDetails)
		require.NotNil(t, e.PackageDetails)
	})

	t.Run("defaults to flight", func(t *testing.T) {
		e := Enquiry{}
		e.Normalize()
		assert.Equal(t, TypeFlight, e.EnquiryType)
		assert.NotNil(t, e.FlightDetails)
	})
}
