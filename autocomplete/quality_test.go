package autocomplete

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeQualityExactMatchHasNoExtraPenalty(t *testing.T) {
	q := computeQuality(100, 2, 2, 0, true, true)
	assert.Equal(t, 100, q)
}

func TestComputeQualityPenalizesExtraStoredTerms(t *testing.T) {
	exact := computeQuality(100, 1, 1, 0, true, true)
	extra := computeQuality(100, 1, 4, 0, true, true)
	assert.Greater(t, exact, extra)
	assert.Equal(t, 100-3*wordWeight, extra)
}

func TestComputeQualityPOIBonusCapped(t *testing.T) {
	assert.Equal(t, 100, computeQuality(95, 1, 1, 1000, true, true))
	assert.Equal(t, 100, computeQuality(90, 1, 1, 1000, true, true))
}

func TestComputeQualityPOIBonusDisabledByDefault(t *testing.T) {
	withBonus := computeQuality(90, 1, 1, 1000, true, true)
	withoutBonus := computeQuality(90, 1, 1, 1000, false, true)
	assert.Equal(t, 90, withoutBonus)
	assert.Greater(t, withBonus, withoutBonus)
}

func TestComputeQualityMissingAdminPenalty(t *testing.T) {
	withAdmin := computeQuality(100, 1, 1, 0, true, true)
	withoutAdmin := computeQuality(100, 1, 1, 0, true, false)
	assert.Equal(t, withAdmin-missingAdminPenalty, withoutAdmin)
}

func TestComputeQualityClampsToZero(t *testing.T) {
	assert.Equal(t, 0, computeQuality(5, 1, 50, 0, false, false))
}

func TestEmbeddedTypeOrderAdminFirst(t *testing.T) {
	assert.Less(t, embeddedTypeOrder(TypeAdmin), embeddedTypeOrder(TypeStopArea))
	assert.Less(t, embeddedTypeOrder(TypeStopArea), embeddedTypeOrder(TypePOI))
	assert.Less(t, embeddedTypeOrder(TypePOI), embeddedTypeOrder(TypeWay))
	assert.Less(t, embeddedTypeOrder(TypeWay), embeddedTypeOrder(TypeStopPoint))
	assert.Less(t, embeddedTypeOrder(TypeWay), embeddedTypeOrder(TypeLine))
}

func TestPenaltyByTypeMatchesSpecTable(t *testing.T) {
	assert.Equal(t, 0, penaltyByType(TypeAdmin, false))
	assert.Equal(t, 8, penaltyByType(TypeAdmin, true))
	assert.Equal(t, 2, penaltyByType(TypeStopArea, false))
	assert.Equal(t, 2, penaltyByType(TypeStopArea, true))
	assert.Equal(t, 6, penaltyByType(TypePOI, false))
	assert.Equal(t, 4, penaltyByType(TypePOI, true))
	assert.Equal(t, 8, penaltyByType(TypeWay, false))
	assert.Equal(t, 0, penaltyByType(TypeWay, true))
	assert.Equal(t, 4, penaltyByType(TypeStopPoint, false))
	assert.Equal(t, 6, penaltyByType(TypeStopPoint, true))
}

func TestPenaltyByTypeAddressCheapestWhenAddressIntent(t *testing.T) {
	assert.Less(t, penaltyByType(TypeWay, true), penaltyByType(TypeAdmin, true))
	assert.Less(t, penaltyByType(TypeAdmin, false), penaltyByType(TypeWay, false))
}
