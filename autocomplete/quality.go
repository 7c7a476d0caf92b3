package autocomplete

// EntityType identifies which embedded-place table a Place was built
// from, mirroring the original's embedded_type enum.
type EntityType int

const (
	TypeStopArea EntityType = iota
	TypeAdmin
	TypePOI
	TypeWay // address, via house-number interpolation
	TypeStopPoint
	TypeLine
)

// embeddedTypeOrder is the fixed display-ordering rank used as the
// primary key of the pipeline's second sort pass (quality only breaks
// ties within one type), matching get_embedded_type_order in
// autocomplete_api.cpp: admins first, then stop areas, then POIs, then
// addresses, with everything else (stop points, lines) last.
func embeddedTypeOrder(t EntityType) int {
	switch t {
	case TypeAdmin:
		return 0
	case TypeStopArea:
		return 1
	case TypePOI:
		return 2
	case TypeWay:
		return 3
	default:
		return 4
	}
}

// penaltyByType returns the base quality penalty applied for ranking
// places of a given type against each other, per autocomplete_api.cpp's
// penalty_by_type. isAddressType flips between the two documented
// modes: when the query itself looks like an address (see
// IsAddressType), address results carry a lower penalty than admins and
// stop points, and a higher one otherwise.
func penaltyByType(t EntityType, isAddressType bool) int {
	switch t {
	case TypeAdmin:
		if isAddressType {
			return 8
		}
		return 0
	case TypeStopArea:
		return 2
	case TypePOI:
		if isAddressType {
			return 4
		}
		return 6
	case TypeWay:
		if isAddressType {
			return 0
		}
		return 8
	case TypeStopPoint:
		if isAddressType {
			return 6
		}
		return 4
	default:
		return 10
	}
}

// wordWeight is the per-extra-stored-term penalty applied when a
// place's stored name has more tokens than the query matched, so
// "Paris" outranks "Paris 12ème Arrondissement" for the query "paris".
const wordWeight = 3

// poiWeightBonus scales a POI's configured weight into a quality
// bonus of weight/10, capped at 10.
func poiWeightBonus(weight int) int {
	bonus := weight / 10
	if bonus > 10 {
		bonus = 10
	}
	return bonus
}

// missingAdminPenalty is charged when a place has no resolvable admin
// list, matching update_quality_for_missing_admin: such places are
// harder for the caller to disambiguate, so they rank slightly lower.
const missingAdminPenalty = 5

// computeQuality folds the per-type penalty, match completeness,
// missing-term penalty, POI bonus and missing-admin penalty into a
// single score clamped to [0, 100], mirroring update_quality.
// poiWeightBonusEnabled gates the POI bonus term; it is disabled by
// default per Pipeline.POIWeightBonusEnabled.
func computeQuality(base int, matchedTerms, totalStoredTerms int, poiWeight int, poiWeightBonusEnabled bool, hasAdmin bool) int {
	q := base
	extra := totalStoredTerms - matchedTerms
	if extra > 0 {
		q -= extra * wordWeight
	}
	if poiWeightBonusEnabled && poiWeight > 0 {
		q += poiWeightBonus(poiWeight)
	}
	if !hasAdmin {
		q -= missingAdminPenalty
	}
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	return q
}
