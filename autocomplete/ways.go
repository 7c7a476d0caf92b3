package autocomplete

import (
	"transitkernel.dev/core/model"
	"transitkernel.dev/core/snapshot"
)

// Place is one ranked autocomplete result, spanning every embedded
// type. Fields not relevant to Type are left zero, matching the
// original's pb_place variant-like struct.
type Place struct {
	Type     EntityType
	Idx      int
	Name     string
	Coord    model.Coord
	Quality  int
	AdminList []int

	// HouseNumber is set (and Coord interpolated) only for Type ==
	// TypeWay results that matched an address query carrying a
	// number.
	HouseNumber    int
	HasHouseNumber bool
}

// SplitAddressQuery extracts a leading or trailing house number token
// from an already-tokenized query, returning the remaining tokens to
// match against the way index and the parsed number. This mirrors the
// original address-handling special case: "10 rue de la paix" and
// "rue de la paix 10" both resolve the same way.
func SplitAddressQuery(tokens []QueryToken) (rest []QueryToken, number int, ok bool) {
	if len(tokens) == 0 {
		return tokens, 0, false
	}
	if LooksLikeNumber(tokens[0].Raw) {
		return tokens[1:], atoiSafe(tokens[0].Raw), true
	}
	last := len(tokens) - 1
	if LooksLikeNumber(tokens[last].Raw) {
		return tokens[:last], atoiSafe(tokens[last].Raw), true
	}
	return tokens, 0, false
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// FindWays resolves an address query against the way index: ways
// matching the street-name tokens, with coordinates interpolated to
// the requested house number when one was present in the query. A way
// that has house-number ranges but can't interpolate the requested
// number still comes back (at its own centroid) rather than being
// dropped, matching the original's graceful degradation.
func FindWays(data *snapshot.Data, idx *Index[int], query []QueryToken, partial bool) []Place {
	rest, number, hasNumber := SplitAddressQuery(query)

	var ids []int
	if partial {
		ids = idx.FindPartialWithPattern(rest)
	} else {
		ids = idx.FindComplete(rest)
	}

	places := make([]Place, 0, len(ids))
	for _, id := range ids {
		way := data.Ways[id]
		place := Place{
			Type:      TypeWay,
			Idx:       id,
			Name:      way.Name,
			Coord:     way.Coord,
			AdminList: way.AdminList,
		}
		if hasNumber {
			if coord, ok := way.InterpolateHouseNumber(number); ok {
				place.Coord = coord
				place.HouseNumber = number
				place.HasHouseNumber = true
			}
		}
		places = append(places, place)
	}
	return places
}
