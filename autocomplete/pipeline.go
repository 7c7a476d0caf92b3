// Package autocomplete implements the text-search/place-completion
// engine: an inverted index over every embedded place type, query
// normalization (accent folding, alias/synonym expansion), quality
// scoring and result ranking. Ported from
// original_source/source/autocomplete/autocomplete_api.cpp (see
// DESIGN.md); Pipeline.Autocomplete is the direct analogue of that
// file's autocomplete().
package autocomplete

import (
	"sort"

	"transitkernel.dev/core/snapshot"
)

// SearchType controls which embedded types a query is dispatched
// against, mirroring the original's search_type bitmask.
type SearchType int

const (
	SearchStopArea SearchType = 1 << iota
	SearchAdmin
	SearchPOI
	SearchWay
	SearchStopPoint
	SearchLine
	SearchAll = SearchStopArea | SearchAdmin | SearchPOI | SearchWay | SearchStopPoint | SearchLine
)

// Indexes bundles one inverted index per embedded type, built once
// against a frozen snapshot.Data and reused across queries.
type Indexes struct {
	StopAreas  *Index[int]
	Admins     *Index[int]
	POIs       *Index[int]
	Ways       *Index[int]
	StopPoints *Index[int]
	Lines      *Index[int]
}

// BuildIndexes constructs an Indexes from data, tokenizing every
// entity's name into its stored terms.
func BuildIndexes(data *snapshot.Data) *Indexes {
	idx := &Indexes{
		StopAreas:  NewIndex[int](),
		Admins:     NewIndex[int](),
		POIs:       NewIndex[int](),
		Ways:       NewIndex[int](),
		StopPoints: NewIndex[int](),
		Lines:      NewIndex[int](),
	}
	for _, sa := range data.StopAreas {
		idx.StopAreas.Add(sa.Idx, Tokenize(sa.Name))
	}
	for _, a := range data.Admins {
		idx.Admins.Add(a.Idx, Tokenize(a.Name))
	}
	for _, p := range data.POIs {
		idx.POIs.Add(p.Idx, Tokenize(p.Name))
	}
	for _, w := range data.Ways {
		idx.Ways.Add(w.Idx, Tokenize(w.Name))
	}
	for _, sp := range data.StopPoints {
		idx.StopPoints.Add(sp.Idx, Tokenize(sp.Name))
	}
	for _, l := range data.Lines {
		idx.Lines.Add(l.Idx, Tokenize(l.Name))
	}
	return idx
}

// AdminFilter is a predicate over a place's admin list, used to
// restrict results to a geographic area (admin_uris_to_admin_ptr in
// the original, expressed here as a plain closure instead of a
// template functor).
type AdminFilter func(adminList []int) bool

// NoAdminFilter accepts every place.
func NoAdminFilter(adminList []int) bool { return true }

// AdminURIFilter returns an AdminFilter accepting only places whose
// admin list contains one of the given admin indexes. An empty
// adminIdxs accepts every place, like NoAdminFilter.
func AdminURIFilter(data *snapshot.Data, adminIdxs []int) AdminFilter {
	want := map[int]bool{}
	for _, i := range adminIdxs {
		want[i] = true
	}
	if len(want) == 0 {
		return NoAdminFilter
	}
	return func(adminList []int) bool {
		for _, a := range adminList {
			if want[a] {
				return true
			}
		}
		return false
	}
}

// Pipeline holds per-deployment autocomplete configuration and
// implements the query-resolution algorithm of SPEC_FULL §4.5.
type Pipeline struct {
	// POIWeightBonusEnabled gates the POI weight quality bonus
	// (§4.6). Disabled by default, matching the original where the
	// bonus exists but currently ships switched off.
	POIWeightBonusEnabled bool
}

// Autocomplete resolves a free-text query into ranked places, per
// SPEC_FULL §4.5.
func (pl *Pipeline) Autocomplete(
	data *snapshot.Data,
	idx *Indexes,
	tables *Tables,
	query string,
	searchTypes SearchType,
	filter AdminFilter,
	nbmax int,
) []Place {
	if filter == nil {
		filter = NoAdminFilter
	}

	tokens := NormalizeQuery(query, tables)
	if len(tokens) == 0 {
		return nil
	}
	isAddress := IsAddressType(query, tables)

	var places []Place

	// Step: resolve each requested type. There is no complete/partial
	// search mode: StopArea, StopPoint, Admin, POI and Way are always
	// searched with FindPartialWithPattern, while Line always uses
	// FindComplete (the original's find_complete quirk, kept as is).
	if searchTypes&SearchStopArea != 0 {
		ids := idx.StopAreas.FindPartialWithPattern(tokens)
		for _, id := range ids {
			sa := data.StopAreas[id]
			if !filter(sa.AdminList) {
				continue
			}
			places = append(places, Place{
				Type: TypeStopArea, Idx: id, Name: sa.Name, Coord: sa.Coord, AdminList: sa.AdminList,
			})
		}
	}

	if searchTypes&SearchStopPoint != 0 {
		ids := idx.StopPoints.FindPartialWithPattern(tokens)
		for _, id := range ids {
			sp := data.StopPoints[id]
			if !filter(sp.AdminList) {
				continue
			}
			places = append(places, Place{
				Type: TypeStopPoint, Idx: id, Name: sp.Name, Coord: sp.Coord, AdminList: sp.AdminList,
			})
		}
	}

	if searchTypes&SearchAdmin != 0 {
		ids := idx.Admins.FindPartialWithPattern(tokens)
		for _, id := range ids {
			a := data.Admins[id]
			if !filter(a.AdminList) {
				continue
			}
			places = append(places, Place{
				Type: TypeAdmin, Idx: id, Name: a.Name, Coord: a.Coord, AdminList: a.AdminList,
			})
		}
	}

	if searchTypes&SearchPOI != 0 {
		ids := idx.POIs.FindPartialWithPattern(tokens)
		for _, id := range ids {
			p := data.POIs[id]
			if !filter(p.AdminList) {
				continue
			}
			places = append(places, Place{
				Type: TypePOI, Idx: id, Name: p.Name, Coord: p.Coord, AdminList: p.AdminList,
			})
		}
	}

	if searchTypes&SearchWay != 0 {
		for _, place := range FindWays(data, idx.Ways, tokens, true) {
			way := data.Ways[place.Idx]
			if !filter(way.AdminList) {
				continue
			}
			places = append(places, place)
		}
	}

	if searchTypes&SearchLine != 0 {
		// Quirk: find_complete unconditionally, see doc comment above.
		ids := idx.Lines.FindComplete(tokens)
		for _, id := range ids {
			l := data.Lines[id]
			if !filter(l.AdminList) {
				continue
			}
			// Quirk: in the original this branch falls through the
			// place-building switch without appending to the result
			// list (a missing "break"). Preserved bug-compatibly per
			// SPEC_FULL §9: Line candidates are matched and filtered,
			// but never placed.
			_ = l
		}
	}

	pl.scorePlaces(data, idx, places, tokens, isAddress)

	// Partial sort pass 1: keep the top nbmax by raw quality,
	// descending, dropping the tail.
	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Quality > places[j].Quality
	})
	if nbmax > 0 && len(places) > nbmax {
		places = places[:nbmax]
	}

	// Partial sort pass 2: regroup the kept items by
	// (embedded_type_order asc, quality desc, name asc).
	sort.SliceStable(places, func(i, j int) bool {
		oi, oj := embeddedTypeOrder(places[i].Type), embeddedTypeOrder(places[j].Type)
		if oi != oj {
			return oi < oj
		}
		if places[i].Quality != places[j].Quality {
			return places[i].Quality > places[j].Quality
		}
		return places[i].Name < places[j].Name
	})

	return places
}

// scorePlaces fills in each place's Quality, per update_quality /
// update_quality_by_poi_type / update_quality_for_missing_admin in the
// original. isAddress is the caller's IsAddressType verdict for this
// query, shared across every candidate.
func (pl *Pipeline) scorePlaces(data *snapshot.Data, idx *Indexes, places []Place, query []QueryToken, isAddress bool) {
	matchedTerms := len(query)
	for i := range places {
		p := &places[i]
		base := 100 - penaltyByType(p.Type, isAddress)

		var totalTerms int
		var poiWeight int
		switch p.Type {
		case TypeStopArea:
			totalTerms = idx.StopAreas.TermCount(p.Idx)
		case TypeAdmin:
			totalTerms = idx.Admins.TermCount(p.Idx)
		case TypePOI:
			totalTerms = idx.POIs.TermCount(p.Idx)
			poiWeight = data.POIs[p.Idx].Weight
		case TypeWay:
			totalTerms = idx.Ways.TermCount(p.Idx)
		case TypeStopPoint:
			totalTerms = idx.StopPoints.TermCount(p.Idx)
		case TypeLine:
			totalTerms = idx.Lines.TermCount(p.Idx)
		}

		p.Quality = computeQuality(base, matchedTerms, totalTerms, poiWeight, pl.POIWeightBonusEnabled, len(p.AdminList) > 0)
	}
}
