package facade

import (
	"context"
	"errors"
	"fmt"

	"transitkernel.dev/core/autocomplete"
	"transitkernel.dev/core/snapshot"
)

// ErrInvalidRequest is the "invalid request" error kind of spec.md §7
// kind 2: missing mandatory fields, an unsatisfiable duration window,
// and similar caller mistakes. It is never fatal; Dispatch always
// turns it into a well-formed Response rather than propagating it.
type ErrInvalidRequest struct {
	Reason string
}

func (e *ErrInvalidRequest) Error() string {
	return fmt.Sprintf("facade: invalid request: %s", e.Reason)
}

// JourneyPlanner is the RAPTOR outer loop, injected rather than
// implemented by this package: it owns the round-based search over
// the frozen snapshot using the routing package's stop-time kernel.
// Per §1/§6 this collaborator is out of scope for this module.
type JourneyPlanner interface {
	Plan(ctx context.Context, data *snapshot.Data, req *PlannerRequest) ([]Journey, error)
}

// IsochroneProducer computes graphical isochrone contours, injected
// for the same reason as JourneyPlanner.
type IsochroneProducer interface {
	Isochrones(ctx context.Context, data *snapshot.Data, req *IsochroneRequest) ([]GraphicalIsochrone, error)
}

// Dispatcher routes a Request to the right pipeline: the injected
// JourneyPlanner/IsochroneProducer for journeys and isochrones, or the
// in-module autocomplete pipeline directly. It holds no state of its
// own beyond its collaborators and the frozen data/indexes it's handed
// per call.
type Dispatcher struct {
	Planner    JourneyPlanner
	Isochrones IsochroneProducer

	// AutocompletePipeline configures the in-module autocomplete
	// resolution algorithm. Its zero value (POIWeightBonusEnabled:
	// false) is the correct default per SPEC_FULL §4.6.
	AutocompletePipeline autocomplete.Pipeline
}

// Dispatch routes req against data (and, for autocomplete, idx/tables)
// and returns a well-formed Response. It never returns an error: per
// §7 propagation policy, invalid requests and empty results are
// reported as response fields, not Go errors. A programmer invariant
// violation surfaced by a collaborator, and an unknown RequestedAPI,
// are the cases mapped to ResponseInternalError.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	data *snapshot.Data,
	idx *autocomplete.Indexes,
	tables *autocomplete.Tables,
	req *Request,
) *Response {
	switch req.RequestedAPI {
	case APIPlanner:
		return d.dispatchPlanner(ctx, data, req.Planner)
	case APIIsochrone:
		return d.dispatchIsochrone(ctx, data, req.Isochrone)
	case APIAutocomplete:
		return d.dispatchAutocomplete(data, idx, tables, req.Autocomplete)
	default:
		return &Response{Type: ResponseInternalError}
	}
}

func (d *Dispatcher) dispatchPlanner(ctx context.Context, data *snapshot.Data, req *PlannerRequest) *Response {
	if req == nil {
		return noSolution()
	}
	if err := validatePlannerRequest(req); err != nil {
		return noSolution()
	}
	journeys, err := d.Planner.Plan(ctx, data, req)
	if err != nil {
		if errors.Is(err, snapshot.ErrInvariantViolation) {
			return internalError()
		}
		return noSolution()
	}
	if len(journeys) == 0 {
		return noSolution()
	}
	return &Response{Type: ResponseItineraryFound, Journeys: journeys}
}

func (d *Dispatcher) dispatchIsochrone(ctx context.Context, data *snapshot.Data, req *IsochroneRequest) *Response {
	if req == nil {
		return noSolution()
	}
	if err := validateIsochroneRequest(req); err != nil {
		return noSolution()
	}
	isos, err := d.Isochrones.Isochrones(ctx, data, req)
	if err != nil {
		if errors.Is(err, snapshot.ErrInvariantViolation) {
			return internalError()
		}
		return noSolution()
	}
	return &Response{Type: ResponseItineraryFound, Isochrones: isos}
}

func (d *Dispatcher) dispatchAutocomplete(
	data *snapshot.Data,
	idx *autocomplete.Indexes,
	tables *autocomplete.Tables,
	req *AutocompleteRequest,
) *Response {
	if req == nil {
		return &Response{Type: ResponsePlacesFound}
	}
	searchTypes := resolveSearchTypes(req.FilterTypes, req.SearchType)
	filter := autocomplete.NoAdminFilter
	if len(req.AdminURIs) > 0 {
		filter = autocomplete.AdminURIFilter(data, resolveAdminIdxs(data, req.AdminURIs))
	}
	places := d.AutocompletePipeline.Autocomplete(data, idx, tables, req.Q, searchTypes, filter, req.NbMax)
	return &Response{
		Type:   ResponsePlacesFound,
		Places: places,
		Pagination: Pagination{
			ItemsPerPage: req.NbMax,
			ItemsOnPage:  len(places),
			TotalResult:  len(places),
		},
	}
}

// validatePlannerRequest is the minimal well-formedness precondition
// supplemented from original_source's kraken worker_test.cpp: a
// planner request needs at least one origin and one requested
// datetime, or there is nothing for the journey planner to search
// from.
func validatePlannerRequest(req *PlannerRequest) error {
	if len(req.Origin) == 0 {
		return &ErrInvalidRequest{Reason: "planner request has no origin"}
	}
	if len(req.Datetimes) == 0 {
		return &ErrInvalidRequest{Reason: "planner request has no datetimes"}
	}
	return nil
}

// validateIsochroneRequest additionally requires min_duration <=
// max_duration, matching the same worker_test.cpp-derived precondition.
func validateIsochroneRequest(req *IsochroneRequest) error {
	if err := validatePlannerRequest(&req.Journeys); err != nil {
		return err
	}
	if req.MinDuration > req.MaxDuration {
		return &ErrInvalidRequest{Reason: "isochrone min_duration exceeds max_duration"}
	}
	return nil
}

// resolveSearchTypes maps the request's filter_types field onto an
// autocomplete.SearchType bitmask. The searchType argument is not
// used: the pipeline has no complete/partial mode to select. An unknown
// entity type name in filter_types is skipped (§7 kind 2: invalid
// request detail, never fatal) rather than rejecting the whole request.
func resolveSearchTypes(filterTypes []string, searchType int) autocomplete.SearchType {
	if len(filterTypes) == 0 {
		return autocomplete.SearchAll
	}
	var mask autocomplete.SearchType
	for _, t := range filterTypes {
		switch t {
		case "stop_area":
			mask |= autocomplete.SearchStopArea
		case "administrative_region":
			mask |= autocomplete.SearchAdmin
		case "poi":
			mask |= autocomplete.SearchPOI
		case "address":
			mask |= autocomplete.SearchWay
		case "stop_point":
			mask |= autocomplete.SearchStopPoint
		case "line":
			mask |= autocomplete.SearchLine
		}
	}
	if mask == 0 {
		return autocomplete.SearchAll
	}
	return mask
}

// resolveAdminIdxs maps admin URIs to admin indexes, silently ignoring
// any URI that doesn't resolve (§7 kind 2: "unknown admin URI,
// ignored").
func resolveAdminIdxs(data *snapshot.Data, uris []string) []int {
	want := map[string]bool{}
	for _, u := range uris {
		want[u] = true
	}
	var out []int
	for _, a := range data.Admins {
		if want[a.URI] {
			out = append(out, a.Idx)
		}
	}
	return out
}
