// Package facade implements the external Request/Response dispatch
// contract: opaque structured messages in, a typed response out. It
// wires planner and isochrone requests to injected collaborators and
// drives the autocomplete pipeline directly, per SPEC_FULL §4.7.
package facade

import (
	"google.golang.org/protobuf/types/known/structpb"

	"transitkernel.dev/core/model"
)

// RequestedAPI selects which of the three pipelines a Request targets.
type RequestedAPI int

const (
	APIPlanner RequestedAPI = iota
	APIIsochrone
	APIAutocomplete
)

// StreetNetworkParams is the access/egress leg configuration shared by
// planner and isochrone requests.
type StreetNetworkParams struct {
	OriginMode      string
	DestinationMode string
	WalkingSpeed    float64
	BikeSpeed       float64
	CarSpeed        float64
	BSSSpeed        float64
}

// PlaceAccess pairs a place reference with the access/egress duration
// to reach it.
type PlaceAccess struct {
	Place          string
	AccessDuration int
}

// PlannerRequest is the journey-planning request, field-for-field per
// spec.md §6.
type PlannerRequest struct {
	Clockwise           bool
	Wheelchair          bool
	RealtimeLevel       string
	MaxDuration         int
	MaxTransfers        int
	Datetimes           []model.DateTime
	StreetNetworkParams StreetNetworkParams
	Origin              []PlaceAccess
	Destination         []PlaceAccess
}

// IsochroneRequest is the isochrone request: a PlannerRequest-shaped
// journeys_request with no destination, plus a min duration.
type IsochroneRequest struct {
	MinDuration   int
	MaxDuration   int
	Journeys      PlannerRequest
}

// AutocompleteRequest is the free-text place-search request.
type AutocompleteRequest struct {
	Q           string
	FilterTypes []string
	Depth       int
	NbMax       int
	AdminURIs   []string
	SearchType  int
}

// Request is the opaque top-level message: exactly one of Planner,
// Isochrone or Autocomplete is populated, selected by RequestedAPI.
// Extra carries any schema field this module doesn't interpret,
// passed through unexamined.
type Request struct {
	RequestedAPI RequestedAPI
	Planner      *PlannerRequest
	Isochrone    *IsochroneRequest
	Autocomplete *AutocompleteRequest
	Extra        *structpb.Struct
}
