package facade

import (
	"google.golang.org/protobuf/types/known/structpb"

	"transitkernel.dev/core/autocomplete"
	"transitkernel.dev/core/model"
)

// ResponseType mirrors the response_type enum of spec.md §6.
type ResponseType int

const (
	ResponseNoSolution ResponseType = iota
	ResponseItineraryFound
	ResponsePlacesFound
	ResponseInternalError
)

// Section is one leg of a planned journey.
type Section struct {
	Origin      string
	Destination string
	Departure   model.DateTime
	Arrival     model.DateTime
}

// Journey is one complete itinerary, as returned by the injected
// JourneyPlanner.
type Journey struct {
	Departure model.DateTime
	Arrival   model.DateTime
	Transfers int
	Sections  []Section
}

// GraphicalIsochrone is one min/max-duration contour, as returned by
// the injected IsochroneProducer. The polygon geometry itself is
// opaque to this module (out of scope per §1/§6); WKT holds whatever
// representation the collaborator produced.
type GraphicalIsochrone struct {
	MinDuration int
	MaxDuration int
	WKT         string
}

// Pagination mirrors the pagination block of spec.md §6.
type Pagination struct {
	StartPage  int
	ItemsPerPage int
	ItemsOnPage int
	TotalResult int
}

// Response is the opaque top-level reply. Exactly one of Journeys,
// Isochrones or Places is populated, depending on the request that
// produced it.
type Response struct {
	Type       ResponseType
	Journeys   []Journey
	Isochrones []GraphicalIsochrone
	Places     []autocomplete.Place
	Pagination Pagination
	Extra      *structpb.Struct
}

func noSolution() *Response {
	return &Response{Type: ResponseNoSolution}
}

func internalError() *Response {
	return &Response{Type: ResponseInternalError}
}
