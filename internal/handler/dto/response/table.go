package response

import (
	"time"

	"table-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type TableResponse struct {
	ID          uuid.UUID `json:"id"`
	TableNumber int       `json:"tableNumber"`
	HourlyRate  float64   `json:"hourlyRate"`
	IsAvailable bool      `json:"isAvailable"`
}

func FromTableViews(views []*queries.TableView) []*TableResponse {
	out := make([]*TableResponse, len(views))
	for i, v := range views {
		out[i] = &TableResponse{
			ID:          v.ID,
			TableNumber: v.Number,
			HourlyRate:  major(v.HourlyRateCents),
			IsAvailable: v.IsAvailable,
		}
	}
	return out
}

type EndOptionResponse struct {
	EndTime time.Time `json:"endTime"`
	Valid   bool      `json:"valid"`
}

type AvailabilityResponse struct {
	TableID             uuid.UUID           `json:"tableId"`
	Date                string              `json:"date"`
	FullyBooked         bool                `json:"fullyBooked"`
	AvailableStartTimes []time.Time         `json:"availableStartTimes"`
	StartTime           *time.Time          `json:"startTime,omitempty"`
	AvailableEndTimes   *[]time.Time        `json:"availableEndTimes,omitempty"`
	EndOptions          []EndOptionResponse `json:"endOptions,omitempty"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		TableID:             v.TableID,
		Date:                v.Date,
		FullyBooked:         v.FullyBooked,
		AvailableStartTimes: v.Starts,
		StartTime:           v.Start,
	}
	if resp.AvailableStartTimes == nil {
		resp.AvailableStartTimes = []time.Time{}
	}
	// A start query always answers with a list, empty when nothing can follow it.
	if v.Start != nil && v.EndOptions == nil {
		ends := v.Ends
		if ends == nil {
			ends = []time.Time{}
		}
		resp.AvailableEndTimes = &ends
	}
	for _, o := range v.EndOptions {
		resp.EndOptions = append(resp.EndOptions, EndOptionResponse{EndTime: o.End, Valid: o.Valid})
	}
	return resp
}
