package request

import (
	"time"

	"table-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateOrderRequest struct {
	TableID   uuid.UUID `json:"tableId" binding:"required"`
	StartTime time.Time `json:"startTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

func (r CreateOrderRequest) ToInput() commands.CreateOrderInput {
	return commands.CreateOrderInput{TableID: r.TableID, Start: r.StartTime, End: r.EndTime}
}
