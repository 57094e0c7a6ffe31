//go:build unit

package api_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"table-booking/internal/domain/event"
	"table-booking/internal/handler/api"
	"table-booking/tests/common/builder"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	ch           chan event.Event
	unsubscribed bool
}

func (f *fakeSource) Subscribe() (<-chan event.Event, func()) {
	return f.ch, func() { f.unsubscribed = true }
}

// gin's Stream needs a CloseNotifier, which the stdlib recorder lacks.
type streamRecorder struct {
	*nethttptest.ResponseRecorder
	closed chan bool
}

func (r *streamRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func TestEventsStream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	res := builder.NewReservationBuilder().BuildDomain()
	now := time.Date(2030, time.June, 8, 9, 0, 0, 0, builder.IST)

	src := &fakeSource{ch: make(chan event.Event, 2)}
	src.ch <- event.New(event.ReservationCreated, res, now)
	src.ch <- event.Metrics(now)
	close(src.ch)

	router := gin.New()
	router.GET("/events", api.NewEventsHandler(src).Stream)

	rec := &streamRecorder{ResponseRecorder: nethttptest.NewRecorder(), closed: make(chan bool, 1)}
	router.ServeHTTP(rec, nethttptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	body := rec.Body.String()
	assert.Contains(t, body, "event:reservation.created\n")
	assert.Contains(t, body, res.ID().String())
	assert.Contains(t, body, "event:metrics.changed\n")
	assert.Less(t, strings.Index(body, "reservation.created"), strings.Index(body, "metrics.changed"))
	assert.True(t, src.unsubscribed)
}
