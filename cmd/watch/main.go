// Command watch follows the live event stream for one table and prints its availability for a day
// each time the mirrored reservations change.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"table-booking/internal/client/mirror"
	"table-booking/internal/client/stream"
	"table-booking/internal/domain/availability"
	"table-booking/internal/domain/event"
	"table-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

const fetchTimeout = 10 * time.Second

type watcher struct {
	server  string
	tableID uuid.UUID
	day     time.Time
	token   string
	client  *http.Client
	policy  availability.Policy
	mirror  *mirror.Mirror
	out     io.Writer
	logger  *slog.Logger
}

func main() {
	server := flag.String("server", "http://localhost:8080", "API base URL")
	table := flag.String("table", "", "table id to watch")
	date := flag.String("date", "", "day to render (YYYY-MM-DD, default today)")
	tz := flag.String("tz", "Asia/Kolkata", "booking time zone")
	token := flag.String("token", os.Getenv("BOOKING_TOKEN"), "optional bearer token sent with every request")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	tableID, err := uuid.Parse(*table)
	if err != nil {
		logger.Error("A valid -table id is required", "error", err)
		os.Exit(2)
	}
	loc, err := time.LoadLocation(*tz)
	if err != nil {
		logger.Error("Unknown time zone", "tz", *tz, "error", err)
		os.Exit(2)
	}
	day := time.Now().In(loc)
	if *date != "" {
		var ok bool
		if day, ok = availability.ParseDay(*date, loc); !ok {
			logger.Error("Invalid -date, expected YYYY-MM-DD", "date", *date)
			os.Exit(2)
		}
	}

	w := &watcher{
		server:  strings.TrimRight(*server, "/"),
		tableID: tableID,
		day:     day,
		token:   *token,
		client:  &http.Client{},
		policy:  availability.DefaultPolicy(),
		out:     os.Stdout,
		logger:  logger,
	}
	w.mirror = mirror.New(
		mirror.WithTable(tableID),
		mirror.WithMetricsCallback(func() { logger.Debug("Metrics changed") }),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []stream.Option{}
	if w.token != "" {
		opts = append(opts, stream.WithBearerToken(w.token))
	}
	sub := stream.NewSubscriber(w.server+"/api/events", nil, logger, opts...)
	if err := sub.Run(ctx, w.resync, w.handle); err != nil {
		logger.Error("Event stream failed", "error", err)
		os.Exit(1)
	}
}

// resync replaces the mirror with a fresh fetch. It runs on the first connect and after every
// reconnect.
func (w *watcher) resync(ctx context.Context, reconnect bool) error {
	items, err := w.fetchDay(ctx)
	if err != nil {
		return err
	}
	w.mirror.Replace(items)
	if reconnect {
		w.logger.Info("Reconnected, mirror re-fetched", "reservations", len(items))
	}
	w.render()
	return nil
}

func (w *watcher) handle(e event.Event) {
	if w.mirror.Apply(e) {
		w.render()
	}
}

func (w *watcher) fetchDay(ctx context.Context) ([]event.ReservationPayload, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/api/tables/%s/reservations?date=%s",
		w.server, w.tableID, url.QueryEscape(availability.FormatDay(w.day)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build fetch request")
	}
	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return nil, errs.Wrap(err, "failed to fetch reservations")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errs.Newf("fetch reservations: status %d", resp.StatusCode)
	}
	var items []event.ReservationPayload
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, errs.Wrap(err, "failed to decode reservations")
	}
	return items, nil
}

func (w *watcher) render() {
	active := w.mirror.ActiveIntervals(w.tableID)
	now := time.Now().In(w.day.Location())

	fmt.Fprintf(w.out, "\n%s  table %s  (%d active)\n", availability.FormatDay(w.day), w.tableID, len(active))
	if w.policy.IsFullyBooked(w.day, now, active) {
		fmt.Fprintln(w.out, "  fully booked")
		return
	}
	for _, start := range w.policy.AvailableStarts(w.day, now, active) {
		ends := w.policy.ValidEndInstants(start, active)
		if len(ends) == 0 {
			continue
		}
		fmt.Fprintf(w.out, "  %s  until %s\n", start.Format("15:04"), ends[len(ends)-1].Format("15:04"))
	}
}
