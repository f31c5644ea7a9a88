// Package ics renders calculated closure timeframes as an iCalendar feed.
package ics

import (
	"errors"
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"closures/backend/internal/domain"
)

const defaultProdID = "-//closures//closure timeframes//EN"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("closures:ics"))

type ExportOptions struct {
	Summary     string
	Description string
	ProdID      string
	// Now stamps every event. Defaults to time.Now.
	Now time.Time
}

// Export writes one VEVENT per timeframe. Event UIDs are derived from the
// timeframe and summary, so exporting the same closures twice yields the same
// calendar apart from DTSTAMP.
func Export(timeframes []domain.Timeframe, opts ExportOptions) ([]byte, error) {
	if len(timeframes) == 0 {
		return nil, errors.New("no timeframes to export")
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	prodID := opts.ProdID
	if prodID == "" {
		prodID = defaultProdID
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	for _, tf := range timeframes {
		if !tf.EndDate.After(tf.StartDate) {
			continue
		}
		ev := cal.AddEvent(eventUID(tf, opts.Summary))
		ev.SetDtStampTime(now.UTC())
		ev.SetStartAt(tf.StartDate.UTC())
		ev.SetEndAt(tf.EndDate.UTC())
		if opts.Summary != "" {
			ev.SetSummary(opts.Summary)
		}
		if opts.Description != "" {
			ev.SetDescription(opts.Description)
		}
	}
	if len(cal.Events()) == 0 {
		return nil, errors.New("no non-empty timeframes to export")
	}

	return []byte(cal.Serialize()), nil
}

func eventUID(tf domain.Timeframe, summary string) string {
	key := strconv.FormatInt(tf.StartDate.UnixMilli(), 10) + "/" + strconv.FormatInt(tf.EndDate.UnixMilli(), 10) + "/" + summary
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@closures"
}
