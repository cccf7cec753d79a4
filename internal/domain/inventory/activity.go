package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SeriesKind declares the shape of an activity series. Chronological domains
// produce daily points; the designer stash has no per-day ledger, so its
// activity is a per-category breakdown instead. Chart consumers branch on this.
type SeriesKind string

const (
	SeriesDaily    SeriesKind = "daily"
	SeriesCategory SeriesKind = "category"
)

// Event is one dated, labeled quantity contributed to an activity series.
type Event struct {
	When     time.Time
	Label    string // category label (supplier, material, design...)
	Quantity decimal.Decimal
}

// Point is one aggregated bucket of a series.
type Point struct {
	Label    string // "2006-01-02" for daily series, category label otherwise
	Quantity decimal.Decimal
	Count    int
}

// MovementPoint is one day of in/out/net flow.
type MovementPoint struct {
	Date string
	In   decimal.Decimal
	Out  decimal.Decimal
	Net  decimal.Decimal
}

const dateLayout = "2006-01-02"

// BucketByDate groups events by calendar date (time-of-day ignored) within
// [from, to], summing quantities per day. Points come back in date order; days
// with no events produce no point.
func BucketByDate(events []Event, from, to time.Time) []Point {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	buckets := make(map[string]*Point)
	for _, ev := range events {
		day := truncateToDay(ev.When)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		key := day.Format(dateLayout)
		p, ok := buckets[key]
		if !ok {
			p = &Point{Label: key}
			buckets[key] = p
		}
		p.Quantity = p.Quantity.Add(ev.Quantity)
		p.Count++
	}

	points := make([]Point, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Label < points[j].Label })
	return points
}

// BucketByCategory groups events by label, summing quantities. Points come back
// ordered by quantity descending (pie-style breakdown).
func BucketByCategory(events []Event) []Point {
	buckets := make(map[string]*Point)
	order := make([]string, 0)
	for _, ev := range events {
		p, ok := buckets[ev.Label]
		if !ok {
			p = &Point{Label: ev.Label}
			buckets[ev.Label] = p
			order = append(order, ev.Label)
		}
		p.Quantity = p.Quantity.Add(ev.Quantity)
		p.Count++
	}

	points := make([]Point, 0, len(buckets))
	for _, label := range order {
		points = append(points, *buckets[label])
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Quantity.GreaterThan(points[j].Quantity)
	})
	return points
}

// BucketMovements splits signed quantity events into daily in/out/net flow.
func BucketMovements(events []Event, from, to time.Time) []MovementPoint {
	fromDay := truncateToDay(from)
	toDay := truncateToDay(to)

	buckets := make(map[string]*MovementPoint)
	for _, ev := range events {
		day := truncateToDay(ev.When)
		if day.Before(fromDay) || day.After(toDay) {
			continue
		}
		key := day.Format(dateLayout)
		p, ok := buckets[key]
		if !ok {
			p = &MovementPoint{Date: key}
			buckets[key] = p
		}
		if ev.Quantity.Sign() >= 0 {
			p.In = p.In.Add(ev.Quantity)
		} else {
			p.Out = p.Out.Add(ev.Quantity.Neg())
		}
		p.Net = p.Net.Add(ev.Quantity)
	}

	points := make([]MovementPoint, 0, len(buckets))
	for _, p := range buckets {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
