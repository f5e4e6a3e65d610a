package callup

import (
	"sort"
	"time"
)

// BuildMetrics computes the call-up status report. Each bucket is
// evaluated independently per record: pending and upcoming overlap by
// construction, since upcoming is an urgency sub-view of pending, not a
// disjoint partition.
func BuildMetrics(rows []MetricsRow, today time.Time) *Metrics {
	today = truncateToDay(today)
	windowEnd := today.AddDate(0, 0, upcomingWindowDays)

	m := &Metrics{}
	unitIndex := make(map[string]int)
	var units []UnitBreakdown

	for _, row := range rows {
		overdue := row.Responded && row.ResponseDate != nil && row.ResponseDate.After(row.ResponseDeadline)
		onTime := row.Responded && row.ResponseDate != nil && !row.ResponseDate.After(row.ResponseDeadline)
		pending := !row.Responded
		deadline := truncateToDay(row.ResponseDeadline)
		upcoming := pending && !deadline.Before(today) && !deadline.After(windowEnd)

		if overdue {
			m.TotalOverdue++
		}
		if pending {
			m.TotalPending++
		}
		if upcoming {
			m.TotalUpcoming++
		}
		if onTime {
			m.TotalOnTime++
		}

		key := strOrEmpty(row.UnitCode) + "\x00" + strOrEmpty(row.UnitName)
		i, ok := unitIndex[key]
		if !ok {
			i = len(units)
			unitIndex[key] = i
			units = append(units, UnitBreakdown{
				Code: strOrEmpty(row.UnitCode),
				Name: strOrEmpty(row.UnitName),
			})
		}
		if pending {
			units[i].Pending++
		}
		if onTime {
			units[i].OnTime++
		}
		if overdue {
			units[i].Overdue++
		}
	}

	sort.Slice(units, func(i, j int) bool {
		if units[i].Name != units[j].Name {
			return units[i].Name < units[j].Name
		}
		return units[i].Code < units[j].Code
	})

	m.ByStatus = []StatusBucket{
		{Status: "overdue", Total: m.TotalOverdue},
		{Status: "pending", Total: m.TotalPending},
		{Status: "upcoming", Total: m.TotalUpcoming},
		{Status: "on_time", Total: m.TotalOnTime},
	}
	m.ByUnit = units

	return m
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
