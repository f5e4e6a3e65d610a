package employee

import (
	"sort"

	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

const topGroupLimit = 10

// BuildMetrics computes the workforce report over one company's rows.
// Groupings are ranked by descending count; ties keep first-seen order,
// so the output is deterministic for a given row order.
func BuildMetrics(rows []*employeemodel.Employee) *Metrics {
	statusCounts := make(map[string]int)
	units := newGroupCounter()
	departments := newGroupCounter()
	jobTitles := newGroupCounter()

	for _, row := range rows {
		statusCounts[row.Status]++
		units.add(deref(row.UnitCode), deref(row.UnitName))
		departments.add(deref(row.DepartmentCode), deref(row.DepartmentName))
		jobTitles.add(deref(row.JobTitleCode), deref(row.JobTitleName))
	}

	byStatus := make([]StatusCount, 0, len(statusCounts))
	for status, total := range statusCounts {
		byStatus = append(byStatus, StatusCount{Status: status, Total: total})
	}
	sort.Slice(byStatus, func(i, j int) bool {
		return byStatus[i].Status < byStatus[j].Status
	})

	return &Metrics{
		TotalEmployees: len(rows),
		ByStatus:       byStatus,
		TopUnits:       units.top(topGroupLimit),
		TopDepartments: departments.top(topGroupLimit),
		TopJobTitles:   jobTitles.top(topGroupLimit),
	}
}

// groupCounter accumulates counts per (code, name) key while preserving
// the order keys were first seen.
type groupCounter struct {
	index  map[string]int
	groups []GroupCount
}

func newGroupCounter() *groupCounter {
	return &groupCounter{
		index: make(map[string]int),
	}
}

func (c *groupCounter) add(code, name string) {
	key := code + "\x00" + name
	if i, ok := c.index[key]; ok {
		c.groups[i].Total++
		return
	}
	c.index[key] = len(c.groups)
	c.groups = append(c.groups, GroupCount{Code: code, Name: name, Total: 1})
}

func (c *groupCounter) top(n int) []GroupCount {
	ranked := make([]GroupCount, len(c.groups))
	copy(ranked, c.groups)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Total > ranked[j].Total
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
