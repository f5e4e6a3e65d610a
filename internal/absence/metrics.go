package absence

import (
	"math"
	"sort"
)

const (
	referencePeriodDays = 30
	topDepartmentLimit  = 5
	topEmployeeLimit    = 5
)

// BuildMetrics computes the absenteeism report. Day counts are
// inclusive of both endpoints; the index normalizes total days against
// a fixed 30-day reference period and the active headcount. Rankings
// are descending by count with ties keeping first-seen order.
func BuildMetrics(rows []MetricsRow, activeEmployees int64) *Metrics {
	totalDays := 0
	distinctEmployees := make(map[int64]struct{})

	typeIndex := make(map[string]int)
	var byType []TypeCount

	deptIndex := make(map[string]int)
	var byDepartment []GroupCount

	employeeIndex := make(map[int64]int)
	var byEmployee []EmployeeCount

	for _, row := range rows {
		totalDays += inclusiveDays(row)
		distinctEmployees[row.EmployeeID] = struct{}{}

		if i, ok := typeIndex[row.TypeName]; ok {
			byType[i].Total++
		} else {
			typeIndex[row.TypeName] = len(byType)
			byType = append(byType, TypeCount{Type: row.TypeName, Total: 1})
		}

		deptKey := strOrEmpty(row.DepartmentCode) + "\x00" + strOrEmpty(row.DepartmentName)
		if i, ok := deptIndex[deptKey]; ok {
			byDepartment[i].Total++
		} else {
			deptIndex[deptKey] = len(byDepartment)
			byDepartment = append(byDepartment, GroupCount{
				Code:  strOrEmpty(row.DepartmentCode),
				Name:  strOrEmpty(row.DepartmentName),
				Total: 1,
			})
		}

		if i, ok := employeeIndex[row.EmployeeID]; ok {
			byEmployee[i].Total++
		} else {
			employeeIndex[row.EmployeeID] = len(byEmployee)
			byEmployee = append(byEmployee, EmployeeCount{
				Code:  row.EmployeeCode,
				Name:  row.EmployeeName,
				Total: 1,
			})
		}
	}

	averageDays := 0.0
	if len(rows) > 0 {
		averageDays = round2(float64(totalDays) / float64(len(rows)))
	}

	index := 0.0
	if activeEmployees > 0 {
		index = round2(float64(totalDays) / float64(referencePeriodDays*activeEmployees) * 100)
	}

	sort.SliceStable(byType, func(i, j int) bool { return byType[i].Total > byType[j].Total })
	sort.SliceStable(byDepartment, func(i, j int) bool { return byDepartment[i].Total > byDepartment[j].Total })
	sort.SliceStable(byEmployee, func(i, j int) bool { return byEmployee[i].Total > byEmployee[j].Total })

	if len(byDepartment) > topDepartmentLimit {
		byDepartment = byDepartment[:topDepartmentLimit]
	}
	if len(byEmployee) > topEmployeeLimit {
		byEmployee = byEmployee[:topEmployeeLimit]
	}

	return &Metrics{
		TotalRecords:      len(rows),
		TotalDays:         totalDays,
		AverageDays:       averageDays,
		AffectedEmployees: len(distinctEmployees),
		AbsenteeismIndex:  index,
		ByType:            byType,
		TopDepartments:    byDepartment,
		TopEmployees:      byEmployee,
	}
}

// inclusiveDays counts both endpoints: same start and end is 1 day.
func inclusiveDays(row MetricsRow) int {
	return int(row.EndDate.Sub(row.StartDate).Hours()/24) + 1
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
