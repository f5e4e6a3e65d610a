package absence_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal/absence"
)

func TestAbsenceMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Absence Metrics Suite")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string {
	return &s
}

func row(employeeID int64, typeName string, start, end time.Time) absence.MetricsRow {
	return absence.MetricsRow{
		EmployeeID:   employeeID,
		EmployeeCode: employeeID,
		EmployeeName: "Employee",
		TypeName:     typeName,
		StartDate:    start,
		EndDate:      end,
	}
}

var _ = Describe("BuildMetrics", func() {
	It("counts a same-day absence as one day", func() {
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 3, 10), day(2026, 3, 10)),
		}

		m := absence.BuildMetrics(rows, 10)
		Expect(m.TotalDays).To(Equal(1))
	})

	It("counts both endpoints of a full month", func() {
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 1, 1), day(2026, 1, 31)),
		}

		m := absence.BuildMetrics(rows, 10)
		Expect(m.TotalDays).To(Equal(31))
	})

	It("computes the absenteeism index over a 30-day reference period", func() {
		// 60 days over 4 active employees: 60/(30*4)*100 = 50.00
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 1, 1), day(2026, 1, 30)),
			row(2, "Atestado", day(2026, 2, 1), day(2026, 3, 2)),
		}

		m := absence.BuildMetrics(rows, 4)
		Expect(m.TotalDays).To(Equal(60))
		Expect(m.AbsenteeismIndex).To(Equal(50.00))
	})

	It("returns a zero index when there are no active employees", func() {
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 1, 1), day(2026, 1, 10)),
		}

		m := absence.BuildMetrics(rows, 0)
		Expect(m.AbsenteeismIndex).To(BeZero())
	})

	It("returns zeroes for an empty period", func() {
		m := absence.BuildMetrics(nil, 4)
		Expect(m.TotalRecords).To(BeZero())
		Expect(m.TotalDays).To(BeZero())
		Expect(m.AverageDays).To(BeZero())
		Expect(m.AffectedEmployees).To(BeZero())
	})

	It("counts distinct employees once across multiple records", func() {
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 1, 1), day(2026, 1, 2)),
			row(1, "Falta", day(2026, 2, 1), day(2026, 2, 2)),
			row(2, "Atestado", day(2026, 3, 1), day(2026, 3, 2)),
		}

		m := absence.BuildMetrics(rows, 10)
		Expect(m.TotalRecords).To(Equal(3))
		Expect(m.AffectedEmployees).To(Equal(2))
	})

	It("rounds the average to two decimals", func() {
		rows := []absence.MetricsRow{
			row(1, "Atestado", day(2026, 1, 1), day(2026, 1, 1)),
			row(2, "Atestado", day(2026, 1, 1), day(2026, 1, 2)),
			row(3, "Atestado", day(2026, 1, 1), day(2026, 1, 2)),
		}

		// 5 days over 3 records = 1.666... -> 1.67
		m := absence.BuildMetrics(rows, 10)
		Expect(m.AverageDays).To(Equal(1.67))
	})

	It("ranks types by descending count with ties in first-seen order", func() {
		rows := []absence.MetricsRow{
			row(1, "Falta", day(2026, 1, 1), day(2026, 1, 1)),
			row(2, "Atestado", day(2026, 1, 1), day(2026, 1, 1)),
			row(3, "Atestado", day(2026, 1, 1), day(2026, 1, 1)),
			row(4, "Licença", day(2026, 1, 1), day(2026, 1, 1)),
		}

		m := absence.BuildMetrics(rows, 10)
		Expect(m.ByType).To(HaveLen(3))
		Expect(m.ByType[0].Type).To(Equal("Atestado"))
		Expect(m.ByType[1].Type).To(Equal("Falta"))
		Expect(m.ByType[2].Type).To(Equal("Licença"))
	})

	It("caps department and employee rankings at five entries", func() {
		var rows []absence.MetricsRow
		departments := []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7"}
		for i, dept := range departments {
			r := row(int64(i+1), "Atestado", day(2026, 1, 1), day(2026, 1, 1))
			r.DepartmentCode = strPtr(dept)
			r.DepartmentName = strPtr("Department " + dept)
			rows = append(rows, r)
		}

		m := absence.BuildMetrics(rows, 10)
		Expect(m.TopDepartments).To(HaveLen(5))
		Expect(m.TopEmployees).To(HaveLen(5))
	})
})
