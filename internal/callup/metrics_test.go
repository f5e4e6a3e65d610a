package callup_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal/callup"
)

func TestCallUpMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "CallUp Metrics Suite")
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func strPtr(s string) *string {
	return &s
}

var _ = Describe("BuildMetrics", func() {
	today := day(2026, 3, 15)

	It("counts an unresponded call-up with a near deadline as both pending and upcoming", func() {
		rows := []callup.MetricsRow{
			{Responded: false, ResponseDeadline: day(2026, 3, 20)},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalPending).To(Equal(1))
		Expect(m.TotalUpcoming).To(Equal(1))
		Expect(m.TotalOverdue).To(BeZero())
		Expect(m.TotalOnTime).To(BeZero())
	})

	It("does not count a far deadline as upcoming", func() {
		rows := []callup.MetricsRow{
			{Responded: false, ResponseDeadline: day(2026, 6, 1)},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalPending).To(Equal(1))
		Expect(m.TotalUpcoming).To(BeZero())
	})

	It("includes both window edges in the upcoming bucket", func() {
		rows := []callup.MetricsRow{
			{Responded: false, ResponseDeadline: day(2026, 3, 15)},
			{Responded: false, ResponseDeadline: day(2026, 4, 14)},
			{Responded: false, ResponseDeadline: day(2026, 4, 15)},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalUpcoming).To(Equal(2))
		Expect(m.TotalPending).To(Equal(3))
	})

	It("treats a deadline in the past as pending but not upcoming", func() {
		rows := []callup.MetricsRow{
			{Responded: false, ResponseDeadline: day(2026, 3, 1)},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalPending).To(Equal(1))
		Expect(m.TotalUpcoming).To(BeZero())
	})

	It("counts a late response as overdue only", func() {
		rows := []callup.MetricsRow{
			{
				Responded:        true,
				Response:         callup.ResponseAccepted,
				ResponseDeadline: day(2026, 3, 1),
				ResponseDate:     timePtr(day(2026, 3, 5)),
			},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalOverdue).To(Equal(1))
		Expect(m.TotalOnTime).To(BeZero())
		Expect(m.TotalPending).To(BeZero())
	})

	It("counts a response on the deadline day as on time", func() {
		rows := []callup.MetricsRow{
			{
				Responded:        true,
				Response:         callup.ResponseAccepted,
				ResponseDeadline: day(2026, 3, 1),
				ResponseDate:     timePtr(day(2026, 3, 1)),
			},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.TotalOnTime).To(Equal(1))
		Expect(m.TotalOverdue).To(BeZero())
	})

	It("reports all four buckets in a fixed order", func() {
		m := callup.BuildMetrics(nil, today)
		Expect(m.ByStatus).To(HaveLen(4))
		Expect(m.ByStatus[0].Status).To(Equal("overdue"))
		Expect(m.ByStatus[1].Status).To(Equal("pending"))
		Expect(m.ByStatus[2].Status).To(Equal("upcoming"))
		Expect(m.ByStatus[3].Status).To(Equal("on_time"))
	})

	It("breaks counts down per unit ordered by unit name", func() {
		rows := []callup.MetricsRow{
			{Responded: false, ResponseDeadline: day(2026, 3, 20), UnitCode: strPtr("U2"), UnitName: strPtr("Zeta")},
			{Responded: false, ResponseDeadline: day(2026, 3, 20), UnitCode: strPtr("U1"), UnitName: strPtr("Alfa")},
			{
				Responded:        true,
				ResponseDeadline: day(2026, 3, 1),
				ResponseDate:     timePtr(day(2026, 3, 5)),
				UnitCode:         strPtr("U1"),
				UnitName:         strPtr("Alfa"),
			},
		}

		m := callup.BuildMetrics(rows, today)
		Expect(m.ByUnit).To(HaveLen(2))
		Expect(m.ByUnit[0].Name).To(Equal("Alfa"))
		Expect(m.ByUnit[0].Pending).To(Equal(1))
		Expect(m.ByUnit[0].Overdue).To(Equal(1))
		Expect(m.ByUnit[1].Name).To(Equal("Zeta"))
		Expect(m.ByUnit[1].Pending).To(Equal(1))
	})
})
