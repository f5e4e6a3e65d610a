package employee_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal/employee"
	employeemodel "github.com/fbarbosa/hr-management/internal/core/datamodel/employee"
)

func TestEmployeeMetrics(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Employee Metrics Suite")
}

func strPtr(s string) *string {
	return &s
}

func withUnit(status, unitCode, unitName string) *employeemodel.Employee {
	return &employeemodel.Employee{
		Status:   status,
		UnitCode: strPtr(unitCode),
		UnitName: strPtr(unitName),
	}
}

var _ = Describe("BuildMetrics", func() {
	It("counts totals and statuses", func() {
		rows := []*employeemodel.Employee{
			{Status: employee.StatusActive},
			{Status: employee.StatusActive},
			{Status: employee.StatusOnLeave},
		}

		m := employee.BuildMetrics(rows)
		Expect(m.TotalEmployees).To(Equal(3))
		Expect(m.ByStatus).To(HaveLen(2))
		Expect(m.ByStatus[0].Status).To(Equal(employee.StatusActive))
		Expect(m.ByStatus[0].Total).To(Equal(2))
		Expect(m.ByStatus[1].Status).To(Equal(employee.StatusOnLeave))
		Expect(m.ByStatus[1].Total).To(Equal(1))
	})

	It("ranks units by descending count", func() {
		rows := []*employeemodel.Employee{
			withUnit(employee.StatusActive, "U1", "Matriz"),
			withUnit(employee.StatusActive, "U2", "Filial"),
			withUnit(employee.StatusActive, "U2", "Filial"),
		}

		m := employee.BuildMetrics(rows)
		Expect(m.TopUnits[0].Code).To(Equal("U2"))
		Expect(m.TopUnits[0].Total).To(Equal(2))
		Expect(m.TopUnits[1].Code).To(Equal("U1"))
	})

	It("keeps first-seen order for tied groups", func() {
		rows := []*employeemodel.Employee{
			withUnit(employee.StatusActive, "U3", "Norte"),
			withUnit(employee.StatusActive, "U1", "Sul"),
			withUnit(employee.StatusActive, "U2", "Leste"),
		}

		m := employee.BuildMetrics(rows)
		Expect(m.TopUnits[0].Code).To(Equal("U3"))
		Expect(m.TopUnits[1].Code).To(Equal("U1"))
		Expect(m.TopUnits[2].Code).To(Equal("U2"))
	})

	It("caps rankings at ten groups", func() {
		var rows []*employeemodel.Employee
		for i := 0; i < 12; i++ {
			code := string(rune('A' + i))
			rows = append(rows, withUnit(employee.StatusActive, code, "Unit "+code))
		}

		m := employee.BuildMetrics(rows)
		Expect(m.TopUnits).To(HaveLen(10))
	})

	It("handles an empty company", func() {
		m := employee.BuildMetrics(nil)
		Expect(m.TotalEmployees).To(BeZero())
		Expect(m.ByStatus).To(BeEmpty())
		Expect(m.TopUnits).To(BeEmpty())
	})
})
