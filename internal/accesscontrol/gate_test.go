package accesscontrol_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fbarbosa/hr-management/internal"
	"github.com/fbarbosa/hr-management/internal/accesscontrol"
)

var _ = Describe("Gate", func() {
	var (
		grants *MockGrantStore
		gate   *accesscontrol.Gate
		ctx    context.Context
	)

	routes := []accesscontrol.ScreenRoute{
		{PathPrefix: "/api/v1/employees", ScreenCode: "employees"},
		{PathPrefix: "/api/v1/absences", ScreenCode: "absences"},
		{PathPrefix: "/api/v1/callups", ScreenCode: "callups"},
	}

	BeforeEach(func() {
		grants = NewMockGrantStore()
		gate = accesscontrol.NewGate(routes, grants)
		ctx = context.Background()
	})

	It("allows a gated path when the user holds the screen grant", func() {
		u := normalUser(1, nil)
		grants.GrantScreen(1, "employees")

		Expect(gate.Authorize(ctx, u, "/api/v1/employees/42")).To(Succeed())
	})

	It("denies a gated path without a grant", func() {
		u := normalUser(1, nil)

		err := gate.Authorize(ctx, u, "/api/v1/employees")
		Expect(err).To(Equal(internal.ErrScreenAccessDenied))
	})

	It("allows paths no route matches", func() {
		u := normalUser(1, nil)

		Expect(gate.Authorize(ctx, u, "/api/v1/companies")).To(Succeed())
	})

	It("uses the first matching prefix", func() {
		shadowed := []accesscontrol.ScreenRoute{
			{PathPrefix: "/api/v1/employees/special", ScreenCode: "special"},
			{PathPrefix: "/api/v1/employees", ScreenCode: "employees"},
		}
		gate = accesscontrol.NewGate(shadowed, grants)

		u := normalUser(1, nil)
		grants.GrantScreen(1, "special")

		Expect(gate.Authorize(ctx, u, "/api/v1/employees/special/1")).To(Succeed())
		Expect(gate.Authorize(ctx, u, "/api/v1/employees/1")).To(Equal(internal.ErrScreenAccessDenied))
	})

	It("bypasses the gate for admins", func() {
		u := adminUser(9)

		Expect(gate.Authorize(ctx, u, "/api/v1/employees")).To(Succeed())
	})
})
