package calendar_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/calendar"
	"github.com/frahmantamala/leave-management/internal/leave"
	"github.com/frahmantamala/leave-management/internal/manager"
)

func TestCalendar(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Calendar Suite")
}

func demoManagers() (*manager.Manager, *manager.Manager) {
	aya := &manager.Manager{
		ID:       1,
		Username: "Aya",
		Employees: []manager.Employee{
			{ID: 1, Name: "Omar Kamali"},
			{ID: 2, Name: "Youssef Ennaciri"},
			{ID: 4, Name: "Ziyad Gout"},
		},
	}
	fatima := &manager.Manager{
		ID:       2,
		Username: "Fatima Zahra",
		Employees: []manager.Employee{
			{ID: 3, Name: "Fatima Alaoui"},
			{ID: 5, Name: "Farah BABA"},
		},
	}
	return aya, fatima
}

func demoRequests() []*leave.LeaveRequest {
	return []*leave.LeaveRequest{
		{ID: 1, EmployeeID: 1, ManagerID: 1, Start: leave.NewDate(2025, time.February, 25), End: leave.NewDate(2025, time.February, 28), Status: leave.StatusPending},
		{ID: 2, EmployeeID: 2, ManagerID: 1, Start: leave.NewDate(2025, time.March, 2), End: leave.NewDate(2025, time.March, 10), Status: leave.StatusApproved},
		{ID: 3, EmployeeID: 3, ManagerID: 2, Start: leave.NewDate(2025, time.March, 12), End: leave.NewDate(2025, time.March, 20), Status: leave.StatusRejected},
		{ID: 4, EmployeeID: 4, ManagerID: 1, Start: leave.NewDate(2025, time.April, 5), End: leave.NewDate(2025, time.April, 20), Status: leave.StatusPending},
		{ID: 5, EmployeeID: 5, ManagerID: 2, Start: leave.NewDate(2025, time.April, 10), End: leave.NewDate(2025, time.April, 25), Status: leave.StatusPending},
	}
}

var _ = Describe("VisibleEvents", func() {
	var (
		aya      *manager.Manager
		fatima   *manager.Manager
		requests []*leave.LeaveRequest
	)

	BeforeEach(func() {
		aya, fatima = demoManagers()
		requests = demoRequests()
	})

	Context("for the first manager", func() {
		It("should show exactly the owned requests with employee names", func() {
			// When
			events := calendar.VisibleEvents(aya, requests)

			// Then
			Expect(events).To(HaveLen(3))
			Expect(events[0].ID).To(Equal(int64(1)))
			Expect(events[0].Name).To(Equal("Omar Kamali"))
			Expect(events[1].ID).To(Equal(int64(2)))
			Expect(events[1].Name).To(Equal("Youssef Ennaciri"))
			Expect(events[2].ID).To(Equal(int64(4)))
			Expect(events[2].Name).To(Equal("Ziyad Gout"))
		})

		It("should carry the stored statuses through unchanged", func() {
			// When
			events := calendar.VisibleEvents(aya, requests)

			// Then
			Expect(events[0].Status).To(Equal(leave.StatusPending))
			Expect(events[1].Status).To(Equal(leave.StatusApproved))
			Expect(events[2].Status).To(Equal(leave.StatusPending))
		})
	})

	Context("for the second manager", func() {
		It("should show a disjoint set of events", func() {
			// When
			events := calendar.VisibleEvents(fatima, requests)

			// Then
			Expect(events).To(HaveLen(2))
			Expect(events[0].ID).To(Equal(int64(3)))
			Expect(events[0].Name).To(Equal("Fatima Alaoui"))
			Expect(events[0].Status).To(Equal(leave.StatusRejected))
			Expect(events[1].ID).To(Equal(int64(5)))
			Expect(events[1].Name).To(Equal("Farah BABA"))
		})
	})

	Context("when a request references an employee outside the roster", func() {
		It("should keep the event with the Unknown fallback name", func() {
			// Given
			requests = append(requests, &leave.LeaveRequest{
				ID:         9,
				EmployeeID: 42,
				ManagerID:  1,
				Start:      leave.NewDate(2025, time.June, 1),
				End:        leave.NewDate(2025, time.June, 2),
				Status:     leave.StatusPending,
			})

			// When
			events := calendar.VisibleEvents(aya, requests)

			// Then
			Expect(events).To(HaveLen(4))
			Expect(events[3].Name).To(Equal(calendar.UnknownEmployeeName))
		})
	})

	Context("with no requests", func() {
		It("should return an empty, non-nil slice", func() {
			// When
			events := calendar.VisibleEvents(aya, nil)

			// Then
			Expect(events).ToNot(BeNil())
			Expect(events).To(BeEmpty())
		})
	})
})

var _ = Describe("status presentation", func() {
	It("should map every status to its French label", func() {
		Expect(calendar.StatusLabel(leave.StatusPending)).To(Equal("En attente"))
		Expect(calendar.StatusLabel(leave.StatusApproved)).To(Equal("Approuvé"))
		Expect(calendar.StatusLabel(leave.StatusRejected)).To(Equal("Refusé"))
		Expect(calendar.StatusLabel(leave.StatusPostponed)).To(Equal("Reporté"))
	})

	It("should map every status to its color", func() {
		Expect(calendar.StatusColor(leave.StatusPending)).To(Equal("#ffc107"))
		Expect(calendar.StatusColor(leave.StatusApproved)).To(Equal("#28a745"))
		Expect(calendar.StatusColor(leave.StatusRejected)).To(Equal("#dc3545"))
		Expect(calendar.StatusColor(leave.StatusPostponed)).To(Equal("#b04c33"))
	})

	It("should fall back to the pending color for unknown statuses", func() {
		Expect(calendar.StatusColor(leave.Status("weird"))).To(Equal("#ffc107"))
	})
})
