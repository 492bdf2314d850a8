package calendar_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/calendar"
	"github.com/frahmantamala/leave-management/internal/leave"
)

// Mock leave service backing the editor under test
type mockLeaveService struct {
	requests    []*leave.LeaveRequest
	nextID      int64
	createError error
	patchError  error
}

func newMockLeaveService(seed ...*leave.LeaveRequest) *mockLeaveService {
	s := &mockLeaveService{nextID: 1}
	for _, req := range seed {
		s.requests = append(s.requests, req.Clone())
		if req.ID >= s.nextID {
			s.nextID = req.ID + 1
		}
	}
	return s
}

func (s *mockLeaveService) Create(ctx context.Context, managerID int64, dto leave.CreateLeaveDTO) (*leave.LeaveRequest, error) {
	if s.createError != nil {
		return nil, s.createError
	}
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	req := &leave.LeaveRequest{
		ID:         s.nextID,
		EmployeeID: dto.EmployeeID,
		ManagerID:  managerID,
		Start:      dto.Start,
		End:        dto.End,
		Status:     dto.Status,
	}
	s.nextID++
	s.requests = append(s.requests, req)
	return req.Clone(), nil
}

func (s *mockLeaveService) Patch(ctx context.Context, id, managerID int64, dto leave.PatchLeaveDTO) (*leave.LeaveRequest, error) {
	if s.patchError != nil {
		return nil, s.patchError
	}
	for _, req := range s.requests {
		if req.ID == id && req.ManagerID == managerID {
			dto.ApplyTo(req)
			return req.Clone(), nil
		}
	}
	return nil, leave.ErrNotFound
}

func (s *mockLeaveService) GetByID(ctx context.Context, id, managerID int64) (*leave.LeaveRequest, error) {
	for _, req := range s.requests {
		if req.ID == id && req.ManagerID == managerID {
			return req.Clone(), nil
		}
	}
	return nil, leave.ErrNotFound
}

func (s *mockLeaveService) ListForManager(ctx context.Context, managerID int64) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, req := range s.requests {
		if req.ManagerID == managerID {
			out = append(out, req.Clone())
		}
	}
	return out, nil
}

var _ = Describe("Editor", func() {
	var (
		leaves *mockLeaveService
		editor *calendar.Editor
		ctx    context.Context
	)

	existing := &leave.LeaveRequest{
		ID:         1,
		EmployeeID: 1,
		ManagerID:  1,
		Start:      leave.NewDate(2025, time.February, 25),
		End:        leave.NewDate(2025, time.February, 28),
		Status:     leave.StatusPending,
	}

	BeforeEach(func() {
		aya, _ := demoManagers()
		leaves = newMockLeaveService(existing)
		editor = calendar.NewEditor(aya, leaves)
		ctx = context.Background()
	})

	Describe("initial state", func() {
		It("should start idle with a fresh buffer defaulting to the first roster employee", func() {
			// When
			state, pending := editor.State()

			// Then
			Expect(state).To(Equal(calendar.StateIdle))
			Expect(pending.ID).To(BeNil())
			Expect(pending.EmployeeID).To(Equal(int64(1)))
			Expect(pending.Status).To(Equal(leave.StatusPending))
		})
	})

	Describe("OpenSlot", func() {
		Context("when the clicked range is empty", func() {
			It("should enter editing with a fresh pending request over the range", func() {
				// Given
				start := leave.NewDate(2025, time.May, 1)
				end := leave.NewDate(2025, time.May, 5)

				// When
				pending, err := editor.OpenSlot(ctx, start, end)

				// Then
				Expect(err).ToNot(HaveOccurred())
				state, _ := editor.State()
				Expect(state).To(Equal(calendar.StateEditing))
				Expect(pending.ID).To(BeNil())
				Expect(pending.Start).To(Equal(start))
				Expect(pending.End).To(Equal(end))
				Expect(pending.Status).To(Equal(leave.StatusPending))
				Expect(pending.EmployeeID).To(Equal(int64(1)))
			})
		})

		Context("when a request for the selected employee starts at the clicked date", func() {
			It("should load that request for editing", func() {
				// Given - existing request for employee 1 starts 2025-02-25
				start := leave.NewDate(2025, time.February, 25)
				end := leave.NewDate(2025, time.February, 26)

				// When
				pending, err := editor.OpenSlot(ctx, start, end)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(pending.ID).ToNot(BeNil())
				Expect(*pending.ID).To(Equal(int64(1)))
				Expect(pending.End).To(Equal(existing.End))
			})
		})
	})

	Describe("OpenEvent", func() {
		It("should load the clicked request into the buffer", func() {
			// When
			pending, err := editor.OpenEvent(ctx, 1)

			// Then
			Expect(err).ToNot(HaveOccurred())
			state, _ := editor.State()
			Expect(state).To(Equal(calendar.StateEditing))
			Expect(*pending.ID).To(Equal(int64(1)))
			Expect(pending.EmployeeID).To(Equal(int64(1)))
			Expect(pending.Start).To(Equal(existing.Start))
			Expect(pending.Status).To(Equal(leave.StatusPending))
		})

		It("should return not found for an unknown ID and stay idle", func() {
			// When
			_, err := editor.OpenEvent(ctx, 999)

			// Then
			Expect(err).To(MatchError(leave.ErrNotFound))
			state, _ := editor.State()
			Expect(state).To(Equal(calendar.StateIdle))
		})
	})

	Describe("Apply", func() {
		Context("while editing", func() {
			BeforeEach(func() {
				_, err := editor.OpenSlot(ctx, leave.NewDate(2025, time.May, 1), leave.NewDate(2025, time.May, 5))
				Expect(err).ToNot(HaveOccurred())
			})

			It("should replace only the present fields", func() {
				// Given
				employee := int64(2)
				status := leave.StatusApproved

				// When
				pending, err := editor.Apply(calendar.PendingChangeDTO{
					EmployeeID: &employee,
					Status:     &status,
				})

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(pending.EmployeeID).To(Equal(int64(2)))
				Expect(pending.Status).To(Equal(leave.StatusApproved))
				Expect(pending.Start).To(Equal(leave.NewDate(2025, time.May, 1)))
			})

			It("should reject an unknown status", func() {
				// Given
				bad := leave.Status("maybe")

				// When
				_, err := editor.Apply(calendar.PendingChangeDTO{Status: &bad})

				// Then
				Expect(err).To(HaveOccurred())
			})
		})

		Context("while idle", func() {
			It("should report that no edit is in progress", func() {
				// Given
				employee := int64(2)

				// When
				_, err := editor.Apply(calendar.PendingChangeDTO{EmployeeID: &employee})

				// Then
				Expect(err).To(MatchError(calendar.ErrNoPendingEdit))
			})
		})
	})

	Describe("Save", func() {
		Context("when the buffer has no ID", func() {
			It("should create a new request owned by the editor's manager", func() {
				// Given
				_, err := editor.OpenSlot(ctx, leave.NewDate(2025, time.May, 1), leave.NewDate(2025, time.May, 5))
				Expect(err).ToNot(HaveOccurred())

				// When
				saved, err := editor.Save(ctx)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(saved.ID).To(Equal(int64(2)))
				Expect(saved.ManagerID).To(Equal(int64(1)))
				Expect(leaves.requests).To(HaveLen(2))

				state, pending := editor.State()
				Expect(state).To(Equal(calendar.StateIdle))
				Expect(pending.ID).To(BeNil())
			})
		})

		Context("when the buffer carries an ID", func() {
			It("should patch the existing request", func() {
				// Given
				_, err := editor.OpenEvent(ctx, 1)
				Expect(err).ToNot(HaveOccurred())
				status := leave.StatusApproved
				_, err = editor.Apply(calendar.PendingChangeDTO{Status: &status})
				Expect(err).ToNot(HaveOccurred())

				// When
				saved, err := editor.Save(ctx)

				// Then
				Expect(err).ToNot(HaveOccurred())
				Expect(saved.ID).To(Equal(int64(1)))
				Expect(saved.Status).To(Equal(leave.StatusApproved))
				Expect(leaves.requests).To(HaveLen(1))
			})
		})

		Context("when the save fails", func() {
			It("should keep the buffer so the edit can be retried", func() {
				// Given
				_, err := editor.OpenSlot(ctx, leave.NewDate(2025, time.May, 1), leave.NewDate(2025, time.May, 5))
				Expect(err).ToNot(HaveOccurred())
				leaves.createError = errors.New("store unavailable")

				// When
				_, err = editor.Save(ctx)

				// Then
				Expect(err).To(HaveOccurred())
				state, pending := editor.State()
				Expect(state).To(Equal(calendar.StateEditing))
				Expect(pending.Start).To(Equal(leave.NewDate(2025, time.May, 1)))
			})
		})

		Context("while idle", func() {
			It("should report that no edit is in progress", func() {
				// When
				_, err := editor.Save(ctx)

				// Then
				Expect(err).To(MatchError(calendar.ErrNoPendingEdit))
			})
		})
	})

	Describe("Cancel", func() {
		It("should discard the pending edit entirely", func() {
			// Given
			_, err := editor.OpenEvent(ctx, 1)
			Expect(err).ToNot(HaveOccurred())
			status := leave.StatusRejected
			_, err = editor.Apply(calendar.PendingChangeDTO{Status: &status})
			Expect(err).ToNot(HaveOccurred())

			// When
			editor.Cancel()

			// Then
			state, pending := editor.State()
			Expect(state).To(Equal(calendar.StateIdle))
			Expect(pending.ID).To(BeNil())
			Expect(pending.Status).To(Equal(leave.StatusPending))
			Expect(pending.EmployeeID).To(Equal(int64(1)))

			// And the stored request is untouched
			stored, err := leaves.GetByID(ctx, 1, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Status).To(Equal(leave.StatusPending))
		})
	})
})

var _ = Describe("Registry", func() {
	It("should hand out one editor per manager", func() {
		// Given
		aya, fatima := demoManagers()
		registry := calendar.NewRegistry(newMockLeaveService())

		// When
		first := registry.ForManager(aya)
		second := registry.ForManager(aya)
		other := registry.ForManager(fatima)

		// Then
		Expect(first).To(BeIdenticalTo(second))
		Expect(other).ToNot(BeIdenticalTo(first))
	})
})
