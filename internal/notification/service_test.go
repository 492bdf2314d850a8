package notification_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/leave-management/internal/core/events"
	"github.com/frahmantamala/leave-management/internal/notification"
)

func TestNotification(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Notification Suite")
}

var _ = Describe("NotificationService", func() {
	var (
		service *notification.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = notification.NewService(logger)
		ctx = context.Background()
	})

	Describe("Record", func() {
		It("should keep notifications per manager, oldest first", func() {
			// When
			service.Record(1, "first")
			service.Record(2, "other manager")
			service.Record(1, "second")

			// Then
			mine := service.ForManager(1)
			Expect(mine).To(HaveLen(2))
			Expect(mine[0].Message).To(Equal("first"))
			Expect(mine[1].Message).To(Equal("second"))
			Expect(service.ForManager(2)).To(HaveLen(1))
		})

		It("should return an empty list for a manager with no notifications", func() {
			Expect(service.ForManager(99)).To(BeEmpty())
		})
	})

	Describe("HandleLeaveCreated", func() {
		It("should record a notification for the owning manager", func() {
			// Given
			event := events.NewLeaveCreatedEvent(7, 1, 2, "pending")

			// When
			err := service.HandleLeaveCreated(ctx, event)

			// Then
			Expect(err).ToNot(HaveOccurred())
			mine := service.ForManager(1)
			Expect(mine).To(HaveLen(1))
			Expect(mine[0].Message).To(ContainSubstring("leave request 7"))
		})
	})

	Describe("HandleLeaveStatusChanged", func() {
		It("should record the old and new status", func() {
			// Given
			event := events.NewLeaveStatusChangedEvent(3, 2, "pending", "approved")

			// When
			err := service.HandleLeaveStatusChanged(ctx, event)

			// Then
			Expect(err).ToNot(HaveOccurred())
			mine := service.ForManager(2)
			Expect(mine).To(HaveLen(1))
			Expect(mine[0].Message).To(ContainSubstring("pending"))
			Expect(mine[0].Message).To(ContainSubstring("approved"))
		})
	})

	Describe("event bus wiring", func() {
		It("should receive events published through the bus", func() {
			// Given
			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
			bus := events.NewEventBus(logger)
			bus.Subscribe(events.EventTypeLeaveCreated, service.HandleLeaveCreated)

			// When
			err := bus.PublishSync(ctx, events.NewLeaveCreatedEvent(1, 1, 1, "pending"))

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(service.ForManager(1)).To(HaveLen(1))
		})
	})
})
