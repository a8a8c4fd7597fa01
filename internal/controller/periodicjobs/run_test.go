package periodicjobs_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/redhat-data-and-ai/adlookup/internal/controller/periodicjobs"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

type MockPeriodicTask struct {
	name     string
	interval time.Duration
	err      error
	runCount atomic.Int32
}

func (m *MockPeriodicTask) GetName() string {
	return m.name
}

func (m *MockPeriodicTask) GetInterval() time.Duration {
	return m.interval
}

func (m *MockPeriodicTask) Run(_ context.Context) error {
	m.runCount.Add(1)
	return m.err
}

var _ = Describe("PeriodicTaskManager", func() {
	var (
		manager *periodicjobs.PeriodicTaskManager
		task1   *MockPeriodicTask
		task2   *MockPeriodicTask
		ctx     context.Context
		cancel  context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(logger.WithRequestId(context.Background(), "periodic-test"))
		task1 = &MockPeriodicTask{name: "task1", interval: 100 * time.Millisecond}
		task2 = &MockPeriodicTask{name: "task2", interval: 200 * time.Millisecond, err: errors.New("boom")}
		manager = periodicjobs.NewPeriodicTaskManager()
		manager.AddTask(task1)
		manager.AddTask(task2)
	})

	AfterEach(func() {
		cancel()
	})

	It("should run all tasks at their specified intervals", func() {
		manager.RunAll(ctx)

		Eventually(task1.runCount.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 3))
		Eventually(task2.runCount.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 2))
	})

	It("should run every task immediately", func() {
		manager.RunAll(ctx)

		Eventually(task1.runCount.Load).WithTimeout(50 * time.Millisecond).Should(BeNumerically(">=", 1))
		Eventually(task2.runCount.Load).WithTimeout(50 * time.Millisecond).Should(BeNumerically(">=", 1))
	})

	It("should stop running tasks when context is canceled", func() {
		wg := manager.RunAll(ctx)

		time.Sleep(300 * time.Millisecond)
		cancel()
		wg.Wait()

		count1, count2 := task1.runCount.Load(), task2.runCount.Load()
		Expect(count1).To(BeNumerically(">", 0))

		// Wait a bit to ensure no more runs occur
		time.Sleep(300 * time.Millisecond)

		Expect(task1.runCount.Load()).To(Equal(count1), "Task should not run after context is canceled")
		Expect(task2.runCount.Load()).To(Equal(count2), "Task should not run after context is canceled")
	})

	It("should run a zero interval task only once", func() {
		once := &MockPeriodicTask{name: "once"}
		manager = periodicjobs.NewPeriodicTaskManager()
		manager.AddTask(once)

		manager.RunAll(ctx).Wait()

		Expect(once.runCount.Load()).To(Equal(int32(1)))
	})
})
