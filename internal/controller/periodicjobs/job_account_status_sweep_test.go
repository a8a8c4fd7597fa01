package periodicjobs_test

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alicebob/miniredis/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/redhat-data-and-ai/adlookup/internal/controller/periodicjobs"
	"github.com/redhat-data-and-ai/adlookup/pkg/cache"
	"github.com/redhat-data-and-ai/adlookup/pkg/cache/redis"
	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/directory"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

const sweepBaseDN = "DC=example,DC=com"

// scriptedChecker answers CheckAccount from a table the test can change between runs.
type scriptedChecker struct {
	statuses map[string]*structs.AccountStatus
	errs     map[string]error
}

func newScriptedChecker() *scriptedChecker {
	return &scriptedChecker{
		statuses: map[string]*structs.AccountStatus{},
		errs:     map[string]error{},
	}
}

func (s *scriptedChecker) set(user string, enabled bool) {
	uac := ldap.UACNormalAccount
	if !enabled {
		uac |= ldap.UACAccountDisabled
	}
	s.statuses[user] = &structs.AccountStatus{
		Username:           user,
		Found:              true,
		Enabled:            enabled,
		UserAccountControl: uac,
		CheckedAt:          time.Now(),
	}
	delete(s.errs, user)
}

// unreadable marks user as found with a userAccountControl that cannot be interpreted.
func (s *scriptedChecker) unreadable(user string, err error) {
	s.statuses[user] = &structs.AccountStatus{Username: user, Found: true, CheckedAt: time.Now()}
	s.errs[user] = err
}

func (s *scriptedChecker) fail(user string, err error) {
	s.errs[user] = err
}

func (s *scriptedChecker) CheckAccount(_ context.Context, user string) (*structs.AccountStatus, error) {
	if err, ok := s.errs[user]; ok {
		return s.statuses[user], err
	}
	if status, ok := s.statuses[user]; ok {
		copied := *status
		return &copied, nil
	}
	return nil, directory.ErrUserNotFound
}

var _ = Describe("AccountStatusSweepJob", func() {
	var (
		ctx   context.Context
		store *cache.StatusStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		c, err := cache.New(&cache.Config{Driver: cache.DriverMemory})
		Expect(err).NotTo(HaveOccurred())
		store = cache.NewStatusStore(c, cache.NoExpiration)
	})

	It("should default the interval and expose its name", func() {
		job := periodicjobs.NewAccountStatusSweepJob(newScriptedChecker(), store, nil, 0)
		Expect(job.GetInterval()).To(Equal(periodicjobs.DefaultSweepInterval))
		Expect(job.GetName()).To(Equal(periodicjobs.AccountStatusSweepJobName))

		mgr := periodicjobs.NewPeriodicTaskManager()
		job.AddToPeriodicTaskManager(mgr)
		Expect(mgr.Tasks).To(HaveLen(1))
	})

	Context("with the fake directory", func() {
		var job *periodicjobs.AccountStatusSweepJob

		BeforeEach(func() {
			fake, err := ldap.LoadFakeDirectory("../../../pkg/clients/ldap/testdata/fake-ldap-data.json")
			Expect(err).NotTo(HaveOccurred())
			accounts := directory.NewAccountService(fake, sweepBaseDN)
			job = periodicjobs.NewAccountStatusSweepJob(accounts, store,
				[]string{"jdoe", "asmith", "bjones", "ghost"}, time.Minute)
		})

		It("should store the status of every watched user", func() {
			Expect(job.Run(ctx)).To(Succeed())

			jdoe, err := store.Load(ctx, "jdoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(jdoe.Found).To(BeTrue())
			Expect(jdoe.Enabled).To(BeTrue())
			Expect(jdoe.UserAccountControl).To(Equal(int32(512)))

			asmith, err := store.Load(ctx, "asmith")
			Expect(err).NotTo(HaveOccurred())
			Expect(asmith.Found).To(BeTrue())
			Expect(asmith.Enabled).To(BeFalse())

			// found, but without userAccountControl
			bjones, err := store.Load(ctx, "bjones")
			Expect(err).NotTo(HaveOccurred())
			Expect(bjones.Found).To(BeTrue())
			Expect(bjones.Enabled).To(BeFalse())

			ghost, err := store.Load(ctx, "ghost")
			Expect(err).NotTo(HaveOccurred())
			Expect(ghost.Found).To(BeFalse())
			Expect(ghost.Enabled).To(BeFalse())
		})

		It("should stop when the context is canceled", func() {
			canceled, cancel := context.WithCancel(ctx)
			cancel()

			Expect(job.Run(canceled)).To(MatchError(context.Canceled))

			_, err := store.Load(ctx, "jdoe")
			Expect(err).To(HaveOccurred())
		})
	})

	Context("across runs", func() {
		var (
			checker *scriptedChecker
			job     *periodicjobs.AccountStatusSweepJob
		)

		BeforeEach(func() {
			checker = newScriptedChecker()
			checker.set("jdoe", true)
			checker.set("asmith", true)
			job = periodicjobs.NewAccountStatusSweepJob(checker, store, []string{"jdoe", "asmith"}, time.Minute)
			Expect(job.Run(ctx)).To(Succeed())
		})

		It("should report an account being disabled", func() {
			before := testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))

			checker.set("jdoe", false)
			Expect(job.Run(ctx)).To(Succeed())

			status, err := store.Load(ctx, "jdoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Enabled).To(BeFalse())
			Expect(testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))).To(Equal(before + 1))
		})

		It("should report an account disappearing", func() {
			before := testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("not_found"))

			delete(checker.statuses, "asmith")
			Expect(job.Run(ctx)).To(Succeed())

			status, err := store.Load(ctx, "asmith")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Found).To(BeFalse())
			Expect(testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("not_found"))).To(Equal(before + 1))
		})

		It("should not report an unreadable account state as disabled", func() {
			disabledBefore := testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))
			indeterminateBefore := testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("indeterminate"))

			checker.unreadable("jdoe", directory.ErrAttributeMissing)
			checker.unreadable("asmith", directory.ErrInvalidAccountControl)
			Expect(job.Run(ctx)).To(Succeed())

			status, err := store.Load(ctx, "jdoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(status.Found).To(BeTrue())
			Expect(status.Enabled).To(BeFalse())

			Expect(testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))).To(Equal(disabledBefore))
			Expect(testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("indeterminate"))).To(Equal(indeterminateBefore + 2))
		})

		It("should not report a transition when nothing changed", func() {
			before := testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))

			Expect(job.Run(ctx)).To(Succeed())

			Expect(testutil.ToFloat64(metrics.SweepTransitions.WithLabelValues("disabled"))).To(Equal(before))
		})

		It("should keep the last known status when the directory is unavailable", func() {
			checker.fail("jdoe", errors.Join(directory.ErrDirectoryUnavailable, errors.New("connection refused")))
			checker.set("asmith", false)

			err := job.Run(ctx)
			Expect(err).To(MatchError(directory.ErrDirectoryUnavailable))
			Expect(err.Error()).To(ContainSubstring("1 errors"))

			jdoe, err := store.Load(ctx, "jdoe")
			Expect(err).NotTo(HaveOccurred())
			Expect(jdoe.Enabled).To(BeTrue())

			asmith, err := store.Load(ctx, "asmith")
			Expect(err).NotTo(HaveOccurred())
			Expect(asmith.Enabled).To(BeFalse())
		})

		It("should remove statuses of users no longer watched", func() {
			job = periodicjobs.NewAccountStatusSweepJob(checker, store, []string{"jdoe"}, time.Minute)
			Expect(job.Run(ctx)).To(Succeed())

			statuses, err := store.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(statuses).To(HaveLen(1))
			Expect(statuses).To(HaveKey("jdoe"))
		})
	})

	Context("with a redis cache", func() {
		var mr *miniredis.Miniredis

		BeforeEach(func() {
			var err error
			mr, err = miniredis.Run()
			Expect(err).NotTo(HaveOccurred())

			addr := strings.Split(mr.Addr(), ":")
			c, err := cache.New(&cache.Config{
				Driver: cache.DriverRedis,
				Redis:  &redis.Config{Host: addr[0], Port: addr[1]},
			})
			Expect(err).NotTo(HaveOccurred())
			store = cache.NewStatusStore(c, time.Hour)
		})

		AfterEach(func() {
			mr.Close()
		})

		It("should store statuses with the configured ttl", func() {
			checker := newScriptedChecker()
			checker.set("jdoe", true)
			job := periodicjobs.NewAccountStatusSweepJob(checker, store, []string{"jdoe"}, time.Minute)

			Expect(job.Run(ctx)).To(Succeed())

			Expect(mr.Exists("account_status:jdoe")).To(BeTrue())
			Expect(mr.TTL("account_status:jdoe")).To(Equal(time.Hour))

			mr.FastForward(2 * time.Hour)
			_, err := store.Load(ctx, "jdoe")
			Expect(err).To(HaveOccurred())
		})
	})
})
