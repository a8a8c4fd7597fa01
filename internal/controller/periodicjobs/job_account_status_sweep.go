/*
Copyright 2025.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package periodicjobs provides scheduled background jobs.
//
// This file implements the account status sweep, which periodically checks the
// watched accounts in the directory and keeps their last known state in the cache.
package periodicjobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/redhat-data-and-ai/adlookup/pkg/cache"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/directory"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
	"github.com/redhat-data-and-ai/adlookup/pkg/metrics"
)

const (
	// AccountStatusSweepJobName is the unique identifier for the sweep job.
	AccountStatusSweepJobName = "account_status_sweep"

	// DefaultSweepInterval is used when no interval is configured.
	DefaultSweepInterval = 15 * time.Minute

	transitionDisabled      = "disabled"
	transitionEnabled       = "enabled"
	transitionNotFound      = "not_found"
	transitionIndeterminate = "indeterminate"
)

// AccountChecker is the part of directory.AccountService the sweep needs.
type AccountChecker interface {
	CheckAccount(ctx context.Context, userName string) (*structs.AccountStatus, error)
}

// AccountStatusSweepJob checks every watched account and stores the result.
//
// On each run it:
//  1. Checks each watched user with CheckAccount
//  2. Compares the result with the stored status and reports transitions
//  3. Saves the new status, unless the directory was unavailable
//  4. Removes stored statuses of users that are no longer watched
type AccountStatusSweepJob struct {
	accounts AccountChecker
	store    *cache.StatusStore
	users    []string
	interval time.Duration
}

// NewAccountStatusSweepJob returns a sweep over users running every interval.
func NewAccountStatusSweepJob(
	accounts AccountChecker,
	store *cache.StatusStore,
	users []string,
	interval time.Duration,
) *AccountStatusSweepJob {
	if interval == 0 {
		interval = DefaultSweepInterval
	}
	return &AccountStatusSweepJob{
		accounts: accounts,
		store:    store,
		users:    users,
		interval: interval,
	}
}

// AddToPeriodicTaskManager registers this job with the provided periodic task manager.
func (j *AccountStatusSweepJob) AddToPeriodicTaskManager(mgr *PeriodicTaskManager) {
	mgr.AddTask(j)
}

func (j *AccountStatusSweepJob) GetInterval() time.Duration {
	return j.interval
}

func (j *AccountStatusSweepJob) GetName() string {
	return AccountStatusSweepJobName
}

// Run checks every watched user once. Users that could not be checked are
// reported in the returned error; the others are still stored.
func (j *AccountStatusSweepJob) Run(ctx context.Context) error {
	log := logger.Logger(ctx)
	log.WithField("users", len(j.users)).Info("starting account status sweep")

	var errs []error
	watched := make(map[string]struct{}, len(j.users))
	for _, user := range j.users {
		if err := ctx.Err(); err != nil {
			return err
		}
		watched[strings.ToLower(user)] = struct{}{}
		if err := j.sweepUser(ctx, user); err != nil {
			errs = append(errs, err)
		}
	}

	if err := j.removeUnwatched(ctx, watched); err != nil {
		errs = append(errs, err)
	}

	log.WithFields(logrus.Fields{
		"users":  len(j.users),
		"errors": len(errs),
	}).Info("account status sweep completed")

	if len(errs) > 0 {
		return fmt.Errorf("account status sweep completed with %d errors: %w", len(errs), errors.Join(errs...))
	}
	return nil
}

func (j *AccountStatusSweepJob) sweepUser(ctx context.Context, user string) error {
	ctx = logger.AddValueToContextLogger(ctx, "userName", user)
	log := logger.Logger(ctx)

	status, err := j.accounts.CheckAccount(ctx, user)
	indeterminate := false
	switch {
	case errors.Is(err, directory.ErrDirectoryUnavailable):
		// keep the last known status
		return fmt.Errorf("failed to check account %s: %w", user, err)
	case errors.Is(err, directory.ErrUserNotFound):
		status = &structs.AccountStatus{Username: user, CheckedAt: time.Now()}
	case err != nil && status == nil:
		return fmt.Errorf("failed to check account %s: %w", user, err)
	case err != nil:
		log.WithError(err).Warn("account state could not be determined")
		indeterminate = true
	}

	previous, loadErr := j.store.Load(ctx, user)
	if loadErr != nil {
		previous = nil
	}
	j.reportTransition(ctx, previous, status, indeterminate)

	if err := j.store.Save(ctx, status); err != nil {
		log.WithError(err).Error("failed to store account status")
		return fmt.Errorf("failed to store account status of %s: %w", user, err)
	}
	return nil
}

func (j *AccountStatusSweepJob) reportTransition(
	ctx context.Context, previous, current *structs.AccountStatus, indeterminate bool,
) {
	if previous == nil || !previous.Found {
		return
	}
	log := logger.Logger(ctx)

	switch {
	case indeterminate:
		if previous.Enabled {
			log.Warn("account state can no longer be determined")
			metrics.SweepTransitions.WithLabelValues(transitionIndeterminate).Inc()
		}
	case !current.Found:
		log.Warn("account no longer found in directory")
		metrics.SweepTransitions.WithLabelValues(transitionNotFound).Inc()
	case previous.Enabled && !current.Enabled:
		log.WithField("userAccountControl", current.UserAccountControl).Warn("account has been disabled")
		metrics.SweepTransitions.WithLabelValues(transitionDisabled).Inc()
	case !previous.Enabled && current.Enabled:
		log.Info("account has been re-enabled")
		metrics.SweepTransitions.WithLabelValues(transitionEnabled).Inc()
	}
}

func (j *AccountStatusSweepJob) removeUnwatched(ctx context.Context, watched map[string]struct{}) error {
	stored, err := j.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list stored account statuses: %w", err)
	}

	for user := range stored {
		if _, ok := watched[user]; ok {
			continue
		}
		if err := j.store.Remove(ctx, user); err != nil {
			return fmt.Errorf("failed to remove account status of %s: %w", user, err)
		}
		logger.Logger(ctx).WithField("userName", user).Info("removed status of unwatched account")
	}
	return nil
}
