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

package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redhat-data-and-ai/adlookup/api/v1alpha1"
	"github.com/redhat-data-and-ai/adlookup/pkg/cache"
	"github.com/redhat-data-and-ai/adlookup/pkg/common/structs"
	"github.com/redhat-data-and-ai/adlookup/pkg/config"
	"github.com/redhat-data-and-ai/adlookup/pkg/directory"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

const usernameParam = "username"

type ProfileFetcher interface {
	FetchProfile(ctx context.Context, userName string) *structs.UserProfile
}

type AccountChecker interface {
	CheckAccount(ctx context.Context, userName string) (*structs.AccountStatus, error)
	IsEnabled(ctx context.Context, userName string) bool
}

type Handlers struct {
	config   *config.AppConfig
	profiles ProfileFetcher
	accounts AccountChecker
	statuses *cache.StatusStore
}

// NewHandlers returns the API handlers. statuses may be nil when the sweep is disabled.
func NewHandlers(cfg *config.AppConfig, profiles ProfileFetcher, accounts AccountChecker, statuses *cache.StatusStore) *Handlers {
	return &Handlers{
		config:   cfg,
		profiles: profiles,
		accounts: accounts,
		statuses: statuses,
	}
}

func (h *Handlers) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, v1alpha1.ServiceStatus{
		Service: h.config.App.Name,
		Status:  "running",
		Version: h.config.App.Version,
	})
}

// GetProfile always answers 200; unknown fields carry "No Data".
func (h *Handlers) GetProfile(c *gin.Context) {
	username := c.Param(usernameParam)
	profile := h.profiles.FetchProfile(requestContext(c, username), username)

	c.JSON(http.StatusOK, v1alpha1.UserProfile{
		Username:     username,
		EmailAddress: profile.GetEmailAddress(),
		UserName:     profile.GetUserName(),
		UserFamily:   profile.GetUserFamily(),
		UserFullName: profile.GetUserFullName(),
		UserTitle:    profile.GetUserTitle(),
	})
}

// GetEnabled always answers 200; any failure reads as not enabled.
func (h *Handlers) GetEnabled(c *gin.Context) {
	username := c.Param(usernameParam)

	c.JSON(http.StatusOK, v1alpha1.UserEnabled{
		Username: username,
		Enabled:  h.accounts.IsEnabled(requestContext(c, username), username),
	})
}

func (h *Handlers) GetAccount(c *gin.Context) {
	username := c.Param(usernameParam)
	ctx := requestContext(c, username)

	status, err := h.accounts.CheckAccount(ctx, username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, toAccountStatus(status))
	case errors.Is(err, directory.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, username, v1alpha1.ErrorCodeNotFound, err)
	case errors.Is(err, directory.ErrDirectoryUnavailable):
		abortWithError(c, http.StatusServiceUnavailable, username, v1alpha1.ErrorCodeUnavailable, err)
	case errors.Is(err, directory.ErrAttributeMissing), errors.Is(err, directory.ErrInvalidAccountControl):
		abortWithError(c, http.StatusUnprocessableEntity, username, v1alpha1.ErrorCodeIndeterminate, err)
	default:
		logger.Logger(ctx).WithError(err).Error("unexpected error checking account")
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// GetSweepStatus returns the status stored by the last sweep of username.
func (h *Handlers) GetSweepStatus(c *gin.Context) {
	username := c.Param(usernameParam)
	if h.statuses == nil {
		abortWithError(c, http.StatusNotFound, username, v1alpha1.ErrorCodeNoSweepResult, errors.New("account status sweep is disabled"))
		return
	}

	status, err := h.statuses.Load(requestContext(c, username), username)
	if err != nil {
		abortWithError(c, http.StatusNotFound, username, v1alpha1.ErrorCodeNoSweepResult, errors.New("no sweep result for user"))
		return
	}
	c.JSON(http.StatusOK, toAccountStatus(status))
}

func requestContext(c *gin.Context, username string) context.Context {
	return logger.AddValueToContextLogger(c.Request.Context(), usernameParam, username)
}

func toAccountStatus(status *structs.AccountStatus) v1alpha1.AccountStatus {
	return v1alpha1.AccountStatus{
		Username:           status.Username,
		Found:              status.Found,
		Enabled:            status.Enabled,
		UserAccountControl: status.UserAccountControl,
		CheckedAt:          status.CheckedAt,
	}
}

func abortWithError(c *gin.Context, code int, username, errCode string, err error) {
	c.AbortWithStatusJSON(code, v1alpha1.ErrorResponse{
		Username: username,
		Code:     errCode,
		Message:  err.Error(),
	})
}
