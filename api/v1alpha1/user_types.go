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

// Package v1alpha1 holds the response bodies of the HTTP API.
package v1alpha1

import "time"

// Error codes returned in ErrorResponse.Code
const (
	ErrorCodeNotFound      = "user_not_found"
	ErrorCodeUnavailable   = "directory_unavailable"
	ErrorCodeIndeterminate = "account_state_indeterminate"
	ErrorCodeNoSweepResult = "no_sweep_result"
)

type ServiceStatus struct {
	Service string `json:"service"`
	Status  string `json:"status"`
	Version string `json:"version"`
}

// UserProfile is the directory profile of a user, "No Data" where unknown.
type UserProfile struct {
	Username     string `json:"username"`
	EmailAddress string `json:"email_address"`
	UserName     string `json:"user_name"`
	UserFamily   string `json:"user_family"`
	UserFullName string `json:"user_full_name"`
	UserTitle    string `json:"user_title"`
}

type UserEnabled struct {
	Username string `json:"username"`
	Enabled  bool   `json:"enabled"`
}

// AccountStatus reports a single account check.
type AccountStatus struct {
	Username           string    `json:"username"`
	Found              bool      `json:"found"`
	Enabled            bool      `json:"enabled"`
	UserAccountControl int32     `json:"user_account_control"`
	CheckedAt          time.Time `json:"checked_at"`
}

type ErrorResponse struct {
	Username string `json:"username,omitempty"`
	Code     string `json:"code"`
	Message  string `json:"message"`
}
