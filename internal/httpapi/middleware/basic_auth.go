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

package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/redhat-data-and-ai/adlookup/pkg/config"
	"github.com/redhat-data-and-ai/adlookup/pkg/logger"
)

const ClientIdKey = "clientId"

// BasicAuth checks the request credentials against the configured users.
// It lets every request through when auth is disabled.
func BasicAuth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.APIServer.Auth.Enabled {
			c.Next()
			return
		}

		username, password, ok := c.Request.BasicAuth()
		if !ok || username == "" || password == "" {
			c.Header("WWW-Authenticate", `Basic realm="adlookup"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		authorized := false
		for _, u := range cfg.APIServer.Auth.BasicUsers {
			if username == u.Username && subtle.ConstantTimeCompare([]byte(password), []byte(u.Password)) == 1 {
				authorized = true
				break
			}
		}

		if !authorized {
			logger.Logger(c.Request.Context()).WithField(ClientIdKey, username).Warn("rejected basic auth credentials")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ClientIdKey, username)
		c.Request = c.Request.WithContext(logger.AddValueToContextLogger(c.Request.Context(), ClientIdKey, username))
		c.Next()
	}
}
