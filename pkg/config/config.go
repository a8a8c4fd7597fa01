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

package config

import (
	"os"
	"time"

	"github.com/redhat-data-and-ai/adlookup/pkg/cache"
	"github.com/redhat-data-and-ai/adlookup/pkg/clients/ldap"
)

// AppConfig represents the top-level configuration structure
type AppConfig struct {
	App       App          `yaml:"app"`
	LDAP      ldap.Config  `yaml:"ldap"`
	Cache     cache.Config `yaml:"cache"`
	APIServer APIServer    `yaml:"apiServer"`
	Sweep     Sweep        `yaml:"sweep"`
}

// App represents the application configuration
type App struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Environment string `yaml:"environment"`
	Debug       bool   `yaml:"debug"`
}

// APIServer configures the HTTP API
type APIServer struct {
	Address string `yaml:"address"`
	Auth    Auth   `yaml:"auth"`
}

// Auth configures basic auth on the user endpoints
type Auth struct {
	Enabled    bool        `yaml:"enabled"`
	BasicUsers []BasicUser `yaml:"basicUsers"`
}

type BasicUser struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Sweep configures the periodic account status sweep
type Sweep struct {
	Enabled   bool          `yaml:"enabled"`
	Interval  time.Duration `yaml:"interval"`
	StatusTTL time.Duration `yaml:"statusTTL"`
	Users     []string      `yaml:"users"`
}

// LoadConfig reads the default and env specific files from the default config directory
func LoadConfig(env string) (*AppConfig, error) {
	return LoadConfigFrom(NewDefaultOptions(), env)
}

// LoadConfigFrom reads the default and env specific files described by opts
func LoadConfigFrom(opts Options, env string) (*AppConfig, error) {
	config := &AppConfig{}
	if err := NewConfig(opts).Load(env, config); err != nil {
		return nil, err
	}
	return config, nil
}

// GetEnv returns APP_ENV, or "default" when unset
func GetEnv() string {
	env := os.Getenv("APP_ENV")
	if len(env) == 0 {
		return "default"
	}
	return env
}
