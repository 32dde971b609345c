// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"github.com/ChainSafe/chain-overrides/internal/log"
	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	validate := validator.New()
	err := validate.RegisterValidation("loglevel", isLogLevel)
	if err != nil {
		panic(err)
	}
	return validate
}

func isLogLevel(fl validator.FieldLevel) bool {
	_, err := log.ParseLevel(fl.Field().String())
	return err == nil
}

// Levels returns the parsed global level and the per package levels,
// packages without a level of their own inheriting the global one
func (c LogConfig) Levels() (global log.Level, packages map[string]log.Level, err error) {
	global, err = log.ParseLevel(c.Level)
	if err != nil {
		return 0, nil, err
	}

	packages = map[string]log.Level{
		"overrides": global,
		"rpc":       global,
		"metrics":   global,
	}
	for pkg, s := range map[string]string{
		"overrides": c.Overrides,
		"rpc":       c.RPC,
		"metrics":   c.Metrics,
	} {
		if s == "" {
			continue
		}
		level, err := log.ParseLevel(s)
		if err != nil {
			return 0, nil, err
		}
		packages[pkg] = level
	}
	return global, packages, nil
}
