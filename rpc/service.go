// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package rpc

import (
	"reflect"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// Service struct to hold rpc service data
type Service struct {
	mutex      sync.RWMutex
	rpcMethods []string
}

// NewService creates a new Service
func NewService() *Service {
	return &Service{
		rpcMethods: []string{},
	}
}

// Methods returns the sorted names of the registered rpc methods
func (s *Service) Methods() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	methods := slices.Clone(s.rpcMethods)
	slices.Sort(methods)
	return methods
}

// BuildMethodNames takes a receiver interface and populates the rpc method
// names from its exported methods, such as overrides_listMethods
func (s *Service) BuildMethodNames(rcvr interface{}, sname string) {
	rcvrType := reflect.TypeOf(rcvr)

	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i := 0; i < rcvrType.NumMethod(); i++ {
		method := rcvrType.Method(i)
		name := strings.ToLower(method.Name[:1]) + method.Name[1:]
		s.rpcMethods = append(s.rpcMethods, sname+"_"+name)
	}
}
