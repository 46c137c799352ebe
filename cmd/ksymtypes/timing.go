// Copyright 2023 The gVisor Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"time"

	"github.com/sirupsen/logrus"
)

// timePhase runs fn and, when --timing is set, logs its elapsed duration
// under the given phase name at Info level.
func timePhase(phase string, fn func() error) error {
	start := time.Now()
	err := fn()
	logrus.WithFields(logrus.Fields{
		"phase":   phase,
		"elapsed": time.Since(start),
	}).Info("phase complete")
	return err
}
