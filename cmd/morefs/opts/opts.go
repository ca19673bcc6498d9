// Copyright 2025 walteh LLC
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

package opts

import (
	"github.com/walteh/morefs/pkg/config"
	"github.com/walteh/morefs/pkg/metrics"
	"github.com/walteh/morefs/pkg/morefs"
	"github.com/walteh/morefs/pkg/operation"
	"github.com/walteh/morefs/pkg/status"
)

// RootOpts contains shared options used by all commands. It is filled in before any command runs;
// the console logger travels on the command context (log.FromContext).
type RootOpts struct {
	Config  *config.Config
	FS      *morefs.FS
	Runner  *operation.OperationRunner
	Tracker *status.Tracker
	Metrics *metrics.Collector
	Verbose bool
}

// OperationOptions returns the options every operation is built with
func (o *RootOpts) OperationOptions() operation.Options {
	return operation.Options{
		FS:       o.FS,
		Parallel: o.Config.Parallel,
		Cleanup:  o.Config.CleanupOnFailure,
	}
}
