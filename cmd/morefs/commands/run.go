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

package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/morefs/cmd/morefs/opts"
	"github.com/walteh/morefs/pkg/log"
	"github.com/walteh/morefs/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🏃 run executes ops through the shared runner and reports the outcome. Per-entry lines replace
// the spinner in verbose mode.
func run(cmd *cobra.Command, o *opts.RootOpts, ops ...operation.Operation) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	if len(ops) > 1 {
		logger.Header(describe(ops))
	}

	o.Tracker.StartOperation(ctx, 0)

	var spinner *pterm.SpinnerPrinter
	if !o.Verbose {
		spinner, _ = pterm.DefaultSpinner.Start(describe(ops))
	}

	results, err := o.Runner.RunAll(ctx, ops...)
	summary := o.Tracker.FinishOperation(ctx)

	if o.Config.MetricsFile != "" {
		if merr := o.Metrics.WriteTextfile(ctx, o.Config.MetricsFile); merr != nil {
			logger.Warningf("metrics not written: %v", merr)
		}
	}

	var total int64
	cleaned := false
	for i, res := range results {
		total += res.Bytes
		cleaned = cleaned || res.Cleaned
		if o.Verbose && (err == nil || i < len(results)-1) {
			logger.Infof("%s: %s, %s", ops[i], res.Op, humanize.Bytes(uint64(res.Bytes)))
		}
	}

	if err != nil {
		if spinner != nil {
			_ = spinner.Stop()
		}
		logger.Error(fmt.Sprintf("%s failed after %d of %d, %s copied", describe(ops), len(results)-1, len(ops), humanize.Bytes(uint64(total))))
		if cleaned {
			logger.Warning("removed the partial copy")
		}
		return errors.Errorf("running %s: %w", cmd.Name(), err)
	}

	msg := fmt.Sprintf("%s done, %s copied", describe(ops), humanize.Bytes(uint64(total)))
	if summary.Files+summary.Dirs+summary.Others > 0 {
		msg = fmt.Sprintf("%s (%s dirs, %s files)", msg, humanize.Comma(int64(summary.Dirs)), humanize.Comma(int64(summary.Files)))
	}
	if spinner != nil {
		spinner.Success(msg)
		return nil
	}
	logger.Success(msg)
	return nil
}

func describe(ops []operation.Operation) string {
	if len(ops) == 1 {
		return ops[0].String()
	}
	return fmt.Sprintf("%d operations", len(ops))
}
