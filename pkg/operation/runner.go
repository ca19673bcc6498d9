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

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations
type OperationRunner struct {
	logger *zerolog.Logger
	async  bool
}

// 🏗️ NewRunner creates a new runner. An async runner returns as soon as ctx is cancelled, even
// while the operation is still unwinding.
func NewRunner(logger *zerolog.Logger, async bool) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		async:  async,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) (Result, error) {
	r.logger.Debug().Str("operation", op.String()).Bool("async", r.async).Msg("running operation")
	if r.async {
		return r.runAsync(ctx, op)
	}
	return r.runSync(ctx, op)
}

// 📋 RunAll executes operations in order and stops at the first failure
func (r *OperationRunner) RunAll(ctx context.Context, ops ...Operation) ([]Result, error) {
	results := make([]Result, 0, len(ops))
	for _, op := range ops {
		res, err := r.Run(ctx, op)
		results = append(results, res)
		if err != nil {
			return results, errors.Errorf("%s: %w", op, err)
		}
	}
	return results, nil
}

// 🔄 runSync runs an operation synchronously
func (r *OperationRunner) runSync(ctx context.Context, op Operation) (Result, error) {
	return op.Execute(ctx)
}

type outcome struct {
	res Result
	err error
}

// ⚡ runAsync runs an operation asynchronously
func (r *OperationRunner) runAsync(ctx context.Context, op Operation) (Result, error) {
	done := make(chan outcome, 1)

	go func() {
		res, err := op.Execute(ctx)
		if err != nil {
			err = errors.Errorf("executing operation: %w", err)
		}
		done <- outcome{res: res, err: err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, errors.Errorf("operation cancelled: %w", ctx.Err())
	case out := <-done:
		return out.res, out.err
	}
}
