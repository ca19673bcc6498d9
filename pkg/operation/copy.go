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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

// 📦 NewCopyOperation creates a new copy operation
func NewCopyOperation(opts Options, from, to string, recursive, parents bool) Operation {
	return &copyOperation{
		BaseOperation: NewBaseOperation(opts),
		from:          from,
		to:            to,
		recursive:     recursive,
		parents:       parents,
	}
}

// 📦 copyOperation copies a file, or a tree when recursive is set
type copyOperation struct {
	BaseOperation
	from      string
	to        string
	recursive bool
	parents   bool
}

func (op *copyOperation) String() string {
	return fmt.Sprintf("copy %s -> %s", op.from, op.to)
}

// 🏃 Execute runs the copy operation
func (op *copyOperation) Execute(ctx context.Context) (Result, error) {
	info, err := op.stat(op.from)
	if err != nil {
		return Result{Op: morefs.OpCopy}, errors.Errorf("reading source %s: %w", op.from, err)
	}

	target := op.intoDir(op.from, op.to)

	if !info.IsDir() {
		copyFile := op.FS.Copy
		if op.parents {
			copyFile = op.FS.CopyCreateParents
		}
		n, err := copyFile(ctx, op.from, target)
		if err != nil {
			return Result{Op: morefs.OpCopy}, errors.Errorf("copying file: %w", err)
		}
		return Result{Op: morefs.OpCopy, Bytes: n}, nil
	}

	if !op.recursive {
		return Result{Op: morefs.OpCopyTreeAll}, errors.Errorf("omitting directory %s: %w", op.from, ErrIsDirectory)
	}

	existed := op.exists(target)

	copyTree := op.FS.CopyTree
	if op.Parallel {
		copyTree = op.FS.CopyTreeParallel
	}

	n, err := copyTree(ctx, op.from, target)
	if err == nil {
		return Result{Op: morefs.OpCopyTreeAll, Bytes: n}, nil
	}

	res := Result{Op: morefs.OpCopyTreeAll}
	if op.Cleanup && !existed {
		zerolog.Ctx(ctx).Debug().Str("target", target).Msg("removing partial copy")
		err = morefs.Recover(err, func() error {
			return op.FS.RemoveTree(ctx, target)
		})
		var recErr *morefs.RecoverError
		res.Cleaned = !errors.As(err, &recErr)
	}
	return res, errors.Errorf("copying tree: %w", err)
}
