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

	"github.com/walteh/morefs/pkg/morefs"
	"gitlab.com/tozd/go/errors"
)

// 🚚 NewMoveOperation creates a new move operation. Cleanup does not apply to moves: a failure after
// the copy means the source may already be partly gone and the destination is the only full copy.
func NewMoveOperation(opts Options, from, to string) Operation {
	return &moveOperation{
		BaseOperation: NewBaseOperation(opts),
		from:          from,
		to:            to,
	}
}

type moveOperation struct {
	BaseOperation
	from string
	to   string
}

func (op *moveOperation) String() string {
	return fmt.Sprintf("move %s -> %s", op.from, op.to)
}

// 🏃 Execute moves a file or a whole tree
func (op *moveOperation) Execute(ctx context.Context) (Result, error) {
	info, err := op.stat(op.from)
	if err != nil {
		return Result{Op: morefs.OpMove}, errors.Errorf("reading source %s: %w", op.from, err)
	}

	target := op.intoDir(op.from, op.to)

	if !info.IsDir() {
		n, err := op.FS.MoveFile(ctx, op.from, target)
		if err != nil {
			return Result{Op: morefs.OpMove}, errors.Errorf("moving file: %w", err)
		}
		return Result{Op: morefs.OpMove, Bytes: n}, nil
	}

	moveTree := op.FS.MoveTree
	if op.Parallel {
		moveTree = op.FS.MoveTreeParallel
	}
	n, err := moveTree(ctx, op.from, target)
	if err != nil {
		return Result{Op: morefs.OpMoveTreeAll}, errors.Errorf("moving tree: %w", err)
	}
	return Result{Op: morefs.OpMoveTreeAll, Bytes: n}, nil
}

// 🗑️ NewRemoveOperation creates a new remove operation
func NewRemoveOperation(opts Options, path string, recursive bool) Operation {
	return &removeOperation{
		BaseOperation: NewBaseOperation(opts),
		path:          path,
		recursive:     recursive,
	}
}

type removeOperation struct {
	BaseOperation
	path      string
	recursive bool
}

func (op *removeOperation) String() string {
	return fmt.Sprintf("remove %s", op.path)
}

// 🏃 Execute removes a file, or a whole tree when recursive is set
func (op *removeOperation) Execute(ctx context.Context) (Result, error) {
	if op.recursive {
		if err := op.FS.RemoveTree(ctx, op.path); err != nil {
			return Result{Op: morefs.OpRemoveTreeAll}, errors.Errorf("removing tree: %w", err)
		}
		return Result{Op: morefs.OpRemoveTreeAll}, nil
	}

	if info, err := op.stat(op.path); err == nil && info.IsDir() {
		return Result{Op: morefs.OpRemove}, errors.Errorf("cannot remove %s: %w", op.path, ErrIsDirectory)
	}
	if err := op.FS.RemoveFile(ctx, op.path); err != nil {
		return Result{Op: morefs.OpRemove}, errors.Errorf("removing file: %w", err)
	}
	return Result{Op: morefs.OpRemove}, nil
}

// 📁 NewMkdirOperation creates a new mkdir operation
func NewMkdirOperation(opts Options, path string, parents bool) Operation {
	return &mkdirOperation{
		BaseOperation: NewBaseOperation(opts),
		path:          path,
		parents:       parents,
	}
}

type mkdirOperation struct {
	BaseOperation
	path    string
	parents bool
}

func (op *mkdirOperation) String() string {
	return fmt.Sprintf("mkdir %s", op.path)
}

// 🏃 Execute creates one directory, or the whole chain when parents is set
func (op *mkdirOperation) Execute(ctx context.Context) (Result, error) {
	if op.parents {
		if err := op.FS.CreateDirAll(ctx, op.path); err != nil {
			return Result{Op: morefs.OpCreateDirPathAll}, errors.Errorf("creating directories: %w", err)
		}
		return Result{Op: morefs.OpCreateDirPathAll}, nil
	}
	if err := op.FS.CreateDir(ctx, op.path); err != nil {
		return Result{Op: morefs.OpCreateDir}, errors.Errorf("creating directory: %w", err)
	}
	return Result{Op: morefs.OpCreateDir}, nil
}
