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

package morefs

import (
	"context"

	"github.com/rs/zerolog"
)

// Moves are a copy followed by removing the source. If the copy fails the source is untouched. If the
// removal fails its error is returned and the destination copy is already complete, so the data then
// exists in both places. Exclude patterns are ignored here: the whole source is deleted afterwards.

// 🚚 MoveFile copies from to to, creating missing parents of to, and then removes from.
func (f *FS) MoveFile(ctx context.Context, from, to string) (int64, error) {
	n, err := f.CopyCreateParents(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if err := f.RemoveFile(ctx, from); err != nil {
		zerolog.Ctx(ctx).Debug().Str("from", from).Str("to", to).Msg("file copied but source not removed")
		return 0, err
	}
	return n, nil
}

// 🚚 MoveTree runs CopyTree and then removes from.
func (f *FS) MoveTree(ctx context.Context, from, to string) (int64, error) {
	n, err := f.copyTree(ctx, OpMoveTreeAll, from, to, nil)
	if err != nil {
		return 0, err
	}
	return f.removeMovedTree(ctx, from, to, n)
}

// 🚚 MoveTreeParallel runs CopyTreeParallel and then removes from.
func (f *FS) MoveTreeParallel(ctx context.Context, from, to string) (int64, error) {
	n, err := f.copyTreeParallel(ctx, OpMoveTreeAll, from, to, nil)
	if err != nil {
		return 0, err
	}
	return f.removeMovedTree(ctx, from, to, n)
}

func (f *FS) removeMovedTree(ctx context.Context, from, to string, n int64) (int64, error) {
	if err := f.RemoveTree(ctx, from); err != nil {
		zerolog.Ctx(ctx).Debug().Str("from", from).Str("to", to).Msg("tree copied but source not removed")
		return 0, err
	}
	return n, nil
}
