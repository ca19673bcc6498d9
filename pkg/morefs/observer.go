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

import "context"

// 📈 Observer is told about tree replication progress. Implementations must be safe for concurrent
// use: the parallel replicator calls EntryReplicated from every worker.
type Observer interface {
	// EntryReplicated is called after entry was created or copied at target. n is the number of bytes
	// copied (zero for directories).
	EntryReplicated(ctx context.Context, op Operation, entry Entry, target string, n int64)
	// TreeReplicated is called once per tree operation, after the last entry or the first failure.
	TreeReplicated(ctx context.Context, op Operation, from, to string, n int64, err error)
}

type nopObserver struct{}

func (nopObserver) EntryReplicated(context.Context, Operation, Entry, string, int64) {}

func (nopObserver) TreeReplicated(context.Context, Operation, string, string, int64, error) {}

type multiObserver []Observer

// Observers fans every callback out to each of obs in order
func Observers(obs ...Observer) Observer {
	flat := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o == nil {
			continue
		}
		if m, ok := o.(multiObserver); ok {
			flat = append(flat, m...)
			continue
		}
		flat = append(flat, o)
	}
	return flat
}

func (m multiObserver) EntryReplicated(ctx context.Context, op Operation, entry Entry, target string, n int64) {
	for _, o := range m {
		o.EntryReplicated(ctx, op, entry, target, n)
	}
}

func (m multiObserver) TreeReplicated(ctx context.Context, op Operation, from, to string, n int64, err error) {
	for _, o := range m {
		o.TreeReplicated(ctx, op, from, to, n, err)
	}
}
