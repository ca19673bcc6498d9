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
	"github.com/spf13/cobra"
	"github.com/walteh/morefs/cmd/morefs/opts"
	"github.com/walteh/morefs/pkg/operation"
)

// NewCopyCmd creates the cp command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	var recursive, parents bool

	cmd := &cobra.Command{
		Use:   "cp [-r] [-p] SOURCE... DEST",
		Short: "Copy files and directory trees",
		Long: `Copy files, or whole directory trees with -r.
When DEST is an existing directory each SOURCE is copied into it.
Trees use the parallel replicator with --parallel and skip --exclude patterns.
With --cleanup a failed tree copy removes the destination it created.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[len(args)-1]
			ops := make([]operation.Operation, 0, len(args)-1)
			for _, src := range args[:len(args)-1] {
				ops = append(ops, operation.NewCopyOperation(o.OperationOptions(), src, dest, recursive, parents))
			}
			return run(cmd, o, ops...)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "copy directories recursively")
	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parent directories of a file destination")

	return cmd
}
