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

// NewRemoveCmd creates the rm command
func NewRemoveCmd(o *opts.RootOpts) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "rm [-r] PATH...",
		Short: "Remove files and directory trees",
		Long: `Remove files, or whole directory trees with -r.
Removing a tree that does not exist succeeds.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]operation.Operation, 0, len(args))
			for _, path := range args {
				ops = append(ops, operation.NewRemoveOperation(o.OperationOptions(), path, recursive))
			}
			return run(cmd, o, ops...)
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "remove directories and their contents")

	return cmd
}
