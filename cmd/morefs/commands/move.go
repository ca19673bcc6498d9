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

// NewMoveCmd creates the mv command
func NewMoveCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mv SOURCE... DEST",
		Short: "Move files and directory trees",
		Long: `Move files or directory trees by copying them and then removing the source.
Works across filesystems. Exclude patterns never apply: the whole source is removed.
If removing the source fails the destination already holds a full copy.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest := args[len(args)-1]
			ops := make([]operation.Operation, 0, len(args)-1)
			for _, src := range args[:len(args)-1] {
				ops = append(ops, operation.NewMoveOperation(o.OperationOptions(), src, dest))
			}
			return run(cmd, o, ops...)
		},
	}

	return cmd
}
