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

// NewMkdirCmd creates the mkdir command
func NewMkdirCmd(o *opts.RootOpts) *cobra.Command {
	var parents bool

	cmd := &cobra.Command{
		Use:   "mkdir [-p] PATH...",
		Short: "Create directories",
		Long: `Create directories. Without -p the parent must exist and the directory must not.
With -p missing ancestors are created and existing directories are fine.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ops := make([]operation.Operation, 0, len(args))
			for _, path := range args {
				ops = append(ops, operation.NewMkdirOperation(o.OperationOptions(), path, parents))
			}
			return run(cmd, o, ops...)
		},
	}

	cmd.Flags().BoolVarP(&parents, "parents", "p", false, "create missing parents, no error if existing")

	return cmd
}
