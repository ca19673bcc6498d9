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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/morefs/cmd/morefs/commands"
	"github.com/walteh/morefs/cmd/morefs/opts"
)

func main() {
	// an interrupt cancels pending tree entries
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	logger := setupLogging(zerolog.InfoLevel)
	ctx = logger.WithContext(ctx)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		pterm.Error.WithPrefix(pterm.Prefix{Text: "❌"}).Println(err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree; options are filled in by the root's pre-run hook
func newRootCmd() *cobra.Command {
	o := &opts.RootOpts{}
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "morefs",
		Short: "Copy, move and remove files and directory trees",
		Long: `morefs copies, moves and removes files and whole directory trees.
Trees can be copied by a pool of workers, errors name the operation and paths
involved, and a failed tree copy can clean up after itself.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initRootOpts(cmd, flags, o)
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewMoveCmd(o),
		commands.NewRemoveCmd(o),
		commands.NewMkdirCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}
