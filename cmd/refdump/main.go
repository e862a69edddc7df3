// Copyright (C) 2024 The RefPack Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// refdump inspects refpack streams: it prints the header fields, the
// body size, and verifies the trailing digest.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/refpack/refpack/core/data/pack"
	"github.com/refpack/refpack/core/log"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "refdump <file>",
	Short: "Inspect a refpack stream",
	Long: `refdump reads a refpack stream, prints its header fields and body
size, and verifies the trailing digest. It does not decode the payload;
that requires the traversal code of the saved types.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if verbose {
			ctx = log.Put(ctx, log.New(os.Stderr, log.Debug))
		}
		return dump(ctx, args[0])
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func dump(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return log.Errf(ctx, err, "opening %s", path)
	}
	defer f.Close()

	log.D(ctx, "reading header of %s", path)
	r, err := pack.NewReader(f)
	if err != nil {
		return log.Errf(ctx, err, "reading refpack header of %s", path)
	}
	fmt.Printf("file:       %s\n", path)
	fmt.Printf("version:    %d\n", r.Version())
	fmt.Printf("byte order: %s\n", r.ByteOrder())

	n, err := r.Drain()
	fmt.Printf("body:       %d bytes\n", n)
	if err != nil {
		color.Red("digest:     FAIL (%v)", err)
		return err
	}
	color.Green("digest:     OK")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
