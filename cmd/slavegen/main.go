// Copyright 2015 Google Inc. All rights reserved
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

// Command slavegen compiles a YAML device specification into the C++
// datagram state machine a Modbus RTU slave include()s.
package main

import (
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/mbgen/slavegen"
)

var (
	outputPath string
	tabSize    int
)

func main() {
	defer glog.Flush()
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "slavegen",
		Short:         "Compile a Modbus RTU slave datagram specification",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCommand())
	return root
}

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <config.yaml>",
		Short: "Generate the C++ state machine for a device specification",
		Args:  cobra.ExactArgs(1),
		RunE:  runGenerate,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: stdout)")
	cmd.Flags().IntVarP(&tabSize, "tab-size", "t", 4, "indent width, in spaces, of generated code")
	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	spec, err := slavegen.LoadFile(args[0])
	if err != nil {
		return err
	}

	_, src, err := slavegen.Generate(spec, slavegen.EmitOptions{TabSize: tabSize})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("slavegen: creating %s: %w", outputPath, err)
		}
		defer f.Close()
		out = f
	}

	_, err = out.Write(src)
	return err
}

// exitCodeFor maps a returned error to the process exit code §6
// promises: 1 for a structured compiler diagnostic, 2 for anything else
// (bad flags, unreadable file, malformed YAML).
func exitCodeFor(err error) int {
	fmt.Fprintln(os.Stderr, err)
	if _, ok := err.(*slavegen.CompileError); ok {
		return 1
	}
	return 2
}
