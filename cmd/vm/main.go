// Command vm executes one idlevm binary instruction stream to
// completion or to a trap.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idlevm/vm"
)

func main() {
	var trace bool

	root := &cobra.Command{
		Use:           "vm <binary>",
		Short:         "Run a compiled idlevm binary",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := run(args[0], trace)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
			os.Exit(code)
			return nil
		},
	}
	root.Flags().BoolVar(&trace, "trace", false, "print a per-instruction execution trace to stderr")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(vm.VMIncorrectOpcode))
	}
}

func run(binPath string, trace bool) (int, error) {
	data, err := os.ReadFile(binPath)
	if err != nil {
		return int(vm.VMFileNotRead), &vm.Error{Kind: vm.VMFileNotRead, Msg: err.Error()}
	}

	prog, err := vm.DecodeProgram(data)
	if err != nil {
		return int(vm.VMFileNotRead), &vm.Error{Kind: vm.VMFileNotRead, Msg: err.Error()}
	}

	m := vm.NewStdio(prog)
	m.Trace = trace
	return m.RunProgram()
}
