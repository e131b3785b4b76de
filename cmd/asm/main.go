// Command asm assembles one idlevm source file into one binary
// instruction stream.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"idlevm/vm"
)

func main() {
	root := &cobra.Command{
		Use:           "asm <source> <output>",
		Short:         "Assemble idlevm mnemonic source into a binary instruction stream",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return assemble(args[0], args[1])
		},
	}

	if err := root.Execute(); err != nil {
		if asmErr, ok := err.(*vm.AsmError); ok {
			fmt.Fprintln(os.Stderr, asmErr.Error())
			os.Exit(asmErr.Code())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(vm.AsmFailedExit))
	}
}

func assemble(sourcePath, outputPath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return &vm.AsmError{Kind: vm.AsmFileNotRead, Msg: err.Error()}
	}

	bin, err := vm.Assemble(string(src))
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, bin, 0o644); err != nil {
		return &vm.AsmError{Kind: vm.AsmFileNotRead, Msg: err.Error()}
	}
	return nil
}
