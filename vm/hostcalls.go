package vm

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

// hostcallFn implements one INT routine. Inputs arrive in regs[4]
// (and regs[5] for a second argument); results go in regs[2] (§4.8).
// A non-nil error (other than *exitSignal) is itself a bug in this
// table, not a VM trap — §4.8 defines host-call failure as a
// truthy/falsy return in regs[2], never a trap.
type hostcallFn func(v *VM) error

var hostcalls = [...]hostcallFn{
	hcExit:   hcExitFn,
	hcAbort:  hcAbortFn,
	hcReadc:  hcReadcFn,
	hcWritec: hcWritecFn,
	hcLoadsd: hcLoadsdFn,
	hcLoadad: hcLoadadFn,
	hcLoadid: hcLoadidFn,
	hcWrites: hcWritesFn,
	hcReads:  hcReadsFn,
	hcWriten: hcWritenFn,
	hcReadn:  hcReadnFn,
}

func (v *VM) hostcall(num Opcode) error {
	if int(num) < 0 || int(num) >= len(hostcalls) || hostcalls[num] == nil {
		return newVMErr(VMIncorrectIntNumber, v.IP, "no host-call bound to number %d", num)
	}
	return hostcalls[num](v)
}

func hcExitFn(v *VM) error  { return &exitSignal{code: int(int32(uint32(v.Regs[4])))} }
func hcAbortFn(v *VM) error { return &exitSignal{code: 134} } // SIGABRT-style exit code

func hcReadcFn(v *VM) error {
	b, err := v.Stdin.ReadByte()
	if err != nil {
		v.Regs[2] = ^uint64(0) // -1 sign-extended
		return nil
	}
	v.Regs[2] = uint64(b)
	return nil
}

func hcWritecFn(v *VM) error {
	v.Stdout.WriteByte(byte(v.Regs[4]))
	return nil
}

func hcLoadsdFn(v *VM) error {
	idx := v.Regs[4]
	if idx >= uint64(len(v.Stack)) {
		v.Regs[2] = 0
		return nil
	}
	v.Regs[2] = v.Stack[idx]
	return nil
}

func hcLoadadFn(v *VM) error {
	idx := v.Regs[4]
	if idx >= addressStackSize {
		v.Regs[2] = 0
		return nil
	}
	v.Regs[2] = v.RAddr[idx]
	return nil
}

// hcLoadidFn implements Open Question #5's resolved contract: load
// the 64-bit word at index regs[4] of the currently executing
// instruction image, viewing the program as a flat array of u64s.
func hcLoadidFn(v *VM) error {
	idx := v.Regs[4]
	if idx >= uint64(len(v.Program)) {
		v.Regs[2] = 0
		return nil
	}
	v.Regs[2] = binary.LittleEndian.Uint64(v.Program[idx].Bytes())
	return nil
}

func hcWritesFn(v *VM) error {
	start := v.Regs[4]
	end := start
	for end < rawDataSize && v.RawData[end] != 0 {
		end++
	}
	if start < rawDataSize {
		v.Stdout.Write(v.RawData[start:end])
	}
	return nil
}

func hcReadsFn(v *VM) error {
	start := v.Regs[4]
	maxLen := v.Regs[5]
	if start >= rawDataSize {
		return nil
	}
	line, _ := v.Stdin.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	n := uint64(len(line))
	if n > maxLen {
		n = maxLen
	}
	if start+n > rawDataSize {
		n = rawDataSize - start
	}
	copy(v.RawData[start:start+n], line[:n])
	return nil
}

func hcWritenFn(v *VM) error {
	fmt.Fprintf(v.Stdout, "%d", int64(v.Regs[4]))
	return nil
}

func hcReadnFn(v *VM) error {
	line, _ := v.Stdin.ReadString('\n')
	line = strings.TrimSpace(line)
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		v.Regs[2] = 0
		return nil
	}
	v.Regs[2] = uint64(n)
	return nil
}
