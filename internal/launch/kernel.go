package launch

import (
	"errors"
	"fmt"
	"unsafe"
)

// Launch errors. Configuration errors are wrapped with the offending values.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration argument")
	ErrInvalidKernel        = errors.New("invalid device function")
	ErrStreamClosed         = errors.New("stream is closed")
)

// KernelFunc is the body of a kernel, run once per thread. args holds one pointer per
// kernel parameter in declaration order.
type KernelFunc func(tid ThreadID, args []unsafe.Pointer)

// Kernel is a compiled entry point together with its static resource needs.
type Kernel struct {
	Name               string
	Func               KernelFunc
	SharedMemBytes     int // statically declared shared memory per block
	MaxThreadsPerBlock int // 0 means the launcher's limit
}

// Attributes reports a kernel's resource needs, as queried before launch.
type Attributes struct {
	SharedSizeBytes    int
	MaxThreadsPerBlock int
}

// FuncAttributes queries k's attributes.
func FuncAttributes(k *Kernel) (Attributes, error) {
	if k == nil || k.Func == nil {
		return Attributes{}, ErrInvalidKernel
	}
	return Attributes{
		SharedSizeBytes:    k.SharedMemBytes,
		MaxThreadsPerBlock: k.MaxThreadsPerBlock,
	}, nil
}

// KernelFault reports a kernel that panicked while running.
type KernelFault struct {
	Kernel string
	Block  Dim3
	Thread Dim3
	Value  any
}

// Error implements the error interface.
func (e *KernelFault) Error() string {
	return fmt.Sprintf("kernel %s faulted in block %s thread %s: %v", e.Kernel, e.Block, e.Thread, e.Value)
}

// Unwrap returns the panic value when it was an error.
func (e *KernelFault) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
