package launch

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/born-ml/kernelrt/internal/parallel"
)

// Config bounds what the CPU launcher accepts.
type Config struct {
	Workers            int // goroutines running blocks; 1 runs blocks sequentially
	MaxThreadsPerBlock int
	MaxSharedMemBytes  int // static plus dynamic shared memory per block
	QueueDepth         int // pending launches per stream
}

// DefaultConfig matches a common device profile, with one worker per CPU.
func DefaultConfig() Config {
	return Config{
		Workers:            runtime.NumCPU(),
		MaxThreadsPerBlock: 1024,
		MaxSharedMemBytes:  48 * 1024,
		QueueDepth:         64,
	}
}

// Launcher runs kernels on the host CPU.
type Launcher struct {
	cfg    Config
	par    parallel.Config
	stream *Stream

	mu      sync.Mutex
	lastErr error
}

// NewCPU creates a launcher with its own default stream.
func NewCPU(cfg Config) *Launcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.MaxThreadsPerBlock <= 0 {
		cfg.MaxThreadsPerBlock = def.MaxThreadsPerBlock
	}
	if cfg.MaxSharedMemBytes <= 0 {
		cfg.MaxSharedMemBytes = def.MaxSharedMemBytes
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = def.QueueDepth
	}
	return &Launcher{
		cfg: cfg,
		par: parallel.Config{
			Enabled:      cfg.Workers > 1,
			NumWorkers:   cfg.Workers,
			MinChunkSize: 1,
		},
		stream: NewStream(cfg.QueueDepth),
	}
}

// Config returns the effective configuration.
func (l *Launcher) Config() Config {
	return l.cfg
}

// DefaultStream returns the stream used when Launch is given nil.
func (l *Launcher) DefaultStream() *Stream {
	return l.stream
}

// NewStream creates an additional stream with the launcher's queue depth.
func (l *Launcher) NewStream() *Stream {
	return NewStream(l.cfg.QueueDepth)
}

// Launch validates the configuration and enqueues k on stream (the default stream
// when nil). It returns before the kernel runs. Validation failures are returned and
// also recorded for GetLastError; faults while running surface from Synchronize.
//
// args must stay valid until the stream is synchronized.
func (l *Launcher) Launch(k *Kernel, grid, block Dim3, args []unsafe.Pointer, sharedMem int, stream *Stream) error {
	shared, err := l.validate(k, grid, block, sharedMem)
	if err != nil {
		l.record(err)
		return err
	}
	if stream == nil {
		stream = l.stream
	}

	err = stream.Submit(func() error {
		if err := l.run(k, grid, block, args, shared); err != nil {
			l.record(err)
			return err
		}
		return nil
	})
	if err != nil {
		l.record(err)
	}
	return err
}

// validate checks a launch configuration and returns the shared memory size per block.
func (l *Launcher) validate(k *Kernel, grid, block Dim3, sharedMem int) (int, error) {
	attr, err := FuncAttributes(k)
	if err != nil {
		return 0, err
	}
	if grid.Size() == 0 || block.Size() == 0 {
		return 0, fmt.Errorf("%w: grid %s and block %s must be non-empty", ErrInvalidConfiguration, grid, block)
	}
	limit := l.cfg.MaxThreadsPerBlock
	if attr.MaxThreadsPerBlock > 0 {
		limit = min(limit, attr.MaxThreadsPerBlock)
	}
	if block.Size() > limit {
		return 0, fmt.Errorf("%w: block %s has %d threads, limit %d",
			ErrInvalidConfiguration, block, block.Size(), limit)
	}
	if sharedMem < 0 {
		return 0, fmt.Errorf("%w: negative shared memory %d", ErrInvalidConfiguration, sharedMem)
	}
	shared := attr.SharedSizeBytes + sharedMem
	if shared > l.cfg.MaxSharedMemBytes {
		return 0, fmt.Errorf("%w: %d bytes of shared memory, limit %d",
			ErrInvalidConfiguration, shared, l.cfg.MaxSharedMemBytes)
	}
	return shared, nil
}

// run executes every block of the grid. Remaining blocks are skipped after a fault.
func (l *Launcher) run(k *Kernel, grid, block Dim3, args []unsafe.Pointer, shared int) error {
	var fault atomic.Pointer[KernelFault]

	parallel.ForGrid(int(grid.X), int(grid.Y), int(grid.Z), func(x, y, z int) {
		if fault.Load() != nil {
			return
		}
		//nolint:gosec // bounded by grid
		bidx := Dim3{X: uint32(x), Y: uint32(y), Z: uint32(z)}
		if f := runBlock(k, grid, block, bidx, args, shared); f != nil {
			fault.CompareAndSwap(nil, f)
		}
	}, l.par)

	if f := fault.Load(); f != nil {
		return f
	}
	return nil
}

// runBlock runs the threads of one block in order, sharing one scratch buffer.
func runBlock(k *Kernel, grid, block, bidx Dim3, args []unsafe.Pointer, shared int) (fault *KernelFault) {
	tid := ThreadID{
		BlockIdx: bidx,
		BlockDim: block,
		GridDim:  grid,
		Shared:   make([]byte, shared),
	}
	defer func() {
		if r := recover(); r != nil {
			fault = &KernelFault{Kernel: k.Name, Block: bidx, Thread: tid.ThreadIdx, Value: r}
		}
	}()

	n := block.Size()
	for i := 0; i < n; i++ {
		tid.ThreadIdx = block.at(i)
		k.Func(tid, args)
	}
	return nil
}

func (l *Launcher) record(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lastErr == nil {
		l.lastErr = err
	}
}

// GetLastError returns the first error recorded since the previous call, and clears it.
func (l *Launcher) GetLastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	err := l.lastErr
	l.lastErr = nil
	return err
}

// PeekAtLastError returns the recorded error without clearing it.
func (l *Launcher) PeekAtLastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Synchronize waits for the default stream.
func (l *Launcher) Synchronize() error {
	return l.stream.Synchronize()
}

// Close drains and stops the default stream.
func (l *Launcher) Close() error {
	return l.stream.Close()
}
