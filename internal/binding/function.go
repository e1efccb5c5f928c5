package binding

import (
	"cmp"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"sync"

	"github.com/born-ml/kernelrt/internal/backend/cpu"
	"github.com/born-ml/kernelrt/internal/launch"
	"github.com/born-ml/kernelrt/internal/marshal"
	"github.com/born-ml/kernelrt/internal/tensor"
	"github.com/born-ml/kernelrt/internal/vecmath"
)

// ErrUnknownFunction is returned by Module.Call for a name that was never defined.
var ErrUnknownFunction = errors.New("unknown function")

// Runtime bundles the collaborators a call needs. Calls sharing a Runtime may run
// concurrently; their launches are serialized so that each call observes only its
// own launch and stream errors.
type Runtime struct {
	Marshaler *marshal.Marshaler
	Launcher  *launch.Launcher
	Stream    *launch.Stream // nil means the launcher's default stream

	mu sync.Mutex // held from launch until the sticky error is cleared
}

// NewRuntime assembles a runtime that marshals for device and launches with l.
func NewRuntime(host marshal.Host, device tensor.Device, l *launch.Launcher) *Runtime {
	return &Runtime{Marshaler: marshal.New(host, device), Launcher: l}
}

// NewCPURuntime returns a runtime on the CPU backend and CPU launcher.
func NewCPURuntime(cfg launch.Config) *Runtime {
	return NewRuntime(cpu.New(), tensor.CPU, launch.NewCPU(cfg))
}

// Close stops the launcher's default stream.
func (rt *Runtime) Close() error {
	return rt.Launcher.Close()
}

func (rt *Runtime) synchronize() error {
	if rt.Stream != nil {
		return rt.Stream.Synchronize()
	}
	return rt.Launcher.Synchronize()
}

// Inputs are a call's validated inputs, in signature order. Tensors are
// *tensor.RawTensor, differentiable tensors DiffInput, and by-value kinds host tensors.
type Inputs []any

// Tensor returns input i as a tensor; for a differentiable input, its value.
func (in Inputs) Tensor(i int) *tensor.RawTensor {
	switch x := in[i].(type) {
	case *tensor.RawTensor:
		return x
	case DiffInput:
		return x.Value
	default:
		panic(fmt.Sprintf("binding: input %d is %T, not a tensor", i, in[i]))
	}
}

// Plan is what a Planner decides for one call.
type Plan struct {
	Grid, Block launch.Dim3
	Args        []any // kernel arguments, matching Function.KernelParams by position
	Outputs     []*tensor.RawTensor
}

// Planner allocates outputs and chooses the launch geometry for validated inputs.
type Planner func(rt *Runtime, in Inputs) (Plan, error)

// Function is a kernel exposed with a fixed host signature.
type Function struct {
	Signature    Signature
	KernelParams []Param
	Kernel       *launch.Kernel
	Plan         Planner

	rt *Runtime
}

// NewFunction binds k to rt. kernelParams lists the kernel's parameters in declaration
// order; this is the only layout contract between host and kernel.
func NewFunction(rt *Runtime, sig Signature, kernelParams []Param, k *launch.Kernel, plan Planner) *Function {
	return &Function{Signature: sig, KernelParams: kernelParams, Kernel: k, Plan: plan, rt: rt}
}

// Call validates inputs, marshals the kernel arguments, launches the kernel, waits
// for it and returns the declared outputs.
func (f *Function) Call(inputs ...any) ([]*tensor.RawTensor, error) {
	in, err := f.validate(inputs)
	if err != nil {
		return nil, err
	}

	plan, err := f.Plan(f.rt, in)
	if err != nil {
		return nil, f.wrap(err)
	}
	if len(plan.Args) != len(f.KernelParams) {
		return nil, f.wrap(&vecmath.LengthError{Want: len(f.KernelParams), Got: len(plan.Args)})
	}
	if len(plan.Outputs) != len(f.Signature.Results) {
		return nil, f.wrap(fmt.Errorf("planned %d outputs, signature declares %d",
			len(plan.Outputs), len(f.Signature.Results)))
	}

	args, keep, err := f.marshal(plan.Args)
	if err != nil {
		return nil, f.wrap(err)
	}

	attr, err := launch.FuncAttributes(f.Kernel)
	if err != nil {
		return nil, f.wrap(err)
	}
	l := f.rt.Launcher
	f.rt.mu.Lock()
	defer f.rt.mu.Unlock()
	if err := l.Launch(f.Kernel, plan.Grid, plan.Block, args.Pointers(), attr.SharedSizeBytes, f.rt.Stream); err != nil {
		l.GetLastError()
		return nil, f.wrap(err)
	}
	launchErr := l.GetLastError()
	syncErr := f.rt.synchronize()
	l.GetLastError()
	runtime.KeepAlive(keep)
	if err := cmp.Or(launchErr, syncErr); err != nil {
		return nil, f.wrap(err)
	}
	return plan.Outputs, nil
}

func (f *Function) validate(inputs []any) (Inputs, error) {
	params := f.Signature.Params
	if len(inputs) != len(params) {
		return nil, f.wrap(&vecmath.LengthError{Want: len(params), Got: len(inputs)})
	}
	in := make(Inputs, len(inputs))
	for i, p := range params {
		v, err := f.rt.accept(p, inputs[i])
		if err != nil {
			return nil, f.wrap(&marshal.ArgError{Name: p.Name, Err: err})
		}
		in[i] = v
	}
	return in, nil
}

// marshal builds the argument list in kernel parameter order. keep holds every tensor
// the pointers refer to.
func (f *Function) marshal(vals []any) (*marshal.ArgList, []any, error) {
	m := f.rt.Marshaler
	args := marshal.NewArgList(len(f.KernelParams))
	keep := make([]any, 0, len(vals))

	for i, p := range f.KernelParams {
		v, err := f.rt.accept(p, vals[i])
		if err != nil {
			return nil, nil, &marshal.ArgError{Name: p.Name, Err: err}
		}
		switch x := v.(type) {
		case *tensor.RawTensor:
			if p.Kind == KindTensor {
				var view marshal.TensorView
				view, err = m.MakeTensorView(x, p.Name, p.DType)
				if err != nil {
					return nil, nil, err
				}
				err = args.AddView(view)
			} else {
				err = args.Add(x.DataPtr())
			}
			keep = append(keep, x)
		case DiffInput:
			var d marshal.DiffTensorView
			var grad *tensor.RawTensor
			d, grad, err = m.MakeDiffTensorView(x.Value, x.Grad, p.Name, p.DType)
			if err != nil {
				return nil, nil, err
			}
			err = args.AddDiffView(d)
			keep = append(keep, x.Value, grad)
		}
		if err != nil {
			return nil, nil, &marshal.ArgError{Name: p.Name, Err: err}
		}
	}
	return args, keep, nil
}

func (f *Function) wrap(err error) error {
	return fmt.Errorf("%s: %w", f.Signature.Name, err)
}

// Module is a named set of functions, the unit a host binding layer loads.
type Module struct {
	Name  string
	funcs map[string]*Function
}

// NewModule returns an empty module.
func NewModule(name string) *Module {
	return &Module{Name: name, funcs: make(map[string]*Function)}
}

// Def registers f under its signature name. Redefining a name panics.
func (m *Module) Def(f *Function) *Function {
	name := f.Signature.Name
	if _, dup := m.funcs[name]; dup {
		panic(fmt.Sprintf("binding: %s already defines %s", m.Name, name))
	}
	m.funcs[name] = f
	return f
}

// Lookup returns the function registered as name.
func (m *Module) Lookup(name string) (*Function, bool) {
	f, ok := m.funcs[name]
	return f, ok
}

// Functions returns the registered names in sorted order.
func (m *Module) Functions() []string {
	names := make([]string, 0, len(m.funcs))
	for name := range m.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Call invokes the named function.
func (m *Module) Call(name string, inputs ...any) ([]*tensor.RawTensor, error) {
	f, ok := m.funcs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", m.Name, ErrUnknownFunction, name)
	}
	return f.Call(inputs...)
}
