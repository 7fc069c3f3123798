package mdm

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNothingSelected is returned when executing without any operation.
	ErrNothingSelected = errors.New("no operation selected")
	// ErrBusy is returned when operations are already executing.
	ErrBusy = errors.New("operations already executing")
	// ErrUnknownDevice is returned for a device id not in the dataset.
	ErrUnknownDevice = errors.New("unknown device")
	// ErrUnknownOperation is returned for an operation id not in the dataset.
	ErrUnknownOperation = errors.New("unknown operation")
)

// Executor sends operations to a device.
type Executor interface {
	Execute(ctx context.Context, device Device, operations []Operation) error
}

// DefaultOperationDelay is the time the simulated executor takes to run a batch.
const DefaultOperationDelay = 2 * time.Second

// SimulatedExecutor pretends to send operations: it waits Delay and succeeds.
type SimulatedExecutor struct {
	Delay time.Duration
	Log   logrus.FieldLogger
}

// NewSimulatedExecutor returns an executor waiting delay for each batch.
func NewSimulatedExecutor(delay time.Duration, log logrus.FieldLogger) *SimulatedExecutor {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SimulatedExecutor{Delay: delay, Log: log}
}

func (e *SimulatedExecutor) Execute(ctx context.Context, device Device, operations []Operation) error {
	log := e.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	ids := make([]string, len(operations))
	for i, op := range operations {
		ids[i] = op.ID
	}
	log = log.WithFields(logrus.Fields{"device": device.ID, "operations": ids})

	t := time.NewTimer(e.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		log.WithError(ctx.Err()).Warn("operations cancelled")
		return ctx.Err()
	case <-t.C:
	}
	log.Info("operations executed")
	return nil
}

// Result is the outcome of a task.
type Result struct {
	TaskID     string   `json:"taskId"`
	DeviceID   string   `json:"deviceId"`
	Operations []string `json:"operations"`
	Err        error    `json:"-"`
}

// Task is a batch of operations running in the background. It completes
// exactly once and is never retried.
type Task struct {
	id         string
	device     Device
	operations []Operation
	started    time.Time

	done   chan struct{}
	mu     sync.Mutex
	result Result
}

func newTask(device Device, operations []Operation) *Task {
	return &Task{
		id:         uuid.NewString(),
		device:     device,
		operations: operations,
		started:    time.Now(),
		done:       make(chan struct{}),
	}
}

// start executes the operations with e in the background. finish, when not
// nil, is called with the outcome before the task completes.
func (t *Task) start(ctx context.Context, e Executor, finish func(error)) {
	go func() {
		err := e.Execute(ctx, t.device, t.operations)
		if finish != nil {
			finish(err)
		}
		t.complete(err)
	}()
}

func (t *Task) complete(err error) {
	ids := make([]string, len(t.operations))
	for i, op := range t.operations {
		ids[i] = op.ID
	}
	t.mu.Lock()
	t.result = Result{TaskID: t.id, DeviceID: t.device.ID, Operations: ids, Err: err}
	t.mu.Unlock()
	close(t.done)
}

// ID returns the unique id of the task.
func (t *Task) ID() string { return t.id }

// Device returns the target device.
func (t *Task) Device() Device { return t.device }

// Done is closed when the task completes.
func (t *Task) Done() <-chan struct{} { return t.done }

// Result returns the result, ok is false while the task is running.
func (t *Task) Result() (r Result, ok bool) {
	select {
	case <-t.done:
	default:
		return Result{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.result, true
}

// Wait blocks until the task completes or ctx is done.
func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		r, _ := t.Result()
		return r, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// TaskStatus is the JSON view of a task.
type TaskStatus struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"deviceId"`
	Operations []string  `json:"operations"`
	Started    time.Time `json:"started"`
	Done       bool      `json:"done"`
	Error      string    `json:"error,omitempty"`
}

// Status returns the current status of the task.
func (t *Task) Status() TaskStatus {
	s := TaskStatus{ID: t.id, DeviceID: t.device.ID, Started: t.started}
	for _, op := range t.operations {
		s.Operations = append(s.Operations, op.ID)
	}
	if r, ok := t.Result(); ok {
		s.Done = true
		if r.Err != nil {
			s.Error = r.Err.Error()
		}
	}
	return s
}
