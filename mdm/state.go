package mdm

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// Modal is the device operations dialog.
type Modal struct {
	Open       bool     `json:"open"`
	Device     *Device  `json:"device,omitempty"`
	Operations []string `json:"operations"`
	Executing  bool     `json:"executing"`
	TaskID     string   `json:"taskId,omitempty"`
}

// View is the read-only state of the dashboard published to observers.
type View struct {
	Tab             Tab      `json:"tab"`
	Tenant          Tenant   `json:"tenant"`
	TenantDropdown  bool     `json:"tenantDropdown"`
	SelectedDevices []string `json:"selectedDevices"`
	Modal           Modal    `json:"modal"`
}

// AppState is the navigation and selection state of the dashboard.
//
// All mutations go through its methods and are serialized. Observers are
// called after each change, outside of the lock, in the order of the
// changes.
type AppState struct {
	data *Dataset
	exec Executor
	log  logrus.FieldLogger

	mu         sync.Mutex
	view       View
	task       *Task
	tasks      map[string]*Task
	taskOrder  []string
	observers  []*viewObserver
	pending    []View
	delivering bool
}

// maxTasks is the number of tasks kept for lookup. Older ones are dropped.
const maxTasks = 64

type viewObserver struct{ f func(View) }

// NewAppState returns the state on the overview tab with the first tenant
// of the dataset selected.
func NewAppState(data *Dataset, exec Executor, log logrus.FieldLogger) *AppState {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &AppState{
		data:  data,
		exec:  exec,
		log:   log,
		tasks: make(map[string]*Task),
	}
	s.view.Tab = Overview
	if len(data.Tenants) > 0 {
		s.view.Tenant = data.Tenants[0]
	} else {
		s.view.Tenant, _ = data.Tenant(AllTenants)
	}
	return s
}

// Dataset returns the underlying dataset.
func (s *AppState) Dataset() *Dataset { return s.data }

// View returns a copy of the current state.
func (s *AppState) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyView()
}

func (s *AppState) copyView() View {
	v := s.view
	v.SelectedDevices = slices.Clone(v.SelectedDevices)
	v.Modal.Operations = slices.Clone(v.Modal.Operations)
	if v.Modal.Device != nil {
		d := *v.Modal.Device
		v.Modal.Device = &d
	}
	return v
}

// update applies f under the lock and notifies observers.
func (s *AppState) update(f func(v *View)) {
	s.mu.Lock()
	f(&s.view)
	s.notifyLocked()
}

// notifyLocked queues a snapshot of the view and unlocks s.mu. Snapshots
// reach observers in the order of the changes: the first caller to find
// the queue idle delivers it until empty, others only enqueue.
func (s *AppState) notifyLocked() {
	s.pending = append(s.pending, s.copyView())
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.pending) > 0 {
		v := s.pending[0]
		s.pending = s.pending[1:]
		observers := slices.Clone(s.observers)
		s.mu.Unlock()
		for _, o := range observers {
			o.f(v)
		}
		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

// SetTab navigates to tab.
func (s *AppState) SetTab(tab Tab) { s.update(func(v *View) { v.Tab = tab }) }

// SelectTenant selects the tenant by id or name and closes the dropdown.
func (s *AppState) SelectTenant(key string) error {
	t, ok := s.data.Tenant(key)
	if !ok {
		return fmt.Errorf("unknown tenant %q", key)
	}
	s.update(func(v *View) {
		v.Tenant = t
		v.TenantDropdown = false
	})
	return nil
}

// SetTenantDropdown shows or hides the tenant picker.
func (s *AppState) SetTenantDropdown(show bool) {
	s.update(func(v *View) { v.TenantDropdown = show })
}

// SelectDevices replaces the device selection.
func (s *AppState) SelectDevices(ids ...string) {
	s.update(func(v *View) { v.SelectedDevices = slices.Clone(ids) })
}

// Filter returns the device filter of the selected tenant.
func (s *AppState) Filter() Filter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Filter{Tenant: s.view.Tenant.Name}
}

// NavCounts returns the badge counts of the navigation: devices and
// financed devices of the selected tenant.
func (s *AppState) NavCounts() map[Tab]int {
	devices := s.data.FilterDevices(s.Filter())
	financed := 0
	for _, d := range devices {
		if d.Financing != nil {
			financed++
		}
	}
	return map[Tab]int{Devices: len(devices), FinancingTab: financed}
}

// OpenOperations opens the operations dialog on a device. It fails while
// another batch is executing.
func (s *AppState) OpenOperations(deviceID string) error {
	d, ok := s.data.Device(deviceID)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDevice, deviceID)
	}
	var err error
	s.update(func(v *View) {
		if v.Modal.Executing {
			err = ErrBusy
			return
		}
		v.Modal = Modal{Open: true, Device: &d}
	})
	return err
}

// ToggleOperation adds or removes an operation from the selection of the
// open dialog. Selection order is kept.
func (s *AppState) ToggleOperation(id string) error {
	if _, ok := s.data.Operation(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOperation, id)
	}
	var err error
	s.update(func(v *View) {
		switch {
		case !v.Modal.Open:
			err = fmt.Errorf("operations dialog is closed")
		case v.Modal.Executing:
			err = ErrBusy
		default:
			if i := slices.Index(v.Modal.Operations, id); i >= 0 {
				v.Modal.Operations = slices.Delete(v.Modal.Operations, i, i+1)
			} else {
				v.Modal.Operations = append(v.Modal.Operations, id)
			}
		}
	})
	return err
}

// CloseOperations closes the dialog and clears the selection. It is ignored
// while executing and reports whether the dialog was closed.
func (s *AppState) CloseOperations() bool {
	closed := false
	s.update(func(v *View) {
		if v.Modal.Executing {
			return
		}
		v.Modal = Modal{}
		closed = true
	})
	return closed
}

// Execute starts the selected operations on the device of the dialog. The
// dialog stays open and executing until the task completes, then closes.
func (s *AppState) Execute(ctx context.Context) (*Task, error) {
	s.mu.Lock()
	m := s.view.Modal
	switch {
	case m.Executing:
		s.mu.Unlock()
		return nil, ErrBusy
	case !m.Open || m.Device == nil || len(m.Operations) == 0:
		s.mu.Unlock()
		return nil, ErrNothingSelected
	}
	ops := make([]Operation, 0, len(m.Operations))
	for _, id := range m.Operations {
		op, _ := s.data.Operation(id)
		ops = append(ops, op)
	}
	return s.startLocked(ctx, *m.Device, ops), nil
}

// Submit opens the dialog on a device, selects operations and executes them
// in one step: observers never see the dialog before it is executing.
func (s *AppState) Submit(ctx context.Context, deviceID string, operations ...string) (*Task, error) {
	if len(operations) == 0 {
		return nil, ErrNothingSelected
	}
	ops := make([]Operation, 0, len(operations))
	for _, id := range operations {
		op, ok := s.data.Operation(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, id)
		}
		if !slices.ContainsFunc(ops, func(o Operation) bool { return o.ID == id }) {
			ops = append(ops, op)
		}
	}
	d, ok := s.data.Device(deviceID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDevice, deviceID)
	}

	s.mu.Lock()
	if s.view.Modal.Executing {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	ids := make([]string, len(ops))
	for i, op := range ops {
		ids[i] = op.ID
	}
	s.view.Modal = Modal{Open: true, Device: &d, Operations: ids}
	return s.startLocked(ctx, d, ops), nil
}

// startLocked marks the dialog executing, records and starts a new task,
// then unlocks s.mu and notifies observers.
func (s *AppState) startLocked(ctx context.Context, device Device, ops []Operation) *Task {
	t := newTask(device, ops)
	s.task = t
	s.tasks[t.id] = t
	s.taskOrder = append(s.taskOrder, t.id)
	for len(s.taskOrder) > maxTasks {
		delete(s.tasks, s.taskOrder[0])
		s.taskOrder = s.taskOrder[1:]
	}
	s.view.Modal.Executing = true
	s.view.Modal.TaskID = t.id
	s.notifyLocked()

	s.log.WithFields(logrus.Fields{"task": t.id, "device": device.ID}).Debug("task started")
	t.start(ctx, s.exec, func(err error) { s.finish(t, err) })
	return t
}

// finish closes the dialog. It runs before the task completes, so that a
// completed task always finds the dialog reset.
func (s *AppState) finish(t *Task, err error) {
	log := s.log.WithFields(logrus.Fields{"task": t.id, "device": t.device.ID})
	if err != nil {
		log.WithError(err).Warn("task failed")
	} else {
		log.Debug("task completed")
	}
	s.update(func(v *View) {
		if s.task == t {
			s.task = nil
			v.Modal = Modal{}
		}
	})
}

// Task returns one of the last tasks started by this state.
func (s *AppState) Task(id string) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	return t, ok
}

// Subscribe registers f to be called with the view after every change.
// The returned function unsubscribes f.
func (s *AppState) Subscribe(f func(View)) (cancel func()) {
	o := &viewObserver{f: f}
	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if i := slices.Index(s.observers, o); i >= 0 {
			s.observers = slices.Delete(s.observers, i, i+1)
		}
	}
}
