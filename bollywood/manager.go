package bollywood

import (
	"sync"
	"sync/atomic"
)

// Manager owns the name space, the worker pool, and the termination latch
// for one process's actors: every actor is registered up front, Init
// starts every worker and delivers Start to each, and End delivers
// Shutdown to each and joins every worker.
type Manager struct {
	mu            sync.RWMutex
	actors        map[string]*process
	order         []string
	frozen        bool
	stopped       atomic.Bool
	localEndpoint string
	handle        *ManagerHandle
	hooks         []func()
}

// New creates a Manager. localEndpoint is the process's own inbound
// transport address, recorded and returned by LocalEndpoint; the outbound
// transport stamps sender_endpoint from its own local endpoint, not from
// this one. Pass "" for a manager that never hosts a remote receiver.
func New(localEndpoint string) *Manager {
	m := &Manager{
		actors:        make(map[string]*process),
		localEndpoint: localEndpoint,
	}
	m.handle = &ManagerHandle{manager: m, done: make(chan struct{})}
	return m
}

// LocalEndpoint returns the endpoint passed to New.
func (m *Manager) LocalEndpoint() string { return m.localEndpoint }

// Register binds name to a fresh local Reference for actor. Must be
// called before Init; afterwards it fails with ErrRegistryFrozen. Duplicate
// names fail with ErrDuplicateName.
func (m *Manager) Register(name string, actor Actor) (*Reference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return nil, ErrRegistryFrozen
	}
	if _, exists := m.actors[name]; exists {
		return nil, ErrDuplicateName
	}

	proc := newProcess(m, name, actor)
	m.actors[name] = proc
	m.order = append(m.order, name)
	return proc.ref, nil
}

// Init freezes the registry, starts one worker per registered actor, and
// puts a synthetic Start at the head of each mailbox (ahead of anything
// sent before Init) before any worker goroutine runs, guaranteeing Start
// is the first envelope every actor processes.
func (m *Manager) Init() {
	m.mu.Lock()
	m.frozen = true
	procs := make([]*process, len(m.order))
	for i, name := range m.order {
		procs[i] = m.actors[name]
	}
	m.mu.Unlock()

	for _, p := range procs {
		p.mailbox.mu.Lock()
		p.mailbox.q.PushFront(&Envelope{Payload: Start{}})
		p.mailbox.mu.Unlock()
	}
	for _, p := range procs {
		go p.run()
	}
}

// Run blocks until the Manager's termination latch is tripped, by any
// actor, via its ManagerHandle.Terminate.
func (m *Manager) Run() {
	<-m.handle.done
}

// End delivers a synthetic Shutdown to every mailbox and joins every
// worker in registration order; Shutdown is always the last envelope a
// worker processes. Resources registered via OnShutdown are released
// after every worker has exited, then further Send/Ask calls fail with
// ErrRuntimeStopped.
func (m *Manager) End() {
	m.mu.RLock()
	procs := make([]*process, len(m.order))
	for i, name := range m.order {
		procs[i] = m.actors[name]
	}
	hooks := append([]func(){}, m.hooks...)
	m.mu.RUnlock()

	for _, p := range procs {
		p.mailbox.enqueue(&Envelope{Payload: Shutdown{}})
	}
	for _, p := range procs {
		<-p.done
	}

	m.stopped.Store(true)

	for _, hook := range hooks {
		hook()
	}
}

// Resolve returns the local Reference registered under name, if any. Used
// by the inbound transport to address a decoded frame's receiver.
func (m *Manager) Resolve(name string) (*Reference, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.actors[name]
	if !ok {
		return nil, false
	}
	return p.ref, true
}

// GetHandle returns the Manager's back-handle, the capability actors use
// to trip the termination latch.
func (m *Manager) GetHandle() *ManagerHandle {
	return m.handle
}

// OnShutdown registers a cleanup hook run once, after every worker has
// joined in End, in registration order. Transports bind their Close here
// instead of the Manager importing the remote package.
func (m *Manager) OnShutdown(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// ManagerHandle is the back-handle any actor can use to request
// process-wide termination. Handlers reach it through
// Context.Manager().GetHandle() (see context.go).
type ManagerHandle struct {
	manager *Manager
	once    sync.Once
	done    chan struct{}
}

// Terminate trips the latch that Manager.Run blocks on. Idempotent.
func (h *ManagerHandle) Terminate() {
	h.once.Do(func() {
		close(h.done)
	})
}
