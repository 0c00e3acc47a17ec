package application

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ark-network/scriptsim/common/engine"
	"github.com/google/uuid"
)

type session struct {
	lock      *sync.Mutex
	id        string
	machine   *engine.Machine
	createdAt time.Time
}

type sessionsMap struct {
	lock     *sync.RWMutex
	max      int
	sessions map[string]*session
}

func newSessionsMap(maxSessions int) *sessionsMap {
	lock := &sync.RWMutex{}
	return &sessionsMap{lock, maxSessions, make(map[string]*session)}
}

func (m *sessionsMap) len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return len(m.sessions)
}

func (m *sessionsMap) create(verifier engine.Verifier) (*session, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if len(m.sessions) >= m.max {
		return nil, ErrTooManySessions
	}

	s := &session{
		lock:      &sync.Mutex{},
		id:        uuid.New().String(),
		machine:   engine.NewMachine(engine.WithVerifier(verifier)),
		createdAt: time.Now(),
	}
	m.sessions[s.id] = s
	return s, nil
}

func (m *sessionsMap) get(id string) (*session, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, errSessionNotFound{id}
	}
	return s, nil
}

func (m *sessionsMap) delete(id string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return errSessionNotFound{id}
	}
	delete(m.sessions, id)
	return nil
}

// ids returns the open session ids, oldest first.
func (m *sessionsMap) ids() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	sessions := make([]*session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].createdAt.Before(sessions[j].createdAt)
	})

	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.id)
	}
	return ids
}

// isArithmetic reports whether op leaves a number on top of the stack.
func isArithmetic(op string) bool {
	return op == "OP_ADD"
}

func itemView(item engine.StackItem, showDecimal bool) ItemView {
	view := ItemView{
		Kind:    item.Kind().String(),
		Value:   item.String(),
		IsError: item.IsError(),
	}
	if showDecimal && item.Kind() == engine.ItemBytes {
		if n, err := item.Number(); err == nil {
			view.Decimal = strconv.FormatInt(n, 10)
		}
	}
	return view
}

func stackView(m *engine.Machine, showDecimal bool) StackView {
	lastOp := m.LastOperation()
	decimal := showDecimal && isArithmetic(lastOp)

	stack := m.Stack()
	items := make([]ItemView, 0, len(stack))
	for _, item := range stack {
		items = append(items, itemView(item, decimal))
	}

	view := StackView{
		Items:         items,
		LastOperation: lastOp,
	}
	if pending := m.Pending(); pending != nil {
		view.PendingRequest = pending.ID
	}
	return view
}
