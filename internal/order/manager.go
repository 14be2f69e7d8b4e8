package order

// Manager holds pending orders first in, first out. It is not safe for
// concurrent use.
type Manager struct {
	queue []*Order
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Add(o *Order) {
	m.queue = append(m.queue, o)
}

// Next removes and returns the oldest pending order. ok is false when the
// queue is empty.
func (m *Manager) Next() (o *Order, ok bool) {
	if len(m.queue) == 0 {
		return nil, false
	}
	o = m.queue[0]
	m.queue[0] = nil
	m.queue = m.queue[1:]
	return o, true
}

func (m *Manager) Len() int {
	return len(m.queue)
}
