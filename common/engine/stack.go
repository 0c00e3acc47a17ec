// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"fmt"
)

// stack represents a stack of immutable items used within the machine.  The
// top of the stack is the end of the slice.
type stack struct {
	stk []StackItem
}

// Depth returns the number of items on the stack.
func (s *stack) Depth() int {
	return len(s.stk)
}

// Push adds the given item to the top of the stack.
//
// Stack transformation: [... x1 x2] -> [... x1 x2 item]
func (s *stack) Push(item StackItem) {
	s.stk = append(s.stk, item)
}

// Pop removes and returns the top item of the stack.
//
// Stack transformation: [... x1 x2 x3] -> [... x1 x2]
func (s *stack) Pop() (StackItem, error) {
	if len(s.stk) == 0 {
		return StackItem{}, scriptError(ErrStackUnderflow,
			"attempt to pop from an empty stack")
	}

	item := s.stk[len(s.stk)-1]
	s.stk[len(s.stk)-1] = StackItem{}
	s.stk = s.stk[:len(s.stk)-1]
	return item, nil
}

// Peek returns the Nth item on the stack without removing it.  Index 0 is the
// top of the stack.
func (s *stack) Peek(idx int) (StackItem, error) {
	sz := len(s.stk)
	if idx < 0 || idx >= sz {
		str := fmt.Sprintf("index %d is invalid for stack size %d", idx, sz)
		return StackItem{}, scriptError(ErrStackUnderflow, str)
	}
	return s.stk[sz-idx-1], nil
}

// DupN duplicates the top N items on the stack.
//
// Stack transformation: DupN(1): [... x1 x2] -> [... x1 x2 x2]
func (s *stack) DupN(n int) error {
	if n < 1 || n > len(s.stk) {
		str := fmt.Sprintf("attempt to dup %d stack items with %d present",
			n, len(s.stk))
		return scriptError(ErrStackUnderflow, str)
	}

	// Iteratively duplicate the value n-1 down the stack n times.  This
	// leaves an in-order duplicate of the top n items on the stack.
	for i := n; i > 0; i-- {
		item, err := s.Peek(n - 1)
		if err != nil {
			return err
		}
		s.Push(item.Clone())
	}
	return nil
}

// Items returns a deep copy of the stack, bottom first.
func (s *stack) Items() []StackItem {
	items := make([]StackItem, len(s.stk))
	for i := range s.stk {
		items[i] = s.stk[i].Clone()
	}
	return items
}

// Reset drops every item.
func (s *stack) Reset() {
	s.stk = nil
}

// String returns the stack in a readable format.
func (s *stack) String() string {
	return formatItems(s.stk)
}
