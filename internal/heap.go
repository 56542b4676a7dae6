package internal

// PriorityHeap buckets pending effect runs by nesting depth.
// Entries of the same depth keep insertion order.
type PriorityHeap struct {
	min int
	max int

	nodes []*heapNode // [depth]head

	lookup map[*Computation]*heapNode // for O(1) removal
}

type heapNode struct {
	node *Computation

	next *heapNode
	prev *heapNode
}

func NewHeap() *PriorityHeap {
	return &PriorityHeap{
		min:    0,
		max:    0,
		nodes:  make([]*heapNode, 16),
		lookup: make(map[*Computation]*heapNode),
	}
}

func (h *PriorityHeap) Len() int {
	return len(h.lookup)
}

func (h *PriorityHeap) Insert(node *Computation) {
	if node.inHeap || node.disposed {
		return
	}
	node.inHeap = true

	depth := node.depth
	for depth >= len(h.nodes) {
		h.nodes = append(h.nodes, make([]*heapNode, len(h.nodes))...)
	}

	if len(h.lookup) == 0 {
		h.min, h.max = depth, depth
	}

	entry := &heapNode{node: node}
	h.lookup[node] = entry

	if h.nodes[depth] == nil {
		h.nodes[depth] = entry
		entry.prev = entry // loop to self
		entry.next = nil
	} else {
		head := h.nodes[depth]
		tail := head.prev

		tail.next = entry
		entry.prev = tail
		entry.next = nil
		head.prev = entry
	}

	if depth < h.min {
		h.min = depth
	}
	if depth > h.max {
		h.max = depth
	}
}

func (h *PriorityHeap) Remove(node *Computation) {
	if !node.inHeap {
		return
	}
	node.inHeap = false

	entry, ok := h.lookup[node]
	if !ok {
		return
	}
	delete(h.lookup, node)

	depth := node.depth

	// single node
	if entry.prev == entry {
		h.nodes[depth] = nil
		entry.next = nil
		return
	}

	// multiple nodes
	head := h.nodes[depth]
	if entry == head {
		h.nodes[depth] = entry.next
	} else {
		entry.prev.next = entry.next
	}

	next := entry.next
	if next == nil {
		next = h.nodes[depth]
	}
	next.prev = entry.prev

	entry.prev = entry
	entry.next = nil
}

// Drain pops the shallowest entry and processes it until the heap is empty.
// Entries inserted by `process` are picked up, including shallower ones.
func (h *PriorityHeap) Drain(process func(*Computation)) {
	for {
		node := h.popMin()
		if node == nil {
			return
		}

		process(node)
	}
}

// Clear drops every pending entry.
func (h *PriorityHeap) Clear() {
	for node := range h.lookup {
		node.inHeap = false
	}

	clear(h.nodes)
	clear(h.lookup)
	h.min, h.max = 0, 0
}

func (h *PriorityHeap) popMin() *Computation {
	if len(h.lookup) == 0 {
		h.min, h.max = 0, 0
		return nil
	}

	for ; h.min <= h.max; h.min++ {
		if entry := h.nodes[h.min]; entry != nil {
			node := entry.node
			h.Remove(node)
			return node
		}
	}

	return nil
}
