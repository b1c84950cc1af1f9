package ir

// Reachable marks the blocks reachable from the entry, indexed by BlockID.
func (f *Func) Reachable() []bool {
	reachable := make([]bool, len(f.blocks))
	if len(f.blocks) == 0 {
		return reachable
	}
	queue := []BlockID{f.Entry()}
	reachable[f.Entry()] = true
	for len(queue) > 0 {
		b := queue[0]
		queue = queue[1:]
		for _, s := range f.Succs(b) {
			if !reachable[s] {
				reachable[s] = true
				queue = append(queue, s)
			}
		}
	}
	return reachable
}

// PostOrder returns the blocks reachable from the entry in depth-first
// postorder: every block comes after all of its successors except those
// reached through a back edge.
func (f *Func) PostOrder() []BlockID {
	if len(f.blocks) == 0 {
		return nil
	}

	type frame struct {
		b    BlockID
		next int // index of the next successor to visit
	}
	visited := make([]bool, len(f.blocks))
	order := make([]BlockID, 0, len(f.blocks))
	stack := []frame{{b: f.Entry()}}
	visited[f.Entry()] = true

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		succs := f.Succs(top.b)
		if top.next < len(succs) {
			s := succs[top.next]
			top.next++
			if !visited[s] {
				visited[s] = true
				stack = append(stack, frame{b: s})
			}
			continue
		}
		order = append(order, top.b)
		stack = stack[:len(stack)-1]
	}
	return order
}
