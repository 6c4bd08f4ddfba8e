package domain

// WorkList maps workflows to the process names to compare and the file pair
// each one comes from. Workflows and process names keep insertion order.
// A (workflow, process) key is registered at most once; the first wins.
type WorkList struct {
	order     []WorkflowName
	processes map[WorkflowName]*processSet
}

type processSet struct {
	order []ProcessName
	pairs map[ProcessName]FilePair
}

// NewWorkList returns an empty WorkList.
func NewWorkList() *WorkList {
	return &WorkList{processes: make(map[WorkflowName]*processSet)}
}

// Has reports whether process is already registered for workflow.
func (w *WorkList) Has(workflow WorkflowName, process ProcessName) bool {
	ps, ok := w.processes[workflow]
	if !ok {
		return false
	}
	_, ok = ps.pairs[process]
	return ok
}

// Register records pair for (workflow, process) unless the key already exists.
// It returns false when the key was already taken.
func (w *WorkList) Register(workflow WorkflowName, process ProcessName, pair FilePair) bool {
	ps, ok := w.processes[workflow]
	if !ok {
		ps = &processSet{pairs: make(map[ProcessName]FilePair)}
		w.processes[workflow] = ps
		w.order = append(w.order, workflow)
	}
	if _, taken := ps.pairs[process]; taken {
		return false
	}
	ps.pairs[process] = pair
	ps.order = append(ps.order, process)
	return true
}

// Workflows returns workflow names in registration order.
func (w *WorkList) Workflows() []WorkflowName {
	out := make([]WorkflowName, len(w.order))
	copy(out, w.order)
	return out
}

// Processes returns the process names of workflow in registration order.
func (w *WorkList) Processes(workflow WorkflowName) []ProcessName {
	ps, ok := w.processes[workflow]
	if !ok {
		return nil
	}
	out := make([]ProcessName, len(ps.order))
	copy(out, ps.order)
	return out
}

// Pair returns the file pair registered for (workflow, process).
func (w *WorkList) Pair(workflow WorkflowName, process ProcessName) (FilePair, bool) {
	ps, ok := w.processes[workflow]
	if !ok {
		return FilePair{}, false
	}
	p, ok := ps.pairs[process]
	return p, ok
}

// Len is the number of workflows.
func (w *WorkList) Len() int {
	return len(w.order)
}

// Comparisons is the total number of (workflow, process) entries.
func (w *WorkList) Comparisons() int {
	n := 0
	for _, ps := range w.processes {
		n += len(ps.order)
	}
	return n
}
