package batch

// Selection is the slice of the selection service the workflow reads.
// Clearing after success is the success callback's job, not the workflow's.
type Selection interface {
	Ordered() []string
	Count() int
	HasSelection() bool
}
