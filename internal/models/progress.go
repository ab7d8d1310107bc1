package models

// EstimationProgress is emitted once per commit while a branch is being estimated.
type EstimationProgress struct {
	Current int // commits finished so far, 1-based
	Total   int
	Record  CommitRecord
}
