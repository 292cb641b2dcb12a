package renderer

// Progress reports how many pixels of a partition are finished
type Progress struct {
	PartitionID int
	Done        int
	Total       int
}

// reportProgress delivers a progress update without ever blocking the renderer.
// Updates are dropped when nobody listens or the channel is full.
func reportProgress(progress chan<- Progress, update Progress) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
