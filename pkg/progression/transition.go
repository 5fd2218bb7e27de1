package progression

import "encoding/json"

// Passed applies the pass policy. Out of ten or more, seven correct passes.
// Smaller assessments need 70 percent. An empty assessment never passes.
func Passed(score, outOf float64) bool {
	if outOf <= 0 {
		return false
	}
	if outOf >= 10 {
		return score >= 7
	}
	return score/outOf*100 >= 70.0
}

// ApplyEvaluation records an assessment outcome on the item at index and
// returns the updated copy. A pass completes the item and makes the next one
// pending. A fail marks the item failed and leaves the rest alone.
func ApplyEvaluation(items []Item, index int, passed bool, result json.RawMessage) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return nil, ErrIndexOutOfRange
	}

	out := cloneItems(items)
	out[index].AssessmentResult = result
	if !passed {
		out[index].Status = StatusFailed
		return out, nil
	}

	out[index].Status = StatusCompleted
	if index+1 < len(out) {
		out[index+1].Status = StatusPending
	}
	return out, nil
}

func SetNotes(items []Item, index int, notes string) ([]Item, error) {
	if index < 0 || index >= len(items) {
		return nil, ErrIndexOutOfRange
	}
	out := cloneItems(items)
	out[index].Notes = notes
	return out, nil
}
