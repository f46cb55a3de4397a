package domain

// Confidence is a discrete trust label derived from the top retrieval score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Score thresholds for the confidence mapping. Both bounds are inclusive.
const (
	highScoreThreshold   = 0.8
	mediumScoreThreshold = 0.6
)

// maxEvidence bounds how many retrieved chunks back a generated answer.
const maxEvidence = 3

// Classify maps a ranked retrieval result list to a confidence level and an
// evidence trail (the paths of the top min(3, n) chunks, in rank order).
// The list is trusted as already ranked; it is never re-sorted. An empty
// list always yields ConfidenceLow with empty evidence.
func Classify(ranked []RetrievedChunk) (Confidence, []string) {
	if len(ranked) == 0 {
		return ConfidenceLow, []string{}
	}

	evidence := make([]string, 0, maxEvidence)
	for i, c := range ranked {
		if i == maxEvidence {
			break
		}
		evidence = append(evidence, c.Path)
	}

	switch top := ranked[0].Score; {
	case top >= highScoreThreshold:
		return ConfidenceHigh, evidence
	case top >= mediumScoreThreshold:
		return ConfidenceMedium, evidence
	default:
		return ConfidenceLow, evidence
	}
}

// TopEvidence returns the top min(3, n) chunks themselves, for prompt context.
func TopEvidence(ranked []RetrievedChunk) []RetrievedChunk {
	if len(ranked) > maxEvidence {
		return ranked[:maxEvidence]
	}
	return ranked
}
