package domain

// SynthesisResult is the outcome of one answer or article generation.
type SynthesisResult struct {
	Answer     string
	Confidence Confidence
	// Evidence holds the source paths of the chunks actually shown to the
	// generator, in rank order. Preserved even when generation fails.
	Evidence []string
}
