package synthesis

import (
	"strings"

	"github.com/elijah-alonzo/ai-poc/internal/domain"
)

const answerInstruction = "You are an assistant answering questions about a professional profile. " +
	"Answer using only the information in the provided context. " +
	"If the context does not contain the answer, say that you don't know."

const articleInstruction = "You are a writer producing a narrative article about a professional. " +
	"Write a complete article with a title, an introduction, a body and a conclusion, " +
	"grounded in the provided context where available."

// noContextPlaceholder stands in for the context block when retrieval found
// nothing; articles are still generated, just ungrounded.
const noContextPlaceholder = "no context available"

// contextBlock renders the top chunks as one "<path>: <text>" line each.
func contextBlock(chunks []domain.RetrievedChunk) string {
	lines := make([]string, len(chunks))
	for i, c := range chunks {
		lines[i] = c.Path + ": " + c.Text
	}
	return strings.Join(lines, "\n")
}

func answerPrompt(question string, chunks []domain.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	b.WriteString(contextBlock(chunks))
	b.WriteString("\n\nQuestion: ")
	b.WriteString(question)
	return b.String()
}

func articlePrompt(topic string, chunks []domain.RetrievedChunk) string {
	block := noContextPlaceholder
	if len(chunks) > 0 {
		block = contextBlock(chunks)
	}

	var b strings.Builder
	b.WriteString("Topic: ")
	b.WriteString(topic)
	b.WriteString("\n\nContext:\n")
	b.WriteString(block)
	return b.String()
}
