package generator

import (
	"fmt"
	"strings"
)

// MaxPromptSamples caps the writing samples quoted in one prompt.
const MaxPromptSamples = 3

const systemPrompt = `You write LinkedIn comments on behalf of the user.
Write in the first person, as the user, replying directly to the post.
Never use hashtags. Never mention that you are an assistant.
Output only the comment text.`

// CommentSpec describes the comment to write.
type CommentSpec struct {
	Tone        string
	Length      string
	PostContent string
	// Samples are the user's own writing, used as style references.
	Samples []string
}

// LengthGuidance maps a preferred length to a sentence budget.
func LengthGuidance(length string) string {
	switch length {
	case "short":
		return "about one sentence"
	case "long":
		return "four to five sentences"
	default:
		return "two to three sentences"
	}
}

// BuildCommentPrompt renders the prompt for one comment.
func BuildCommentPrompt(in CommentSpec) Prompt {
	tone := in.Tone
	if tone == "" {
		tone = "Professional"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Tone: %s\n", tone)
	fmt.Fprintf(&b, "Length: %s\n", LengthGuidance(in.Length))

	samples := in.Samples
	if len(samples) > MaxPromptSamples {
		samples = samples[:MaxPromptSamples]
	}
	n := 0
	for _, s := range samples {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if n == 0 {
			b.WriteString("\nMatch the voice of these samples of the user's writing:\n")
		}
		n++
		fmt.Fprintf(&b, "%d. %s\n", n, s)
	}

	b.WriteString("\nPost:\n")
	b.WriteString(strings.TrimSpace(in.PostContent))
	b.WriteString("\n")

	return Prompt{System: systemPrompt, User: b.String()}
}
