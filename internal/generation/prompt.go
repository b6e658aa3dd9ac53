package generation

import (
	"fmt"

	"github.com/phrazzld/excuse-api/internal/domain"
)

// toneDescriptions maps known tones to the phrase embedded in the prompt.
// Unknown tones fall back to defaultToneDescription rather than failing;
// this leniency is deliberate.
var toneDescriptions = map[domain.Tone]string{
	domain.ToneSincere:   "professional and apologetic",
	domain.TonePlayful:   "light-hearted and humorous",
	domain.ToneCorporate: "formal and business-appropriate",
}

const defaultToneDescription = "professional"

// seriousnessDescriptions maps the validated 1-5 scale to a phrase.
// Seriousness is bounds-checked at request construction, so lookups on
// valid requests always hit; the default exists for direct callers.
var seriousnessDescriptions = map[int]string{
	1: "very casual and silly",
	2: "casual and light",
	3: "balanced and moderate",
	4: "serious and professional",
	5: "very serious and formal",
}

const defaultSeriousnessDescription = "balanced and moderate"

// BuildPrompt renders the instruction block sent to the model. It is a pure
// function: identical requests yield byte-identical prompts, which keeps it
// testable without invoking any external service.
//
// The rendered block embeds a strict output contract (a bare JSON object
// with exactly the keys "subject" and "body") so the model is biased toward
// emitting something the normalization cascade settles on its first pass.
func BuildPrompt(req *domain.ExcuseRequest) string {
	toneDesc, ok := toneDescriptions[req.Tone]
	if !ok {
		toneDesc = defaultToneDescription
	}

	seriousnessDesc, ok := seriousnessDescriptions[req.Seriousness]
	if !ok {
		seriousnessDesc = defaultSeriousnessDescription
	}

	return fmt.Sprintf(`You are an expert at writing professional excuse emails. Generate a JSON response with a subject line and email body for the following scenario:

Category: %s
Tone: %s
Seriousness: %s
Recipient: %s
Sender: %s
ETA/When: %s

Requirements:
- Write in a %s tone
- Make it %s in nature
- Include appropriate greeting and sign-off
- Be specific about the timing (ETA/When)
- Keep it professional but match the requested tone
- Structure: greeting → apology/excuse → reason → next step → sign-off

You must respond with ONLY a valid JSON object in this exact format:
{
    "subject": "Your subject line here",
    "body": "Dear %s,\n\n[Your email body here]\n\nBest regards,\n%s"
}

CRITICAL REQUIREMENTS:
- Return ONLY the JSON object
- No explanations, reasoning, or additional text
- No markdown formatting
- No code blocks
- Just the raw JSON object`,
		req.Category,
		toneDesc,
		seriousnessDesc,
		req.RecipientName,
		req.SenderName,
		req.EtaWhen,
		toneDesc,
		seriousnessDesc,
		req.RecipientName,
		req.SenderName,
	)
}
