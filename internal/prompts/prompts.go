// Package prompts holds the prompt text sent to the text-generation endpoint.
package prompts

import (
	"fmt"
	"strings"

	"github.com/davey/lotvoice/internal/domain"
)

// WriterSystemPrompt defines the voiceover writer persona and the output
// contract. The response must be strict JSON so the variants can be parsed
// without post-processing.
const WriterSystemPrompt = `You are a veteran blue-collar vehicle-sales voiceover writer. Dealers hand you
a spec sheet and you turn it into short-form video narration that sells.

Rules:
- Write EXACTLY three variants of the voiceover script, one per style:
  "gritty", "friendly", "high-energy".
- Each voiceover is 85-120 words, spoken-word phrasing, no stage directions
  inside the voiceover text itself.
- Each variant includes 3-6 "beats": short scene/timing cues for the video
  editor, in order.
- Each variant includes up to 6 hashtags, lowercase, no spaces.
- Only mention details that appear on the spec sheet. Never invent mileage,
  prices, or warranty terms.

Respond with strict JSON only, no markdown fences, no commentary:
{"variants":[{"style":"gritty","voiceover":"...","beats":["..."],"hashtags":["#..."]}, ...]}`

// WriterUserPrompt renders the spec sheet into the user message.
func WriterUserPrompt(specs *domain.Specs) string {
	var b strings.Builder
	b.WriteString("Spec sheet for the listing:\n")

	writeLine := func(label, value string) {
		if strings.TrimSpace(value) != "" {
			fmt.Fprintf(&b, "- %s: %s\n", label, value)
		}
	}

	writeLine("Make", specs.Make)
	writeLine("Model", specs.Model)
	writeLine("Year", specs.Year)
	writeLine("Trim", specs.Trim)
	writeLine("Engine", specs.Engine)
	writeLine("Transmission", specs.Transmission)
	writeLine("Mileage", specs.Mileage)
	writeLine("Axle configuration", specs.Axle)
	writeLine("Sleeper cab", specs.Sleeper)
	writeLine("Technology package", specs.Tech)
	writeLine("Selling points", specs.SellingPoints)
	writeLine("Use case", specs.UseCase)
	writeLine("Location", specs.Location)
	writeLine("Operating range", specs.Range)
	writeLine("Contact", specs.Contact)

	b.WriteString("\nWrite the three variants now.")
	return b.String()
}
