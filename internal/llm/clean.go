package llm

import "strings"

var fenceReplacer = strings.NewReplacer(
	"```json", "",
	"```", "",
	"<tool-use></tool-use>", "",
)

// CleanJSON strips markdown code fences and empty tool-use tags that models wrap around JSON.
func CleanJSON(s string) string {
	return strings.TrimSpace(fenceReplacer.Replace(s))
}
