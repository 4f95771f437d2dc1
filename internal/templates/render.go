package templates

import "regexp"

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Render substitutes params into the template's user prompt. The system prompt
// passes through untouched. Placeholders without a matching param stay literal
// so a partially filled prompt still renders. Render never fails.
func Render(tpl Template, params map[string]string) Rendered {
	userPrompt := placeholderPattern.ReplaceAllStringFunc(tpl.UserPromptTemplate, func(match string) string {
		key := match[1 : len(match)-1]
		if value, ok := params[key]; ok {
			return value
		}
		return match
	})
	return Rendered{
		SystemPrompt: tpl.SystemPrompt,
		UserPrompt:   userPrompt,
	}
}

// MissingParams reports placeholders in the user prompt that params does not cover.
func MissingParams(tpl Template, params map[string]string) []string {
	var missing []string
	seen := map[string]bool{}
	for _, match := range placeholderPattern.FindAllStringSubmatch(tpl.UserPromptTemplate, -1) {
		key := match[1]
		if seen[key] {
			continue
		}
		seen[key] = true
		if _, ok := params[key]; !ok {
			missing = append(missing, key)
		}
	}
	return missing
}
