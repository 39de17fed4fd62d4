package rules

import "regexp"

// requirePatternFor builds the regex IsRequireOf uses to recognize
// require("<module>") and require("node:<module>") for a builtin module.
func requirePatternFor(module string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:node:)?` + regexp.QuoteMeta(module) + `$`)
}

var (
	childProcessRequirePattern = requirePatternFor("child_process")
	vmRequirePattern           = requirePatternFor("vm")
	inspectorRequirePattern    = requirePatternFor("inspector")
	nativeAddonRequirePattern  = regexp.MustCompile(`\.node$`)
)
