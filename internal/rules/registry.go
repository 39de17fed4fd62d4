package rules

// DefaultRules returns the full source-mode rule set, SEC001 through
// SEC010, in the fixed order spec.md §4.F lists them (SEC011 is the
// textual lifecycle-script rule and is run separately through
// ScanLifecycleScripts, not through this NodeVisitor-based set).
func DefaultRules() []Rule {
	return []Rule{
		SEC001,
		SEC002,
		SEC003,
		SEC005,
		SEC006,
		SEC007,
		SEC008,
		SEC009,
		SEC010,
	}
}
