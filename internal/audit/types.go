package audit

import "github.com/temirov/confsync/internal/jsonval"

// ValueComparison selects how entry values are compared for drift.
type ValueComparison string

// Supported comparison modes. Script commands are opaque shell strings and
// compare textually; task-runner configurations are structured documents and
// compare structurally, so rewording a command counts as a change while
// reordering a configuration's keys does not.
const (
	CompareAsText       ValueComparison = "text"
	CompareStructurally ValueComparison = "structural"
)

// FileScopedMap pairs an origin label, typically a file path, with one
// key-to-value section extracted from that file. The origin feeds audit
// reporting only and never influences merge or comparison semantics.
type FileScopedMap struct {
	Origin  string
	Entries *jsonval.Object
}

// ChangedEntry records a key whose value in one file diverges from the root.
type ChangedEntry struct {
	Key        string
	Origin     string
	RootValue  any
	FoundValue any
}

// DuplicateGroup records a key defined by two or more files along with every
// contributing origin in encounter order.
type DuplicateGroup struct {
	Key     string
	Origins []string
}

// DependencySection tags which dependency map of the root manifest an unused
// entry belongs to.
type DependencySection string

// Dependency sections audited for unused entries.
const (
	SectionRuntime     DependencySection = "dependencies"
	SectionDevelopment DependencySection = "devDependencies"
)

// UnusedRootEntry records a root dependency no file references.
type UnusedRootEntry struct {
	Name    string
	Version string
	Section DependencySection
}

// SectionAudit aggregates the three drift findings for one audited section.
type SectionAudit struct {
	Missing    []string
	Changed    []ChangedEntry
	Duplicated []DuplicateGroup
}

// FileFailure records a fragment file that could not be parsed. Failures are
// fail-soft: the file is skipped and the remaining files are still audited.
type FileFailure struct {
	Origin string
	Reason string
}

// Report aggregates every audit finding for rendering.
type Report struct {
	UnusedDependencies []UnusedRootEntry
	Scripts            SectionAudit
	TaskRunner         SectionAudit
	Failures           []FileFailure
}

// Empty reports whether the report carries no findings at all.
func (report Report) Empty() bool {
	return len(report.UnusedDependencies) == 0 &&
		report.Scripts.empty() &&
		report.TaskRunner.empty() &&
		len(report.Failures) == 0
}

func (sectionAudit SectionAudit) empty() bool {
	return len(sectionAudit.Missing) == 0 && len(sectionAudit.Changed) == 0 && len(sectionAudit.Duplicated) == 0
}
