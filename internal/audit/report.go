package audit

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/temirov/confsync/internal/jsonval"
)

const (
	unusedSectionHeaderConstant       = "Unused dependencies:\n"
	scriptsSectionHeaderConstant      = "Scripts audit:\n"
	taskRunnerSectionHeaderConstant   = "Task-runner audit:\n"
	failuresSectionHeaderConstant     = "Skipped files:\n"
	missingSubsectionHeaderConstant   = "  missing from all files:\n"
	changedSubsectionHeaderConstant   = "  changed:\n"
	duplicateSubsectionHeaderConstant = "  duplicated:\n"
	unusedEntryTemplateConstant       = "  %q: %q,%s\n"
	developmentSectionTagConstant     = " (devDependencies)"
	missingEntryTemplateConstant      = "    %s\n"
	changedEntryTemplateConstant      = "    %s (%s): root %s found %s\n"
	duplicateEntryTemplateConstant    = "    %s: %s\n"
	failureEntryTemplateConstant      = "  %s: %s\n"
	cleanReportMessageConstant        = "No drift detected.\n"
	originListSeparatorConstant       = ", "
	sectionSeparatorConstant          = "\n"
)

// Render writes the human-readable audit report. Sections with no findings are
// omitted; a report with no findings at all prints a single clean-state line.
func Render(writer io.Writer, report Report) error {
	if report.Empty() {
		_, writeError := io.WriteString(writer, cleanReportMessageConstant)
		return writeError
	}

	var builder strings.Builder

	if len(report.UnusedDependencies) > 0 {
		builder.WriteString(unusedSectionHeaderConstant)
		for _, unusedEntry := range report.UnusedDependencies {
			sectionTag := ""
			if unusedEntry.Section == SectionDevelopment {
				sectionTag = developmentSectionTagConstant
			}
			builder.WriteString(fmt.Sprintf(unusedEntryTemplateConstant, unusedEntry.Name, unusedEntry.Version, sectionTag))
		}
		builder.WriteString(sectionSeparatorConstant)
	}

	renderSection(&builder, scriptsSectionHeaderConstant, report.Scripts)
	renderSection(&builder, taskRunnerSectionHeaderConstant, report.TaskRunner)

	if len(report.Failures) > 0 {
		builder.WriteString(failuresSectionHeaderConstant)
		for _, failure := range report.Failures {
			builder.WriteString(fmt.Sprintf(failureEntryTemplateConstant, failure.Origin, failure.Reason))
		}
		builder.WriteString(sectionSeparatorConstant)
	}

	_, writeError := io.WriteString(writer, strings.TrimSuffix(builder.String(), sectionSeparatorConstant))
	return writeError
}

func renderSection(builder *strings.Builder, sectionHeader string, sectionAudit SectionAudit) {
	if sectionAudit.empty() {
		return
	}

	builder.WriteString(sectionHeader)

	if len(sectionAudit.Missing) > 0 {
		builder.WriteString(missingSubsectionHeaderConstant)
		for _, missingKey := range sectionAudit.Missing {
			builder.WriteString(fmt.Sprintf(missingEntryTemplateConstant, missingKey))
		}
	}

	if len(sectionAudit.Changed) > 0 {
		builder.WriteString(changedSubsectionHeaderConstant)
		for _, changedEntry := range sectionAudit.Changed {
			builder.WriteString(fmt.Sprintf(
				changedEntryTemplateConstant,
				changedEntry.Key,
				changedEntry.Origin,
				formatEntryValue(changedEntry.RootValue),
				formatEntryValue(changedEntry.FoundValue),
			))
		}
	}

	if len(sectionAudit.Duplicated) > 0 {
		duplicateGroups := make([]DuplicateGroup, len(sectionAudit.Duplicated))
		copy(duplicateGroups, sectionAudit.Duplicated)
		sort.SliceStable(duplicateGroups, func(firstIndex int, secondIndex int) bool {
			return duplicateGroups[firstIndex].Key < duplicateGroups[secondIndex].Key
		})

		builder.WriteString(duplicateSubsectionHeaderConstant)
		for _, duplicateGroup := range duplicateGroups {
			builder.WriteString(fmt.Sprintf(
				duplicateEntryTemplateConstant,
				duplicateGroup.Key,
				strings.Join(duplicateGroup.Origins, originListSeparatorConstant),
			))
		}
	}

	builder.WriteString(sectionSeparatorConstant)
}

func formatEntryValue(value any) string {
	if textValue, isText := value.(string); isText {
		return fmt.Sprintf("%q", textValue)
	}
	return jsonval.Compact(value)
}
