package state

import (
	"fmt"

	"github.com/julianstephens/headcount/internal/validation"
)

// UpdateValidationStatus runs validation and updates the warning message
func (m *Model) UpdateValidationStatus() {
	result := validation.New().ValidateRecords(m.Records.All())
	m.ValidationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		// Show count of conflicts
		m.ValidationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.ValidationWarning = ""
	}
}
