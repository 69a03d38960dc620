package contacts

import (
	"fmt"
	"strings"
)

// ConsoleFormatter provides console output formatting for contacts
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// FormatContactList formats a list of contacts for console display
func (f *ConsoleFormatter) FormatContactList(list []Contact) string {
	if len(list) == 0 {
		return "No contacts found"
	}

	var sb strings.Builder

	sb.WriteString("\nContact")
	if len(list) != 1 {
		sb.WriteString("s")
	}
	fmt.Fprintf(&sb, " (%d):\n\n", len(list))

	for i, c := range list {
		isLast := i == len(list)-1
		prefix, indent := branch(isLast)

		name := c.FullName()
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&sb, "%s── %s", prefix, name)
		if c.ID != "" {
			fmt.Fprintf(&sb, " [%s]", c.ID)
		}
		sb.WriteString("\n")

		if c.JobTitle != "" {
			fmt.Fprintf(&sb, "%sTitle: %s\n", indent, c.JobTitle)
		}
		if org := c.Organization(); org != "" {
			fmt.Fprintf(&sb, "%sCompany: %s\n", indent, org)
		}
		if c.Email != "" {
			fmt.Fprintf(&sb, "%sEmail: %s\n", indent, c.Email)
		}
		if c.ContactAccuracyScore > 0 {
			fmt.Fprintf(&sb, "%sAccuracy: %d\n", indent, c.ContactAccuracyScore)
		}
		if c.HasMoved {
			fmt.Fprintf(&sb, "%sHas moved\n", indent)
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

// FormatHasMoved formats the outcome of a has-moved batch
func (f *ConsoleFormatter) FormatHasMoved(result BatchHasMovedResult) string {
	if result.Requested == 0 {
		return "No people to check"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nHas-moved check (%d requested):\n\n", result.Requested)

	total := len(result.Results) + len(result.Failed)
	n := 0
	for _, r := range result.Results {
		n++
		prefix, indent := branch(n == total)

		status := "not matched"
		switch {
		case r.Moved():
			status = "moved"
		case r.Found:
			status = "still at company"
		}
		fmt.Fprintf(&sb, "%s── %s: %s\n", prefix, r.PersonID, status)

		if r.Found {
			if r.Contact.JobTitle != "" {
				fmt.Fprintf(&sb, "%sTitle: %s\n", indent, r.Contact.JobTitle)
			}
			if r.Contact.Email != "" {
				fmt.Fprintf(&sb, "%sEmail: %s\n", indent, r.Contact.Email)
			}
			if r.Contact.CompanyWebsite != "" {
				fmt.Fprintf(&sb, "%sWebsite: %s\n", indent, r.Contact.CompanyWebsite)
			}
		}
		if n != total {
			sb.WriteString("│\n")
		}
	}

	for _, e := range result.Failed {
		n++
		prefix, indent := branch(n == total)
		fmt.Fprintf(&sb, "%s── %s: failed\n", prefix, e.PersonID)
		fmt.Fprintf(&sb, "%sError: %v\n", indent, e.Err)
		if n != total {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func branch(isLast bool) (prefix, indent string) {
	if isLast {
		return "╰", "    "
	}
	return "├", "│   "
}
