package contacts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContactList(t *testing.T) {
	f := NewConsoleFormatter()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No contacts found", f.FormatContactList(nil))
	})

	t.Run("tree layout", func(t *testing.T) {
		out := f.FormatContactList([]Contact{
			{ID: "1", FirstName: "Ada", LastName: "Lovelace", JobTitle: "CEO", Company: Company{Name: "Acme"}, Email: "ada@acme.com"},
			{ID: "2", FirstName: "Grace", LastName: "Hopper", CompanyName: "Navy", HasMoved: true},
		})

		assert.Contains(t, out, "Contacts (2):")
		assert.Contains(t, out, "├── Ada Lovelace [1]\n│   Title: CEO\n│   Company: Acme\n│   Email: ada@acme.com\n")
		assert.Contains(t, out, "╰── Grace Hopper [2]\n    Company: Navy\n    Has moved\n")
	})

	t.Run("singular header", func(t *testing.T) {
		out := f.FormatContactList([]Contact{{FirstName: "Ada"}})
		assert.Contains(t, out, "Contact (1):")
	})
}

func TestFormatHasMoved(t *testing.T) {
	f := NewConsoleFormatter()

	assert.Equal(t, "No people to check", f.FormatHasMoved(BatchHasMovedResult{}))

	out := f.FormatHasMoved(BatchHasMovedResult{
		Requested: 3,
		Results: []HasMoved{
			{PersonID: "1", Found: true, Contact: Contact{HasMoved: true, JobTitle: "CTO"}},
			{PersonID: "2"},
		},
		Failed: []EnrichError{{PersonID: "3", Err: errors.New("boom")}},
	})

	assert.Contains(t, out, "(3 requested)")
	assert.Contains(t, out, "├── 1: moved\n│   Title: CTO\n")
	assert.Contains(t, out, "├── 2: not matched\n")
	assert.Contains(t, out, "╰── 3: failed\n    Error: boom\n")
}
