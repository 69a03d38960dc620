package contacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID is a ZoomInfo identifier. The API emits ids as numbers on search
// results and as strings on some enrich payloads; both decode here.
type ID string

// UnmarshalJSON accepts a JSON number or string
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// MovedFlag is the personHasMoved output field. ZoomInfo returns it either
// as a boolean or as a "Yes"/"No" style string.
type MovedFlag bool

// UnmarshalJSON accepts booleans and the common string spellings
func (m *MovedFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = false
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "y", "true", "1":
			*m = true
		case "", "no", "n", "false", "0":
			*m = false
		default:
			return fmt.Errorf("invalid personHasMoved value %q", s)
		}
		return nil
	default:
		b, err := strconv.ParseBool(string(data))
		if err != nil {
			return fmt.Errorf("invalid personHasMoved value %s: %w", data, err)
		}
		*m = MovedFlag(b)
		return nil
	}
}

// Company is the nested company object on search results
type Company struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Contact represents a person record returned by search or enrich endpoints.
// Search results fill the nested Company; enrich results fill the flat
// company fields instead.
type Contact struct {
	ID                   ID        `json:"id"`
	FirstName            string    `json:"firstName,omitempty"`
	MiddleName           string    `json:"middleName,omitempty"`
	LastName             string    `json:"lastName,omitempty"`
	JobTitle             string    `json:"jobTitle,omitempty"`
	Email                string    `json:"email,omitempty"`
	HasEmail             bool      `json:"hasEmail,omitempty"`
	ContactAccuracyScore int       `json:"contactAccuracyScore,omitempty"`
	Company              Company   `json:"company,omitzero"`
	CompanyID            ID        `json:"companyId,omitempty"`
	CompanyName          string    `json:"companyName,omitempty"`
	CompanyWebsite       string    `json:"companyWebsite,omitempty"`
	HasMoved             MovedFlag `json:"personHasMoved,omitempty"`
}

// FullName joins the name parts that are present
func (c Contact) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.FirstName, c.MiddleName, c.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Organization returns the company name from whichever field the endpoint filled
func (c Contact) Organization() string {
	if c.Company.Name != "" {
		return c.Company.Name
	}
	return c.CompanyName
}

// OrganizationID returns the company id from whichever field the endpoint filled
func (c Contact) OrganizationID() ID {
	if c.Company.ID != "" {
		return c.Company.ID
	}
	return c.CompanyID
}

// ContactSearch is a single-match contact lookup. InputFields are the
// matchPersonInput criteria, OutputFields the attributes to return.
type ContactSearch struct {
	InputFields  []map[string]any
	OutputFields []string
}

// CompanySearch finds contacts at a company whose title matches a keyword
type CompanySearch struct {
	CompanyName     string
	JobTitleKeyword string
}

// HasMoved is the outcome of a has-moved enrichment for one person
type HasMoved struct {
	PersonID ID      `json:"personId"`
	Contact  Contact `json:"contact"`
	Found    bool    `json:"found"`
}

// Moved reports whether the person was matched and flagged as moved
func (h HasMoved) Moved() bool {
	return h.Found && bool(h.Contact.HasMoved)
}

// BatchHasMovedResult collects the outcome of a batch has-moved lookup.
// Results keep the order of the requested ids.
type BatchHasMovedResult struct {
	Requested int
	Results   []HasMoved
	Failed    []EnrichError
}

// matchResponse is the envelope shared by match-style search and enrich calls
type matchResponse struct {
	Data struct {
		Result []struct {
			MatchStatus string            `json:"matchStatus"`
			Data        []json.RawMessage `json:"data"`
		} `json:"result"`
	} `json:"data"`
}
