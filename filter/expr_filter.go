package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/ziclient/contacts"
)

// ExprFilter represents a compiled expr filter over contacts
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// CompileExprFilter compiles an expression. Field and helper types are
// checked at compile time and the expression must yield a boolean.
func CompileExprFilter(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, ErrEmptyExpression
	}

	program, err := expr.Compile(expression,
		expr.Env(contactEnv(contacts.Contact{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{Expression: expression, Err: err}
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Match evaluates the filter against a contact
func (f *ExprFilter) Match(c contacts.Contact) (bool, error) {
	result, err := expr.Run(f.program, contactEnv(c))
	if err != nil {
		return false, &EvaluationError{Expression: f.expr, ContactID: c.ID.String(), Err: err}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expr,
			ContactID:  c.ID.String(),
			Err:        fmt.Errorf("expected bool result, got %T", result),
		}
	}
	return matched, nil
}

// String returns the original expression
func (f *ExprFilter) String() string {
	return f.expr
}

// contactEnv exposes a contact's fields and helpers to expressions
func contactEnv(c contacts.Contact) map[string]any {
	return map[string]any{
		"Contact": c,

		"ID":             c.ID.String(),
		"FirstName":      c.FirstName,
		"LastName":       c.LastName,
		"Name":           c.FullName(),
		"JobTitle":       c.JobTitle,
		"Email":          c.Email,
		"Company":        c.Organization(),
		"CompanyID":      c.OrganizationID().String(),
		"CompanyWebsite": c.CompanyWebsite,
		"Accuracy":       c.ContactAccuracyScore,
		"HasMoved":       bool(c.HasMoved),

		"hasEmail": func() bool {
			return c.Email != "" || c.HasEmail
		},
		"emailDomain": func() string {
			_, domain, ok := strings.Cut(c.Email, "@")
			if !ok {
				return ""
			}
			return strings.ToLower(domain)
		},

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
