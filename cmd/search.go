package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/ziclient/contacts"
	"github.com/s0up4200/ziclient/filter"
)

var (
	companyName  string
	jobTitle     string
	singlePage   bool
	matchInputs  []string
	outputFields []string
)

// searchCmd groups the contact search commands
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search ZoomInfo contacts",
}

// searchCompanyCmd represents the company search command
var searchCompanyCmd = &cobra.Command{
	Use:   "company",
	Short: "Find contacts at a company by job title",
	Long: `Find every contact at a company whose job title matches a keyword.

Results are paged up to search.max_results and can be narrowed further with
a filter expression or a preset from config, for example:

  ziclient search company --company "Acme" --title "CEO" --filter 'hasEmail() and not HasMoved'`,
	PreRunE: initializeApp,
	RunE:    runSearchCompany,
}

// searchContactCmd represents the single contact lookup
var searchContactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Look up a single contact by match criteria",
	Long: `Look up the best matching contact for a set of criteria.

  ziclient search contact --input emailAddress=ada@acme.com --fields id,firstName,lastName,jobTitle`,
	PreRunE: initializeApp,
	RunE:    runSearchContact,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.AddCommand(searchCompanyCmd)
	searchCmd.AddCommand(searchContactCmd)

	searchCompanyCmd.Flags().StringVar(&companyName, "company", "", "company name")
	searchCompanyCmd.Flags().StringVarP(&jobTitle, "title", "t", "", "job title keyword")
	searchCompanyCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	searchCompanyCmd.Flags().StringVarP(&preset, "preset", "p", "", "use a preset filter from config")
	searchCompanyCmd.Flags().BoolVar(&singlePage, "single-page", false, "fetch only the first page")
	searchCompanyCmd.Flags().BoolVar(&jsonOutput, "json", false, "print results as JSON")
	_ = searchCompanyCmd.MarkFlagRequired("company")
	_ = searchCompanyCmd.MarkFlagRequired("title")

	searchContactCmd.Flags().StringArrayVarP(&matchInputs, "input", "i", nil, "match criterion as key=value (repeatable)")
	searchContactCmd.Flags().StringSliceVar(&outputFields, "fields", nil, "output fields to return")
	searchContactCmd.Flags().BoolVar(&jsonOutput, "json", false, "print result as JSON")
	_ = searchContactCmd.MarkFlagRequired("input")
}

func runSearchCompany(cmd *cobra.Command, args []string) error {
	expr, err := getFilterExpression()
	if err != nil {
		return err
	}

	f, err := compileFilter(expr)
	if err != nil {
		return err
	}

	logger.Info().
		Str("company", companyName).
		Str("title", jobTitle).
		Str("filter", expr).
		Msg("Searching contacts")

	found, err := service.SearchByCompany(cmd.Context(), contacts.CompanySearch{
		CompanyName:     companyName,
		JobTitleKeyword: jobTitle,
	})
	if err != nil {
		return err
	}

	found = filters.Apply(f, found)

	if jsonOutput {
		return printJSON(found)
	}

	fmt.Println(contacts.NewConsoleFormatter().FormatContactList(found))
	return nil
}

func runSearchContact(cmd *cobra.Command, args []string) error {
	input, err := parseMatchInput(matchInputs)
	if err != nil {
		return err
	}

	c, err := service.Search(cmd.Context(), contacts.ContactSearch{
		InputFields:  []map[string]any{input},
		OutputFields: outputFields,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(c)
	}

	if c == nil {
		fmt.Println("No matching contact found")
		return nil
	}
	fmt.Println(contacts.NewConsoleFormatter().FormatContactList([]contacts.Contact{*c}))
	return nil
}

// getFilterExpression returns the filter to apply: the --filter flag, then
// a --preset, then the configured default
func getFilterExpression() (string, error) {
	expr, err := filters.Resolve(filterExpr, preset)
	if err != nil {
		return "", err
	}
	if expr == "" {
		expr = cfg.Filter.Default
	}
	return expr, nil
}

func compileFilter(expr string) (*filter.ExprFilter, error) {
	if expr == "" {
		return nil, nil
	}
	f, err := filters.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}
	return f, nil
}

// parseMatchInput turns key=value pairs into a matchPersonInput entry
func parseMatchInput(pairs []string) (map[string]any, error) {
	input := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid input %q: expected key=value", pair)
		}
		input[key] = strings.TrimSpace(value)
	}
	return input, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
