package cli

import (
	"encoding/json"
	"fmt"

	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"github.com/spf13/cobra"
)

var (
	listCategory    string
	listSubcategory string
	listSeverity    string
	listLimit       int

	searchCategories []string
	searchTags       []string
	searchLimit      int
)

var standardsCmd = &cobra.Command{
	Use:   "standards",
	Short: "Query the standards catalog",
}

var standardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List standards filtered by category, subcategory, and severity",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		result, err := services.Standards.GetStandards(standards.FilterQuery{
			Category:    listCategory,
			Subcategory: listSubcategory,
			Severity:    listSeverity,
			Limit:       flagLimit(cmd, "limit", listLimit),
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var standardsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search standards by text query, categories, and tags",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		result, err := services.Standards.SearchStandards(standards.SearchQuery{
			Query:      args[0],
			Categories: searchCategories,
			Tags:       searchTags,
			Limit:      flagLimit(cmd, "limit", searchLimit),
		})
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var standardsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Get a single standard by its id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		result, err := services.Standards.GetStandardByID(args[0])
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var standardsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories with descriptions and record counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}

		result, err := services.Standards.GetCategories()
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

// flagLimit returns the limit only when the flag was set, so the store
// default applies otherwise.
func flagLimit(cmd *cobra.Command, name string, value int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	standardsListCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")
	standardsListCmd.Flags().StringVar(&listSubcategory, "subcategory", "", "Filter by subcategory")
	standardsListCmd.Flags().StringVar(&listSeverity, "severity", "", "Filter by severity (critical, high, medium, low, info)")
	standardsListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of results")

	standardsSearchCmd.Flags().StringSliceVar(&searchCategories, "category", nil, "Restrict to categories (repeatable)")
	standardsSearchCmd.Flags().StringSliceVar(&searchTags, "tag", nil, "Require at least one of these tags (repeatable)")
	standardsSearchCmd.Flags().IntVar(&searchLimit, "limit", 0, "Maximum number of results")

	standardsCmd.AddCommand(standardsListCmd)
	standardsCmd.AddCommand(standardsSearchCmd)
	standardsCmd.AddCommand(standardsGetCmd)
	standardsCmd.AddCommand(standardsCategoriesCmd)
	RootCmd.AddCommand(standardsCmd)
}
