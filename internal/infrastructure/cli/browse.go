package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactive TUI browser for the standards catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("DEVSTANDARDS_SKIP_BROWSE_RUN") == "true" {
			return nil
		}
		m, err := initialBrowseModel()
		if err != nil {
			return err
		}
		p := tea.NewProgram(m)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("browse run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(browseCmd)
}

// Styles
var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	PaddingLeft(1).
	PaddingRight(1)

var detailStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	PaddingLeft(1)

type browseModel struct {
	table     table.Model
	records   map[string]standards.Standard
	total     int
	plugins   int
	showingID string
}

func initialBrowseModel() (browseModel, error) {
	services, err := loadServices()
	if err != nil {
		return browseModel{}, err
	}

	store := services.Standards.Store()
	max := standards.DefaultLimitBounds().Max
	rows := []table.Row{}
	records := make(map[string]standards.Standard)

	categories, err := store.Categories()
	if err != nil {
		return browseModel{}, err
	}
	for _, cat := range categories {
		results, err := store.Filter(standards.FilterQuery{Category: cat.Name, Limit: &max})
		if err != nil {
			return browseModel{}, err
		}
		for _, std := range results {
			records[std.ID] = std
			rows = append(rows, table.Row{std.ID, string(std.Severity), std.Category, std.Title})
		}
	}

	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Severity", Width: 10},
		{Title: "Category", Width: 24},
		{Title: "Title", Width: 44},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(14),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	t.SetStyles(s)

	return browseModel{
		table:   t,
		records: records,
		total:   store.Count(),
		plugins: len(services.Registry.Plugins()),
	}, nil
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if row := m.table.SelectedRow(); row != nil {
				m.showingID = row[0]
			}
			return m, nil
		case "esc":
			m.showingID = ""
			return m, nil
		}
	}
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m browseModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("DevStandards — %d standards from %d packs", m.total, m.plugins))

	detail := ""
	if std, ok := m.records[m.showingID]; ok {
		detail = detailStyle.Render(fmt.Sprintf(
			"\n%s [%s/%s] severity=%s\n%s\n",
			std.ID, std.Category, std.Subcategory, std.Severity, std.Description,
		))
	}

	footer := "\nenter: details | esc: close | q: quit\n"
	return header + "\n" + baseStyle.Render(m.table.View()) + detail + footer
}
