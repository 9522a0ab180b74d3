package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/devrules/devrules/internal/rules"
)

// errNoRuleCatalog is returned when the embedded catalog failed to load.
var errNoRuleCatalog = errors.New("rule catalog not available")

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List and read the bundled convention documents",
}

// pickRule asks the user to choose a rule. Replaced in tests.
var pickRule = pickRuleInteractive

// stdinIsTerminal reports whether the picker can run. Replaced in tests.
var stdinIsTerminal = func() bool { return isTerminal(os.Stdin) }

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List convention documents by category",
		Args:  cobra.NoArgs,
		RunE:  runRulesList,
	})

	showCmd := &cobra.Command{
		Use:   "show [name]",
		Short: "Print a convention document",
		Long: `Print a convention document. On a terminal the Markdown is rendered;
use --raw for the source. Without a name, an interactive picker opens.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRulesShow,
	}
	showCmd.Flags().Bool("raw", false, "print Markdown source without rendering")
	rulesCmd.AddCommand(showCmd)
}

func catalog() (*rules.Catalog, error) {
	if deps == nil || deps.Rules == nil {
		return nil, errNoRuleCatalog
	}
	return deps.Rules, nil
}

func runRulesList(cmd *cobra.Command, _ []string) error {
	c, err := catalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	styled := isTerminal(out)
	list := c.List()

	var sections []string
	for _, category := range c.Categories() {
		var pairs []kvPair
		for _, r := range list {
			if r.Category == category {
				pairs = append(pairs, kvPair{r.Name, r.Description})
			}
		}
		sections = append(sections, renderCard(styled, rules.DisplayCategory(category), renderKeyValueLines(styled, pairs)))
	}

	_, err = fmt.Fprintln(out, strings.Join(sections, "\n\n"))
	return err
}

func runRulesShow(cmd *cobra.Command, args []string) error {
	c, err := catalog()
	if err != nil {
		return err
	}

	var name string
	if len(args) == 1 {
		name = args[0]
	} else {
		if !stdinIsTerminal() {
			return fmt.Errorf("rule name required when not running in a terminal (one of: %s)", strings.Join(c.Names(), ", "))
		}
		name, err = pickRule(c.List())
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
	}

	r, err := c.Get(name)
	if err != nil {
		return err
	}

	raw, _ := cmd.Flags().GetBool("raw")
	out := cmd.OutOrStdout()
	if raw || !isTerminal(out) {
		_, err = fmt.Fprint(out, r.Body)
		return err
	}

	rendered, err := renderMarkdown(r.Body)
	if err != nil {
		_, err = fmt.Fprint(out, r.Body)
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}

func renderMarkdown(body string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return renderer.Render(body)
}

// pickRuleInteractive shows a select list of rules. An aborted picker
// returns an empty name and no error.
func pickRuleInteractive(list []rules.Rule) (string, error) {
	opts := make([]huh.Option[string], len(list))
	for i, r := range list {
		opts[i] = huh.NewOption(fmt.Sprintf("%-22s %s", r.Name, r.Description), r.Name)
	}

	var selected string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Select a convention document").
			Options(opts...).
			Value(&selected),
	))
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", nil
		}
		return "", fmt.Errorf("rule picker: %w", err)
	}
	return selected, nil
}
