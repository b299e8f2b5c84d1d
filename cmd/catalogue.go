package cmd

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/skillmatch/internal/logger"
	"github.com/spigell/skillmatch/internal/matcher"
	"github.com/spigell/skillmatch/internal/skills"
)

const (
	PromptBack = "back"
	PromptExit = "exit"

	selectedMark = " [selected]"
)

var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog"},
	Short:   "List companies, roles and their required skill levels",
	Run: func(cmd *cobra.Command, _ []string) {
		catalogue(cmd)
	},
}

func init() {
	rootCmd.AddCommand(catalogueCmd)

	catalogueCmd.Flags().BoolP("interactive", "i", false, "browse the catalogue role by role")
}

func catalogue(cmd *cobra.Command) {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	mcfg, err := matcherConfig(config)
	if err != nil {
		l.Fatal("preparing the catalogue", zap.Error(err))
	}

	if flag := cmd.Flag("interactive"); flag == nil || flag.Value.String() != "true" {
		if err := printCatalogue(cmd.OutOrStdout(), mcfg); err != nil {
			l.Fatal("printing the catalogue", zap.Error(err))
		}
		return
	}

	if err := browse(cmd.OutOrStdout(), mcfg); err != nil {
		l.Fatal("exiting", zap.Error(err))
	}
}

// printCatalogue lists every company and role with levels in category order.
func printCatalogue(out io.Writer, cfg *matcher.Config) error {
	thresholds, err := cfg.Thresholds.Vector(cfg.Categories)
	if err != nil {
		return err
	}

	selected := make(map[string]bool, len(cfg.SelectedCompanies))
	for _, name := range cfg.SelectedCompanies {
		selected[name] = true
	}

	fmt.Fprintf(out, "Categories: %s\n", strings.Join(cfg.Categories, ", "))
	fmt.Fprintf(out, "Thresholds: %s\n", levels(thresholds))

	for _, company := range cfg.Catalogue.Items {
		mark := ""
		if selected[company.Name] {
			mark = selectedMark
		}
		fmt.Fprintf(out, "\n%s%s\n", company.Name, mark)
		for _, role := range company.Roles {
			fmt.Fprintf(out, "  %s: %s\n", role.Name, levels(role.Requirements))
		}
	}

	return nil
}

// printRole shows one role category by category next to the threshold.
func printRole(out io.Writer, cfg *matcher.Config, company, role string) error {
	requirements, err := cfg.Catalogue.Requirements(company, role)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s - %s\n", company, role)
	for idx, category := range cfg.Categories {
		minimum, err := cfg.Thresholds.Get(category)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %-32s required %2d, minimum %2d\n", category, requirements[idx], minimum)
	}
	return nil
}

func browse(out io.Writer, cfg *matcher.Config) error {
	for {
		companyPrompt := promptui.Select{
			Label: "Choose a company and press ENTER",
			Items: append(cfg.Catalogue.Names(), PromptExit),
		}

		_, companySelected, err := companyPrompt.Run()
		if err != nil {
			return err
		}

		if companySelected == PromptExit {
			return nil
		}

		company, err := cfg.Catalogue.Company(companySelected)
		if err != nil {
			return err
		}

		if err := browseRoles(out, cfg, company); err != nil {
			return err
		}
	}
}

func browseRoles(out io.Writer, cfg *matcher.Config, company *skills.Company) error {
	for {
		rolePrompt := promptui.Select{
			Label: fmt.Sprintf("Choose a role at %s", company.Name),
			Items: append(company.RoleNames(), PromptBack),
		}

		_, roleSelected, err := rolePrompt.Run()
		if err != nil {
			return err
		}

		if roleSelected == PromptBack {
			return nil
		}

		if err := printRole(out, cfg, company.Name, roleSelected); err != nil {
			return err
		}
	}
}

func levels(v skills.Vector) string {
	parts := make([]string, 0, len(v))
	for _, level := range v {
		parts = append(parts, fmt.Sprintf("%d", level))
	}
	return strings.Join(parts, " ")
}
