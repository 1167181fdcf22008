package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/productsearch/internal/core/domain"
)

// errNoSettings is returned when no settings service is configured.
var errNoSettings = errors.New("settings service not configured")

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the search backend, the collections and the web server.

Settings are stored in the config file. PRODUCTSEARCH_* environment
variables and the --api-url flag override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting and save it to the config file.

Keys:
  api.url                    search backend URL
  api.timeout                request timeout, e.g. 30s
  api.rate_per_second        request rate limit, 0 to disable
  search.collections         comma-separated name or name=Label list
  search.default_collection  preselected collection
  search.default_top_k       preset result count, 1 to 20
  web.addr                   search page listen address`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if deps == nil || deps.Settings == nil {
		return errNoSettings
	}

	stored, err := deps.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	printSettings(cmd, stored)

	if deps.Resolved.APIURL != "" && deps.Resolved.APIURL != stored.APIURL {
		cmd.Printf("Effective API URL (overridden): %s\n", deps.Resolved.APIURL)
	}

	if err := stored.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func printSettings(cmd *cobra.Command, s domain.Settings) {
	cmd.Println("[API]")
	cmd.Printf("  URL: %s\n", s.APIURL)
	cmd.Printf("  Timeout: %s\n", s.APITimeout)
	if s.RatePerSecond > 0 {
		cmd.Printf("  Rate limit: %g/s\n", s.RatePerSecond)
	} else {
		cmd.Println("  Rate limit: off")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Collections: %s\n", joinCollections(s.Collections))
	cmd.Printf("  Default collection: %s\n", s.DefaultCollection)
	cmd.Printf("  Default results: %d\n", s.DefaultTopK)
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", s.WebAddr)
	cmd.Println()
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if deps == nil || deps.Settings == nil {
		return errNoSettings
	}

	settings, err := deps.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	settings, err = applySetting(settings, args[0], args[1])
	if err != nil {
		return err
	}

	if err := deps.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

// applySetting returns settings with one key changed.
func applySetting(s domain.Settings, key, value string) (domain.Settings, error) {
	value = strings.TrimSpace(value)

	switch key {
	case "api.url":
		s.APIURL = value
	case "api.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		s.APITimeout = d
	case "api.rate_per_second":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		s.RatePerSecond = f
	case "search.collections":
		collections, err := parseCollections(value)
		if err != nil {
			return s, err
		}
		s.Collections = collections
		if _, ok := domain.FindCollection(collections, s.DefaultCollection); !ok {
			s.DefaultCollection = collections[0].Name
		}
	case "search.default_collection":
		s.DefaultCollection = value
	case "search.default_top_k":
		n, err := strconv.Atoi(value)
		if err != nil {
			return s, fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		s.DefaultTopK = n
	case "web.addr":
		s.WebAddr = value
	default:
		return s, fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return s, nil
}

// parseCollections parses a comma-separated name or name=Label list.
func parseCollections(value string) ([]domain.Collection, error) {
	var collections []domain.Collection
	for _, entry := range strings.Split(value, ",") {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		c, err := domain.ParseCollection(entry)
		if err != nil {
			return nil, err
		}
		collections = append(collections, c)
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("%w: at least one collection is required", domain.ErrInvalidInput)
	}
	return collections, nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if deps == nil || deps.Settings == nil {
		return errNoSettings
	}

	settings, err := deps.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("productsearch Settings Wizard")
	cmd.Println("=============================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Backend
	cmd.Println("Step 1: Search Backend")
	cmd.Println("----------------------")
	cmd.Printf("API URL [%s]: ", settings.APIURL)
	if v := readLine(reader); v != "" {
		settings.APIURL = v
	}
	cmd.Println()

	// Step 2: Collections
	cmd.Println("Step 2: Collections")
	cmd.Println("-------------------")
	cmd.Printf("Collections [%s]: ", joinCollections(settings.Collections))
	if v := readLine(reader); v != "" {
		collections, err := parseCollections(v)
		if err != nil {
			return err
		}
		settings.Collections = collections
	}
	for i, c := range settings.Collections {
		cmd.Printf("  %d. %s\n", i+1, c.Label)
	}
	current := 1
	for i, c := range settings.Collections {
		if c.Name == settings.DefaultCollection {
			current = i + 1
		}
	}
	cmd.Printf("\nDefault collection [%d]: ", current)
	idx := parseChoice(readLine(reader), len(settings.Collections), current)
	settings.DefaultCollection = settings.Collections[idx-1].Name
	cmd.Println()

	// Step 3: Results
	cmd.Println("Step 3: Results")
	cmd.Println("---------------")
	cmd.Printf("Default number of results, 1-%d [%d]: ", domain.MaxTopK, settings.DefaultTopK)
	settings.DefaultTopK = parseChoice(readLine(reader), domain.MaxTopK, settings.DefaultTopK)
	cmd.Println()

	if err := deps.Settings.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

func joinCollections(collections []domain.Collection) string {
	parts := make([]string, len(collections))
	for i, c := range collections {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
