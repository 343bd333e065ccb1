package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"localspot/internal/app"
	"localspot/internal/config"
	"localspot/internal/directory"
	"localspot/internal/httpapi"
	"localspot/internal/model"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "List", "Serve").
func newApp(ctx context.Context, operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(ctx, cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "localspot",
	Short: "Map-centric local business directory",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Log Dir:  %s\n", cfg.LogDir)
		fmt.Printf("Store:    %s\n", cfg.Store.Type)
		fmt.Printf("Auth:     %s\n", cfg.Auth.Type)
		fmt.Printf("Geo:      %s\n", cfg.Geo.Type)
		fmt.Printf("Bio:      %s\n", cfg.Bio.Type)
		fmt.Printf("HTTP:     %s\n", cfg.HTTP.Addr)
		return nil
	},
}

// serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		a, err := newApp(ctx, "Serve")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Start(ctx); err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}

		addr := a.Config().HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		server := httpapi.NewServer(a.Service(), a.Auth(), a.Logger())
		return server.ListenAndServe(ctx, addr)
	},
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible businesses",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")

		ctx := cmd.Context()
		a, err := newApp(ctx, "List")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Start(ctx); err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}

		records := a.Service().Visible(directory.Filter{Category: category, Search: search})
		if len(records) == 0 {
			fmt.Println("No businesses found.")
			return nil
		}

		for _, b := range records {
			fmt.Printf("%-36s  %-14s  %s (%.4f, %.4f)\n",
				b.ID, b.Category, b.Name, b.Location.Latitude, b.Location.Longitude)
		}
		return nil
	},
}

// locate command
var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Resolve the current map anchor",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "Locate")
		if err != nil {
			return err
		}
		defer a.Close()

		m := a.Service().Map
		if err := m.Locate(ctx); err != nil {
			fmt.Printf("Location unavailable (%v), using default center.\n", err)
		}

		c := m.Center()
		source := "default"
		if m.HasLiveLocation() {
			source = "live"
		}
		fmt.Printf("Anchor: (%.4f, %.4f) [%s]\n", c.Latitude, c.Longitude, source)
		return nil
	},
}

// add command
var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a business listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx, "Add")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Start(ctx); err != nil {
			return fmt.Errorf("loading directory: %w", err)
		}

		svc := a.Service()
		svc.RequestAdd()
		if svc.AuthOpen() {
			if err := promptSignIn(ctx, svc); err != nil {
				svc.DismissAuth()
				return err
			}
		}
		if !svc.SubmissionOpen() {
			return fmt.Errorf("submission did not open")
		}

		form, err := formFromFlags(cmd, args[0])
		if err != nil {
			return err
		}

		if lat, lon, ok := pinFromFlags(cmd); ok {
			svc.Map.MoveDraft(model.Coordinate{Latitude: lat, Longitude: lon})
		}

		if form.Description == "" {
			if bio := svc.Pipeline.SuggestBio(ctx, form); bio != "" {
				form.Description = bio
				fmt.Printf("Suggested bio: %s\n", bio)
			}
		}

		record, err := svc.Submit(ctx, form)
		if err != nil {
			svc.CloseSubmission()
			return fmt.Errorf("submitting listing: %w", err)
		}

		fmt.Printf("Added %q at (%.4f, %.4f)\n", record.Name, record.Location.Latitude, record.Location.Longitude)
		return nil
	},
}

// promptSignIn reads credentials from the terminal and signs in, offering
// to create the account when sign-in fails.
func promptSignIn(ctx context.Context, svc *directory.Service) error {
	fmt.Print("Email: ")
	var email string
	if _, err := fmt.Scanln(&email); err != nil {
		return fmt.Errorf("reading email: %w", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := svc.SignIn(ctx, strings.TrimSpace(email), string(password)); err != nil {
		fmt.Printf("Sign in failed: %v\n", err)
		fmt.Print("Create an account with these credentials? [y/N] ")
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return fmt.Errorf("sign in required")
		}
		if err := svc.SignUp(ctx, strings.TrimSpace(email), string(password)); err != nil {
			return fmt.Errorf("sign up failed: %w", err)
		}
	}
	return nil
}

func formFromFlags(cmd *cobra.Command, name string) (directory.SubmissionForm, error) {
	category, _ := cmd.Flags().GetString("category")
	whatsapp, _ := cmd.Flags().GetString("whatsapp")
	phone, _ := cmd.Flags().GetString("phone")
	description, _ := cmd.Flags().GetString("description")
	keywords, _ := cmd.Flags().GetString("keywords")

	if _, ok := model.ParseCategory(category); !ok {
		return directory.SubmissionForm{}, fmt.Errorf("unknown category %q (one of: %s)", category, categoryNames())
	}

	return directory.SubmissionForm{
		Name:        name,
		Category:    category,
		WhatsApp:    whatsapp,
		Phone:       phone,
		Description: description,
		Keywords:    keywords,
	}, nil
}

func pinFromFlags(cmd *cobra.Command) (lat, lon float64, ok bool) {
	if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
		return 0, 0, false
	}
	lat, _ = cmd.Flags().GetFloat64("lat")
	lon, _ = cmd.Flags().GetFloat64("lon")
	return lat, lon, true
}

func categoryNames() string {
	var names []string
	for _, c := range model.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("category", "c", "", "Filter by category")
	listCmd.Flags().StringP("search", "q", "", "Search name and description")
	rootCmd.AddCommand(locateCmd)
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("category", "c", "", "Business category")
	addCmd.Flags().String("whatsapp", "", "WhatsApp number")
	addCmd.Flags().String("phone", "", "Phone number")
	addCmd.Flags().StringP("description", "d", "", "Listing description")
	addCmd.Flags().StringP("keywords", "k", "", "Keywords for the bio suggestion")
	addCmd.Flags().Float64("lat", 0, "Pin latitude")
	addCmd.Flags().Float64("lon", 0, "Pin longitude")
}
