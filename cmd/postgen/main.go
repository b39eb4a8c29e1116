package main

import (
	"fmt"
	"os"

	"postgen/internal/app"
	"postgen/internal/config"
	"postgen/internal/post"
	"postgen/internal/render"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment and the config file it points at.
func loadConfig() (*config.Config, app.Environment, error) {
	env, err := app.LoadEnvironment()
	if err != nil {
		return nil, env, err
	}
	defaults, err := app.GetDefaults(env)
	if err != nil {
		return nil, env, fmt.Errorf("getting defaults: %w", err)
	}
	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, env, fmt.Errorf("reading config: %w", err)
	}
	return cfg, env, nil
}

// loadDefaults reads the environment once and resolves the default paths from it.
func loadDefaults() (map[string]string, error) {
	env, err := app.LoadEnvironment()
	if err != nil {
		return nil, err
	}
	defaults, err := app.GetDefaults(env)
	if err != nil {
		return nil, fmt.Errorf("failed to get defaults: %w", err)
	}
	return defaults, nil
}

// newApp reads the config and creates a PostgenApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Generate", "Publish").
func newApp(operation string) (*app.PostgenApp, error) {
	cfg, env, err := loadConfig()
	if err != nil {
		return nil, err
	}

	passphrase := env.Passphrase
	if cfg.Encryption.Type == "age" && passphrase == "" {
		passphrase, err = readPassphrase("Passphrase: ")
		if err != nil {
			return nil, err
		}
	}

	a, err := app.NewPostgenApp(cfg, operation, app.Options{
		Passphrase: passphrase,
		Seed:       env.Seed,
		Stderr:     os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

// withApp runs fn against a fresh app and closes it afterwards.
func withApp(operation string, fn func(a *app.PostgenApp) error) error {
	a, err := newApp(operation)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// postCommand builds a command that applies a single-id operation and prints the result.
func postCommand(use, short, operation string, run func(a *app.PostgenApp, id string) (post.Post, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(operation, func(a *app.PostgenApp) error {
				p, err := run(a, args[0])
				if err != nil {
					return err
				}
				fmt.Println(render.Summary(p))
				return nil
			})
		},
	}
}

var rootCmd = &cobra.Command{
	Use:          "postgen",
	Short:        "Draft, review and publish social media posts",
	SilenceUsage: true,
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
		defaults, err := loadDefaults()
		if err != nil {
			return err
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		fmt.Printf("Posts:    %s\n", cfg.Slot.FilePath)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := loadDefaults()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Log Level:  %s\n", cfg.LogLevel)
		fmt.Printf("Slot:       %s (key %s, compress %t)\n", cfg.Slot.Type, cfg.Slot.SlotKey(), cfg.Slot.Compress)
		fmt.Printf("Encryption: %s\n", cfg.Encryption.Type)
		fmt.Printf("Policy:     %s\n", cfg.Lifecycle.Policy)
		return nil
	},
}

var configEncryptionCmd = &cobra.Command{
	Use:   "encryption",
	Short: "Manage encryption",
}

var configEncryptionInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate the encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, env, err := loadConfig()
		if err != nil {
			return err
		}

		passphrase := env.Passphrase
		if passphrase == "" {
			passphrase, err = readNewPassphrase()
			if err != nil {
				return err
			}
		}

		if err := app.InitEncryption(cfg, passphrase); err != nil {
			return err
		}
		fmt.Printf("Encryption keys written to %s and %s\n", cfg.Encryption.PublicKeyPath, cfg.Encryption.PrivateKeyPath)
		return nil
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate draft posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		return withApp("Generate", func(a *app.PostgenApp) error {
			drafts, err := a.Generate(count)
			if err != nil {
				return fmt.Errorf("generating drafts: %w", err)
			}
			fmt.Println(render.List(drafts))
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		return withApp("List", func(a *app.PostgenApp) error {
			posts, err := a.List(status)
			if err != nil {
				return err
			}
			fmt.Println(render.List(posts))
			return nil
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp("Show", func(a *app.PostgenApp) error {
			p, err := a.Show(args[0])
			if err != nil {
				return err
			}
			fmt.Println(render.Detail(p))
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Edit the title, text or image of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var patch post.Patch
		for name, dst := range map[string]**string{
			"title": &patch.Title,
			"text":  &patch.Text,
			"image": &patch.ImageURL,
		} {
			if cmd.Flags().Changed(name) {
				v, _ := cmd.Flags().GetString(name)
				*dst = &v
			}
		}
		if patch.Empty() {
			return fmt.Errorf("nothing to edit: pass --title, --text or --image")
		}

		return withApp("Edit", func(a *app.PostgenApp) error {
			p, err := a.Edit(args[0], patch)
			if err != nil {
				return err
			}
			fmt.Println(render.Detail(p))
			return nil
		})
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configEncryptionCmd)
	configEncryptionCmd.AddCommand(configEncryptionInitCmd)

	generateCmd.Flags().IntP("count", "n", 1, "Number of drafts to generate")
	listCmd.Flags().StringP("status", "s", "", "Only show posts with this status (draft, validated, posted, deleted)")
	editCmd.Flags().String("title", "", "New title")
	editCmd.Flags().String("text", "", "New text")
	editCmd.Flags().String("image", "", "New image URL")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(postCommand("regen-image", "Regenerate the image URL from the title", "RegenerateImage", (*app.PostgenApp).RegenerateImage))
	rootCmd.AddCommand(postCommand("regen-text", "Regenerate the text from the title", "RegenerateText", (*app.PostgenApp).RegenerateText))
	rootCmd.AddCommand(postCommand("validate", "Mark a draft as validated", "Validate", (*app.PostgenApp).Validate))
	rootCmd.AddCommand(postCommand("publish", "Mark a validated post as posted", "Publish", (*app.PostgenApp).Publish))
	rootCmd.AddCommand(postCommand("delete", "Soft-delete a draft", "Delete", (*app.PostgenApp).Delete))
}
