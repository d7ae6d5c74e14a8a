package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"evrental-staff-core/internal/apperror"
	"evrental-staff-core/internal/config"
	"evrental-staff-core/internal/container"
	"evrental-staff-core/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	sessionFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "staffctl",
	Short: "staffctl - EV rental station staff client",
	Long: `staffctl drives the staff side of an EV rental return against the
settlement service: sign in, walk a vehicle return from photos to the final
receipt, record charging sessions and follow shared GPS sessions.

Return drafts are kept in the configured draft store, so every return step can
be run as a separate invocation with the draft id printed by "return start".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperror.UserMessage(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config/config.dev.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&sessionFile, "session", defaultSessionFile(), "File holding the signed-in session")
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".staffctl-session.json"
	}
	return filepath.Join(home, ".evrental", "session.json")
}

// open builds the container and restores the saved session, if any.
func open() (*container.Container, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	c, err := container.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := loadSession(sessionFile, c.Session); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// withContainer runs fn against a freshly opened container and closes it afterwards.
func withContainer(fn func(c *container.Container) error) error {
	c, err := open()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
