package cli

import (
	"fmt"
	"io"
	"net/url"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// configPaths is the output of `syncstatus config path`.
type configPaths struct {
	Global  string `json:"global" yaml:"global"`
	Project string `json:"project" yaml:"project"`
	State   string `json:"state,omitempty" yaml:"state,omitempty"`
	Session string `json:"session" yaml:"session"`
	Log     string `json:"log" yaml:"log"`
}

func newConfigCmd(flags *GlobalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration",
		Long: `Display the effective configuration after merging defaults, the global
and project files, and SYNCSTATUS_* environment variables.

Passwords in store.redis_url are masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigShow(cmd.OutOrStdout(), flags.Output, ConfigFromContext(cmd.Context()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show where configuration, state and logs are stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigPath(cmd.OutOrStdout(), flags.Output, ConfigFromContext(cmd.Context()))
		},
	})

	return cmd
}

// runConfigShow prints cfg as YAML, or JSON in JSON mode.
func runConfigShow(w io.Writer, format string, cfg *config.Config) error {
	if cfg == nil {
		return outputError(w, format, errors.ErrConfigNil)
	}
	masked := *cfg
	masked.Store.RedisURL = maskURL(cfg.Store.RedisURL)

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(masked)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(masked); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return enc.Close()
}

func runConfigPath(w io.Writer, format string, cfg *config.Config) error {
	paths, err := collectPaths(cfg)
	if err != nil {
		return outputError(w, format, err)
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(paths)
	}
	out := tui.NewTTYOutput(w)
	out.Info(fmt.Sprintf("global:  %s", paths.Global))
	out.Info(fmt.Sprintf("project: %s", paths.Project))
	if paths.State != "" {
		out.Info(fmt.Sprintf("state:   %s", paths.State))
	}
	out.Info(fmt.Sprintf("session: %s", paths.Session))
	out.Info(fmt.Sprintf("log:     %s", paths.Log))
	return nil
}

func collectPaths(cfg *config.Config) (configPaths, error) {
	var paths configPaths
	var err error

	if paths.Global, err = config.GlobalConfigPath(); err != nil {
		return paths, err
	}
	paths.Project = config.ProjectConfigPath()
	if cfg.Store.Backend == constants.StoreBackendBolt {
		if paths.State, err = cfg.StatePath(); err != nil {
			return paths, err
		}
	}
	if paths.Session, err = cfg.SessionPath(); err != nil {
		return paths, err
	}
	if paths.Log, err = LogFilePath(); err != nil {
		return paths, err
	}
	return paths, nil
}

// maskedSecret replaces passwords in displayed URLs.
const maskedSecret = "xxxxx"

// maskURL hides the password of a URL. Unparsable values are masked whole.
func maskURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return maskedSecret
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), maskedSecret)
	}
	return u.String()
}
