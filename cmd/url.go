package cmd

import (
	"fmt"

	"github.com/jcdickinson/doclinks/internal/component"
	"github.com/jcdickinson/doclinks/internal/config"
	"github.com/jcdickinson/doclinks/internal/toolchain"
	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url <group:name:version>",
	Short: "Print the documentation URL of a component",
	Example: `  doclinks url com.google.guava:guava:31.1-jre
  doclinks url io.netty:netty-handler:4.1.68.Final`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := component.ParseID(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		fmt.Println(cfg.Resolver()(id))
		return nil
	},
}

var stdlibCmd = &cobra.Command{
	Use:   "stdlib [version]",
	Short: "Print the standard library link and linking mode of a toolchain",
	Long:  "Without a version the configured or detected toolchain is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := ""
		if len(args) == 1 {
			raw = args[0]
		} else {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			raw = cfg.Toolchain
		}

		policy, err := toolchain.NewPolicy(raw)
		if err != nil {
			return err
		}
		mode := "online"
		if policy.UsesOfflineLinking() {
			mode = "offline"
		}
		fmt.Printf("%s (java %d, %s linking)\n", policy.StdlibLink(), policy.Major, mode)
		return nil
	},
}
