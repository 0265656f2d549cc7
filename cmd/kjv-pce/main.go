// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the kjv-pce CLI, which typesets
// chapters of the KJV-PCE scripture database into two-column PDF pages.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metcalfeakj/KJV-PCE/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the kjv-pce CLI.
var rootCmd = &cobra.Command{
	Use:   "kjv-pce",
	Short: "Typeset KJV-PCE chapters into two-column pages",
	Long: `kjv-pce reads verses from the KJV-PCE SQLite database, groups them into
paragraphs at the pilcrow marks, balances the paragraphs across two columns,
and writes one LaTeX document per chapter. Each document is then typeset
with xelatex.

Settings come from flags, KJV_PCE_* environment variables, or a
kjv-pce.yaml config file, in that order of precedence.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(os.Stderr, viper.GetString("log_level"), viper.GetString("log_format"))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./kjv-pce.yaml or ~/.config/kjv-pce/kjv-pce.yaml)")
	pf.String("db", "", "path to the scripture SQLite database (default KJV-PCE.sqlite)")
	pf.String("latex-dir", "", "directory for generated .tex documents (default latex_output)")
	pf.String("pdf-dir", "", "directory for typeset PDFs (default pdf_output)")
	pf.String("font-dir", "", "directory the documents load fonts from (default fonts)")
	pf.String("log-level", "info", "log level: debug, info, warn, or error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlags(viper.GetViper(), pf)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kjv-pce")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "kjv-pce"))
		}
	}

	viper.SetEnvPrefix("KJV_PCE")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
