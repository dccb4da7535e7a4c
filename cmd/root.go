package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pders01/skuref/internal/config"
	"github.com/pders01/skuref/internal/logger"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "skuref",
	Short: "Storefront SKU search and content reference trees",
	Long: `skuref is a toolbox for two jobs content editors do all day:
  - finding products, variants and collections in a Shopify storefront
    and turning them into stable SKU references
  - exploring the reference graph of a content entry and choosing which
    linked entries a deep copy should take along

Search results are paged incrementally and never repeat a record. Reference
maps are imported once and stored as snapshots, so trees can be browsed
offline.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/skuref/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored log output")

	_ = viper.BindPFlag("log.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.Dir())
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("skuref")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	readErr := viper.ReadInConfig()

	logger.Init(logger.Options{
		Verbose:      config.Verbose(),
		DisableColor: noColor,
	})

	if readErr == nil {
		logrus.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}
