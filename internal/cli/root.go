package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ppiankov/casebrief/internal/cache"
	"github.com/ppiankov/casebrief/internal/model"
	"github.com/ppiankov/casebrief/internal/nlp"
)

// Version is set at build time
var Version = "v0.1.0"

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "casebrief",
	Short: "Casebrief - fast triage of long case documents",
	Long: `Casebrief turns a multi-page case document (an investigative report, a
charge sheet, a statement bundle) into evidence tables for a first triage pass:

- important sentences ranked by term weight
- case-core excerpts matching the case vocabulary
- candidate contradictions between adjacent statements
- page-wise extractive summaries
- every named entity mention

The tables are heuristics for a human reader. They do not decide anything.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("casebrief %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.casebrief/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads .env, the config file and CASEBRIEF_* variables
func initConfig() {
	// A missing .env is normal
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".casebrief"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	setDefaults(model.DefaultConfig())

	viper.SetEnvPrefix("CASEBRIEF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// setDefaults registers every key so env variables reach Unmarshal
func setDefaults(def *model.Config) {
	viper.SetDefault("stages.importance", def.Stages.Importance)
	viper.SetDefault("stages.case_core", def.Stages.CaseCore)
	viper.SetDefault("stages.contradictions", def.Stages.Contradictions)
	viper.SetDefault("stages.summaries", def.Stages.Summaries)
	viper.SetDefault("stages.entities", def.Stages.Entities)
	viper.SetDefault("segment.min_length", def.Segment.MinLength)
	viper.SetDefault("importance.margin", def.Importance.Margin)
	viper.SetDefault("case_core.terms", def.CaseCore.Terms)
	viper.SetDefault("contradiction.negation_cues", def.Contradiction.NegationCues)
	viper.SetDefault("contradiction.lead_tokens", def.Contradiction.LeadTokens)
	viper.SetDefault("summary.max_sentences", def.Summary.MaxSentences)
	viper.SetDefault("keywords.max_keywords", def.Keywords.MaxKeywords)
	viper.SetDefault("keywords.min_length", def.Keywords.MinLength)
	viper.SetDefault("concurrency.workers", def.Concurrency.Workers)
	viper.SetDefault("cache.enabled", def.Cache.Enabled)
	viper.SetDefault("cache.ttl", def.Cache.TTL)
	viper.SetDefault("output.dir", def.Output.Dir)
	viper.SetDefault("output.verbose", def.Output.Verbose)
}

// loadConfig merges defaults, config file, env and bound flags
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: parse configuration: %v", model.ErrInput, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// newLogger builds the process logger. Verbose runs log at debug level in
// a human format; otherwise only warnings and errors are logged as JSON.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	return cfg.Build()
}

// newLanguageModel loads the pretrained model once for the whole process
func newLanguageModel(cfg *model.Config) nlp.Model {
	var lang nlp.Model = nlp.NewProseModel()
	if cfg.Cache.Enabled {
		lang = nlp.NewCachedModel(lang, cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL), cfg.Cache.TTL)
	}
	return lang
}
