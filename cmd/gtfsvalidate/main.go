package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	gtfsguru "github.com/abasis-ltd/gtfs.guru"
	"github.com/abasis-ltd/gtfs.guru/config"
	"github.com/abasis-ltd/gtfs.guru/internal"
)

func main() {
	zipPath := flag.String("zip", "", "path to a GTFS zip archive")
	dir := flag.String("dir", "", "path to an extracted GTFS directory")
	configFile := flag.String("config", "", "YAML config file with engine-default overrides")
	countryCode := flag.String("countryCode", "", "ISO 3166-1 alpha-2 country code")
	validationDate := flag.String("validationDate", "", "YYYYMMDD validation date")
	googleRules := flag.Bool("googleRules", false, "enable Google-specific rule extensions")
	thorough := flag.Bool("thorough", false, "run the thorough rule set")
	threads := flag.Int("threads", 0, "worker pool size (0 = hardware parallelism)")
	maxNoticesPerCode := flag.Int("maxNoticesPerCode", 0, "cap notices kept per code (0 = unlimited)")
	stripRuntimeFields := flag.Bool("stripRuntimeFields", false, "suppress generatedAt/validatorVersion for golden comparisons")
	outDir := flag.String("out", ".", "directory to write report.json, report.html, and system_errors.json")
	logLevel := flag.String("logLevel", "info", "debug|info|warn|error")
	flag.Parse()

	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GTFSVALIDATE")
	v.AutomaticEnv()
	v.SetDefault("countryCode", *countryCode)
	v.SetDefault("validationDate", *validationDate)
	v.SetDefault("googleRules", *googleRules)
	v.SetDefault("thorough", *thorough)
	v.SetDefault("threads", *threads)
	v.SetDefault("maxNoticesPerCode", *maxNoticesPerCode)
	v.SetDefault("stripRuntimeFields", *stripRuntimeFields)
	v.SetDefault("engineDefaultsPath", *configFile)

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := internal.GetLogger(level)

	opts := gtfsguru.Options{
		Logger:             &log,
		EngineDefaultsPath: v.GetString("engineDefaultsPath"),
		Options: config.Options{
			CountryCode:        v.GetString("countryCode"),
			ValidationDate:     v.GetString("validationDate"),
			GoogleRules:        v.GetBool("googleRules"),
			Thorough:           v.GetBool("thorough"),
			Threads:            v.GetInt("threads"),
			MaxNoticesPerCode:  v.GetInt("maxNoticesPerCode"),
			StripRuntimeFields: v.GetBool("stripRuntimeFields"),
		},
	}

	input := gtfsguru.Input{ZipPath: *zipPath, Directory: *dir}
	result, err := gtfsguru.Validate(input, opts)
	if err != nil {
		log.Error().Err(err).Msg("validation failed")
		os.Exit(1)
	}

	if err := writeArtifacts(*outDir, result); err != nil {
		log.Error().Err(err).Msg("writing report artifacts")
		os.Exit(1)
	}

	log.Info().
		Int("errors", result.Summary.ErrorCount).
		Int("warnings", result.Summary.WarningCount).
		Int("infos", result.Summary.InfoCount).
		Msg("validation complete")

	if result.Summary.ErrorCount > 0 {
		os.Exit(1)
	}
}

func writeArtifacts(outDir string, result *gtfsguru.Report) error {
	reportJSON, err := result.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal report.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "report.json"), reportJSON, 0o644); err != nil {
		return err
	}

	sysErrJSON, err := result.MarshalSystemErrors()
	if err != nil {
		return fmt.Errorf("marshal system_errors.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "system_errors.json"), sysErrJSON, 0o644); err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(outDir, "report.html"), []byte(result.RenderHTML()), 0o644)
}
