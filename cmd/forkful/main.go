// cmd/forkful/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"forkful/internal/builder"
	"forkful/internal/config"
	"forkful/internal/cooklang"
	"forkful/internal/scaffold"
	"forkful/internal/server"
)

type appConfig struct {
	debug  bool
	port   int
	unsafe bool
}

const (
	recipesDir  = "recipes"
	templateDir = "templates"
	staticDir   = "static"
	outputDir   = "public"
	configFile  = "site.yaml"
)

func main() {
	appCfg := appConfig{}
	// Global flags
	flag.BoolVar(&appCfg.debug, "debug", false, "Enable debug mode for verbose error output.")
	flag.IntVar(&appCfg.port, "port", 1313, "Port for the local development server.")
	flag.BoolVar(&appCfg.unsafe, "unsafe", false, "Disable HTML sanitization. Allows all raw HTML.")
	flag.Usage = printHelp
	flag.Parse()

	if err := run(appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Operation failed: %v\n", err)
		os.Exit(1)
	}
}

func run(appCfg appConfig) error {
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return nil
	}

	opts := builder.BuildOptions{
		Unsafe: appCfg.unsafe,
		Debug:  appCfg.debug,
	}

	switch args[0] {
	case "gen":
		opts.CleanDestination = true
		fmt.Println("--- Generating site from recipes ---")
		return runFullBuild(opts)

	case "fmt":
		fmtCmd := flag.NewFlagSet("fmt", flag.ExitOnError)
		inputFile := fmtCmd.String("i", "", "Input recipe file (*.cook).")
		outputFile := fmtCmd.String("o", "", "Output markdown file. Defaults to stdout.")
		style := fmtCmd.String("style", "report", "Step rendering style: report or plain.")

		fmtCmd.Usage = func() {
			fmt.Println("Usage: forkful fmt -i <file.cook> [options]")
			fmt.Println("\nFormat a cooklang recipe into the report markdown document.")
			fmt.Println("\nOptions:")
			fmtCmd.PrintDefaults()
		}

		fmtCmd.Parse(args[1:])
		if *inputFile == "" {
			fmtCmd.Usage()
			return nil
		}
		return handleFmtCommand(*inputFile, *outputFile, *style)

	case "serve":
		buildFunc := func(buildOpts builder.BuildOptions) error {
			return buildSite(buildOpts)
		}
		return server.Run(appCfg.port, buildFunc, opts)

	case "new":
		if len(args) < 3 {
			flag.Usage()
			return nil
		}
		if args[1] == "site" {
			return scaffold.CreateNewSite(args[2])
		}
		return scaffold.CreateNewContent(args[1], args[2], configFile)

	default:
		flag.Usage()
	}

	return nil
}

// handleFmtCommand runs the tokenizer and formatter over a single file
// and writes the report markdown.
func handleFmtCommand(inputFile, outputFile, style string) error {
	raw, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("could not read recipe file %s: %w", inputFile, err)
	}

	_, body := cooklang.ParseFrontmatter(string(raw))
	tokens := cooklang.Tokenize(body)
	formatted := cooklang.FormatWith(string(raw), tokens, cooklang.StrategyFor(style))

	if outputFile == "" {
		fmt.Print(formatted)
		return nil
	}
	if err := os.WriteFile(outputFile, []byte(formatted), 0644); err != nil {
		return fmt.Errorf("could not write %s: %w", outputFile, err)
	}
	fmt.Printf("✅ Formatted %s into %s.\n", inputFile, outputFile)
	return nil
}

// buildSite runs the default full build. It is shared by `gen` and the
// dev server's rebuild hook.
func buildSite(opts builder.BuildOptions) error {
	siteCfg := getSiteConfig()

	theme, err := builder.LoadTheme(templateDir, siteCfg.Template)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	pageCount, err := builder.BuildSite(outputDir, recipesDir, staticDir, siteCfg, theme, opts)
	if err != nil {
		return fmt.Errorf("site generation failed: %w", err)
	}
	fmt.Printf("📄 Site: %d pages generated.\n", pageCount)
	return nil
}

func runFullBuild(opts builder.BuildOptions) error {
	if err := buildSite(opts); err != nil {
		return err
	}
	fmt.Println("✅ Build successful.")
	return nil
}

func getSiteConfig() config.SiteConfig {
	siteCfg, err := config.LoadSiteConfig(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "critical error: failed to load site config: %v\n", err)
		os.Exit(1)
	}
	return siteCfg
}

func printHelp() {
	fmt.Println("forkful - a quiet static site generator for cooklang recipes")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  forkful [global-flags] <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  gen                Generate the site from the recipes directory")
	fmt.Println("  fmt [options]      Format a .cook file into report markdown. Use 'forkful fmt -h' for options.")
	fmt.Println("  serve              Run a local dev server with auto-rebuild")
	fmt.Println("  new site <name>    Create a new site scaffold")
	fmt.Println("  new <type> <title> Create a new recipe from the archetype")
	fmt.Println()
	fmt.Println("Global Flags:")
	flag.PrintDefaults()
}
