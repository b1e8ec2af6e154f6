// amfcompile compiles an ACES AMF (Academy Color Encoding Specification
// Metadata File) into an executable color-management configuration and
// reports what it decided.
//
// Usage:
//
//	amfcompile [options] infile.amfxml
//
// Options:
//
//	-v           verbose output
//	-ref <path>  reference config path (default: built-in studio config)
//	-dump        print every registered color space and look, and the active display / view
//	-verify      recompile the same input and diff the two AMFInfo results
//	-version     show version information
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/mrjoshuak/go-amf/amf"
)

const version = "1.0.0"

func main() {
	verbose := flag.Bool("v", false, "verbose output")
	refPath := flag.String("ref", "", "reference config path (default: built-in studio config)")
	dump := flag.Bool("dump", false, "print every registered color space and look, and the active display / view")
	verify := flag.Bool("verify", false, "recompile and check the result is idempotent")
	showVersion := flag.Bool("version", false, "show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: amfcompile [options] infile.amfxml\n\n")
		fmt.Fprintf(os.Stderr, "Compile an AMF document into a color-management configuration.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("amfcompile version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) != 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := compile(args[0], amf.Options{RefConfigPath: *refPath}, *verbose, *dump, *verify); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func compile(path string, opts amf.Options, verbose, dump, verify bool) error {
	if verbose {
		fmt.Printf("Reading %s\n", path)
	}

	var info amf.AMFInfo
	cfg, err := amf.Compile(path, &info, opts)
	if err != nil {
		return fmt.Errorf("cannot compile: %w", err)
	}

	fmt.Printf("Clip:              %s\n", info.ClipName)
	fmt.Printf("Role:              %s\n", info.ClipIdentifier)
	fmt.Printf("Input color space: %s\n", info.InputColorSpaceName)
	fmt.Printf("Clip color space:  %s\n", info.ClipColorSpaceName)
	fmt.Printf("Display / View:    %s / %s\n", info.DisplayName, info.ViewName)
	fmt.Printf("Looks applied:     %d\n", info.NumLooksApplied)

	if dump {
		fmt.Println()
		fmt.Printf("Color spaces (%d):\n", cfg.NumColorSpaces())
		for i := 0; i < cfg.NumColorSpaces(); i++ {
			name, _ := cfg.ColorSpaceNameByIndex(i)
			fmt.Printf("  %s\n", name)
		}
		fmt.Printf("Looks (%d):\n", cfg.NumLooks())
		for i := 0; i < cfg.NumLooks(); i++ {
			l, _ := cfg.LookByIndex(i)
			fmt.Printf("  %s\n", l.Name)
		}
		fmt.Printf("Active display / view: %v / %v\n", cfg.ActiveDisplays(), cfg.ActiveViews())
	}

	if verify {
		var again amf.AMFInfo
		if _, err := amf.Compile(path, &again, opts); err != nil {
			return fmt.Errorf("cannot recompile for idempotence check: %w", err)
		}
		if diff := cmp.Diff(info, again); diff != "" {
			return fmt.Errorf("compile is not idempotent:\n%s", diff)
		}
		if verbose {
			fmt.Println("Idempotence check passed.")
		}
	}

	return nil
}
