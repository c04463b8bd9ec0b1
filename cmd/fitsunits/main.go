// Command fitsunits parses FITS-style unit specification strings and
// reports their function tag, scale factor, and base-quantity exponent
// vector.
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/shlex"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/fitsunits/fitsunits/config"
	"github.com/fitsunits/fitsunits/ui"
	"github.com/fitsunits/fitsunits/units"
)

// This variable is set automatically as part of the release process.
// Please do NOT modify the following line.
var version = "dev"

// These variables are initialized from runtime/debug.BuildInfo.
var (
	vcsRevision string
	vcsTime     time.Time
	vcsModified bool
	goVersion   string
)

func init() {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	goVersion = buildInfo.GoVersion

	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			vcsRevision = setting.Value
		case "vcs.time":
			vcsTime, _ = time.Parse(time.RFC3339, setting.Value)
		case "vcs.modified":
			vcsModified = (setting.Value == "true")
		}
	}
}

var versionFlag = flag.Bool("version", false, "print version")
var logpath = flag.String("log", "", "log to file")
var configPath = flag.String("config", "", "path to the atom overlay config file")
var noconfig = flag.Bool("noconfig", false, "force the built-in atom table with no overlay")
var editconfig = flag.Bool("editconfig", false, "open the atom overlay config file in $EDITOR")
var batch = flag.String("batch", "", "read unit expressions, one per line, from a file")
var replFlag = flag.Bool("repl", false, "launch the interactive REPL")

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s @ %s\n", version, vcsRevision)
		return
	}

	log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	log.Printf("version: %s\n", version)
	log.Printf("go version: %s\n", goVersion)
	log.Printf("vcs.revision: %s\n", vcsRevision)
	log.Printf("vcs.time: %s\n", vcsTime)
	log.Printf("vcs.modified: %t\n", vcsModified)

	if *editconfig {
		if err := runEditConfig(); err != nil {
			exitWithError(err)
		}
		return
	}

	table, err := loadTable()
	if err != nil {
		exitWithError(err)
	}

	if *batch != "" {
		if err := runBatch(table, *batch); err != nil {
			exitWithError(err)
		}
		return
	}

	expr := flag.Arg(0)
	if expr != "" {
		if err := printResult(table, expr); err != nil {
			exitWithError(err)
		}
		return
	}

	if *replFlag || term.IsTerminal(int(os.Stdout.Fd())) {
		if err := ui.Run(table); err != nil {
			exitWithError(err)
		}
		return
	}

	if err := runStdin(table); err != nil {
		exitWithError(err)
	}
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] [unit expression]\n", os.Args[0])
	flag.PrintDefaults()
}

// overlayPath resolves the path to the overlay config file, honoring an
// explicit -config override.
func overlayPath() (string, error) {
	if *configPath != "" {
		return *configPath, nil
	}
	return config.OverlayPath()
}

// loadTable builds the atom table that parsing should use: the static
// table alone under -noconfig, or the static table extended with the
// user's overlay otherwise.
func loadTable() (*units.Table, error) {
	if *noconfig {
		log.Printf("Using default atom table with no overlay\n")
		return units.NewTableWithOverlay(nil)
	}

	overlay, err := loadOverlay()
	if err != nil {
		return nil, err
	}
	return overlay.Table()
}

// loadOverlay loads the overlay from an explicit -config path, or from
// the xdg default location (creating it if missing) when -config was
// not given.
func loadOverlay() (config.Overlay, error) {
	if *configPath == "" {
		return config.LoadOrCreateOverlay(false)
	}

	data, err := os.ReadFile(*configPath)
	if os.IsNotExist(err) {
		log.Printf("No overlay file at %q; using the built-in table\n", *configPath)
		return config.Overlay{}, nil
	} else if err != nil {
		return nil, err
	}

	var overlay config.Overlay
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, err
	}
	if err := overlay.Validate(); err != nil {
		return nil, err
	}
	return overlay, nil
}

func runEditConfig() error {
	path, err := overlayPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if _, err := config.LoadOrCreateOverlay(false); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		return errors.New("$EDITOR is not set")
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func runBatch(table *units.Table, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tINPUT\tFUNC\tSCALE\tUNITS\tERROR")

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields, err := shlex.Split(line)
		if err != nil || len(fields) == 0 {
			fmt.Fprintf(w, "\t%s\t\t\t\t%s\n", line, "could not split batch line")
			continue
		}
		expr := fields[0]
		label := ""
		if len(fields) > 1 {
			label = fields[1]
		}

		result, err := units.ParseWithTable(table, expr)
		if err != nil {
			fmt.Fprintf(w, "%s\t%s\t\t\t\t%s\n", label, expr, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%v\t\n", label, expr, result.Func, result.Scale, result.Vector.Map())
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return w.Flush()
}

func runStdin(table *units.Table) error {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	expr := strings.TrimSpace(string(data))
	return printResult(table, expr)
}

// parseOutput is the JSON shape printed for a single parsed expression.
type parseOutput struct {
	Func   string             `json:"func"`
	Scale  float64            `json:"scale"`
	Vector map[string]float64 `json:"units"`
}

func printResult(table *units.Table, expr string) error {
	result, err := units.ParseWithTable(table, expr)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(parseOutput{
		Func:   result.Func.String(),
		Scale:  result.Scale,
		Vector: result.Vector.Map(),
	})
}

// exitWithError reports err and exits with a code that distinguishes a
// rejected unit expression (1) from an ambient I/O failure (2) from an
// internal parser inconsistency (3), recovering the underlying
// *units.ParseError with errors.As even when it arrives wrapped by
// github.com/pkg/errors.
func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)

	var parseErr *units.ParseError
	if errors.As(err, &parseErr) {
		if parseErr.Code == units.InternalError {
			os.Exit(3)
		}
		os.Exit(1)
	}
	os.Exit(2)
}
