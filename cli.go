package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"xtdbg/emu/log"
)

type mode byte

const (
	serveMode mode = iota // Run the GDB/QMP debug server (default command)
	versionMode           // Show xtdbg version
)

type (
	CLI struct {
		Serve   Serve   `cmd:"" help:"Run the GDB and QMP debug server. (default command)" default:"true"`
		Version Version `cmd:"" help:"Show xtdbg version."`

		Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`

		mode mode
	}

	Serve struct {
		MemSize int  `name:"memsize" help:"Linear memory size in bytes for the reference machine." default:"1048576"`
		GDBPort int  `name:"gdb-port" help:"${gdbport_help}" default:"0"`
		QMPPort int  `name:"qmp-port" help:"${qmpport_help}" default:"0"`
		NoGDB   bool `name:"no-gdb" help:"Disable the GDB endpoint."`
		NoQMP   bool `name:"no-qmp" help:"Disable the QMP endpoint."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"gdbport_help": "GDB RSP TCP port. 0 uses the configured or default port.",
	"qmpport_help": "QMP TCP port. 0 uses the configured or default port.",
	"log_help":     "Enable logging for specified modules.",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("xtdbgd"),
		kong.Description("Remote debug server for an x86 DOS emulator. GDB RSP + QMP."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")
	checkf(ctx.Error, "failed to parse command line")

	switch ctx.Command() {
	case "version":
		cfg.mode = versionMode
	default:
		cfg.mode = serveMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	if strings.HasPrefix(ctx.Command(), "serve") {
		loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
		var strs []string
		for _, m := range log.ModuleNames() {
			strs = append(strs, "    - "+m)
		}

		fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	}

	return nil
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			lm |= logModMask(mod.Mask())
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if lm != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		return nil
	}

	if allLogs {
		lm = logModMask(log.ModuleMaskAll)
	}

	log.EnableDebugModules(log.ModuleMask(lm))
	return nil
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf(format+".\n"+err.Error(), args...)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
