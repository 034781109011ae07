package main

import (
	// ====================== OBSCOLL IMPORTS ============================
	"github.com/inoxlang/obscoll/internal/containers/common"
	"github.com/inoxlang/obscoll/internal/containers/seqcoll"
	"github.com/inoxlang/obscoll/internal/containers/setcoll"
	"github.com/inoxlang/obscoll/internal/utils"

	// ====================== STDLIB ============================
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	// ====================== THIRD PARTY ============================
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"
)

const (
	ERROR_STATUS_CODE = 1
	COMMAND_NAME      = "obscoll"

	SEQUENCE_SUBCMD = "sequence"
	SET_SUBCMD      = "set"
	HELP_SUBCMD     = "help"

	CMD_HELP = "usage: " + COMMAND_NAME + " <command> [flags] [elements...]\n\n" +
		"commands:\n" +
		"  sequence   add the elements to a sequence, then remove the ones given by -remove\n" +
		"  set        add the elements to a set, then remove the ones given by -remove\n" +
		"  help       show this message\n\n" +
		"flags:\n" +
		"  -veto <elements>    comma-separated elements whose removal is cancelled\n" +
		"  -remove <elements>  comma-separated elements to remove (sequence, set)\n" +
		"  -clear              clear the container at the end\n" +
		"  -debug              show the debug logs of the container\n" +
		"  -json               write JSON logs instead of human-readable ones\n"
)

var (
	SUBCOMMANDS = []string{SEQUENCE_SUBCMD, SET_SUBCMD, HELP_SUBCMD}
)

func main() {
	statusCode := _main(os.Args, os.Stdout, os.Stderr)
	if statusCode != 0 {
		os.Exit(statusCode)
	}
}

type demoConfig struct {
	elements []string
	vetoed   []string
	removed  []string
	clear    bool
	logger   zerolog.Logger
}

func _main(args []string, outW io.Writer, errW io.Writer) (statusCode int) {
	if len(args) < 2 {
		fmt.Fprint(errW, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	mainSubCommand := args[1]
	mainSubCommandArgs := args[2:]

	if !slices.Contains(SUBCOMMANDS, mainSubCommand) {
		fmt.Fprintf(errW, "unknown command '%s'\n%s", mainSubCommand, CMD_HELP)
		return ERROR_STATUS_CODE
	}

	if mainSubCommand == HELP_SUBCMD {
		fmt.Fprint(outW, CMD_HELP)
		return
	}

	flags := flag.NewFlagSet(mainSubCommand, flag.ContinueOnError)
	flags.SetOutput(errW)

	var veto, remove string
	var clear, debug, jsonLogs bool
	flags.StringVar(&veto, "veto", "", "comma-separated elements whose removal is cancelled")
	flags.StringVar(&remove, "remove", "", "comma-separated elements to remove")
	flags.BoolVar(&clear, "clear", false, "clear the container at the end")
	flags.BoolVar(&debug, "debug", false, "show debug logs")
	flags.BoolVar(&jsonLogs, "json", false, "write JSON logs")

	if err := flags.Parse(mainSubCommandArgs); err != nil {
		return ERROR_STATUS_CODE
	}

	var logOut io.Writer = zerolog.ConsoleWriter{Out: errW, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}
	if jsonLogs {
		logOut = errW
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	config := demoConfig{
		elements: flags.Args(),
		vetoed:   splitList(veto),
		removed:  splitList(remove),
		clear:    clear,
		logger:   zerolog.New(logOut).Level(level).With().Str("cmd", mainSubCommand).Logger(),
	}

	config.logger.Debug().
		Int("elements", len(config.elements)).
		Int("vetoed", utils.CountIf(config.elements, func(e string) bool { return slices.Contains(config.vetoed, e) })).
		Msg("start")

	switch mainSubCommand {
	case SEQUENCE_SUBCMD:
		runSequenceDemo(config, outW)
	case SET_SUBCMD:
		runSetDemo(config, outW)
	}
	return
}

func runSequenceDemo(config demoConfig, outW io.Writer) {
	seq := utils.Must(seqcoll.NewWithConfig[string](seqcoll.SequenceConfig{
		Config: common.Config{
			Name:   "demo-sequence",
			Logger: config.logger,
		},
		Capacity: len(config.elements),
	}))

	seq.OnBeforeRemove(vetoCallback(config.vetoed))
	seq.OnAfterAdd(logResult[string](config.logger, "added"))
	seq.OnAfterRemove(logResult[string](config.logger, "removed"))

	//errors are not possible: no callback changes the insertion index.
	utils.Must(seq.AddRange(config.elements))

	for _, e := range config.removed {
		fmt.Fprintf(outW, "remove %s: %t\n", e, seq.Remove(e))
	}

	if config.clear {
		seq.Clear()
	}

	fmt.Fprintf(outW, "[%s]\n", strings.Join(seq.ToSlice(), ", "))
}

func runSetDemo(config demoConfig, outW io.Writer) {
	set := setcoll.NewSetWithConfig[string](common.Config{
		Name:   "demo-set",
		Logger: config.logger,
	})

	set.OnBeforeRemove(vetoCallback(config.vetoed))
	set.OnAfterAdd(logResult[string](config.logger, "added"))
	set.OnAfterRemove(logResult[string](config.logger, "removed"))

	set.AddRange(config.elements)

	for _, e := range config.removed {
		fmt.Fprintf(outW, "remove %s: %t\n", e, set.Remove(e))
	}

	if config.clear {
		set.Clear()
	}

	elements := set.ToSlice()
	slices.Sort(elements)
	fmt.Fprintf(outW, "{%s}\n", strings.Join(elements, ", "))
}

func vetoCallback(vetoed []string) common.BeforeCallback[string] {
	return func(req *common.Request[string]) {
		if slices.Contains(vetoed, req.OldItem) {
			req.Cancel = true
		}
	}
}

func logResult[T any](logger zerolog.Logger, msg string) common.AfterCallback[T] {
	return func(res common.Result[T]) {
		logger.Info().Stringer("kind", res.Kind()).Int("index", res.Index()).Interface("element", res.Affected()).Msg(msg)
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return utils.FilterSlice(strings.Split(s, ","), func(e string) bool { return e != "" })
}
