package main

import (
	"fmt"
	"os"

	"github.com/Urethramancer/i8086/disassembler"
	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func main() {
	opt := arg.New("dis86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the listing to this file instead of stdout.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "a", "addresses", "Append offset and raw bytes to each line.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "b", "bits", "Start the listing with a bits 16 directive.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "n", "nasm", "Sign immediates and size those stored to memory, so nasm reassembles the listing.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "s", "skip", "Skip unrecognised bytes instead of stopping.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "u", "unit", "Require the input length to be a multiple of this many bytes.", 1, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "v", "verbose", "Trace every decoded byte.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Raw 8086 machine code.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(opt.GetBool("verbose"))
	inputFile := opt.GetPosString("FILE")
	outputFile := opt.GetString("output")

	// The whole file is the instruction stream; there is no header.
	code, err := os.ReadFile(inputFile)
	if err != nil {
		log.WithError(err).Fatal("Error reading input file")
	}

	policy := disassembler.HaltOnUnknown
	if opt.GetBool("skip") {
		policy = disassembler.SkipUnknown
	}
	d := disassembler.New(
		disassembler.WithLogger(log),
		disassembler.WithPolicy(policy),
		disassembler.WithUnit(opt.GetInt("unit")),
	)

	text, err := d.Disassemble(code, disassembler.Layout{
		Header:    opt.GetBool("bits"),
		Addresses: opt.GetBool("addresses"),
		Nasm:      opt.GetBool("nasm"),
	})
	if err != nil {
		log.WithField("file", inputFile).WithError(err).Fatal("Disassembly error")
	}

	if outputFile == "" {
		fmt.Print(text)
		return
	}

	if err := os.WriteFile(outputFile, []byte(text), 0644); err != nil {
		log.WithError(err).Fatal("Error writing output file")
	}
	log.WithField("file", outputFile).Info("Disassembly written")
}

// newLogger logs to stderr, with colour only on a terminal.
func newLogger(verbose bool) *logrus.Logger {
	tty := term.IsTerminal(int(os.Stderr.Fd()))
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      tty,
		DisableColors:    !tty,
		DisableTimestamp: true,
	})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
