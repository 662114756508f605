package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Urethramancer/i8086/assembler"
	"github.com/grimdork/climate/arg"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

func main() {
	opt := arg.New("asm86")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write machine code to this file instead of printing hex.", "", false, arg.VarString, nil)
	opt.SetPositional("FILE", "Assembly source (.asm) with MOV instructions.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := newLogger()
	inputFile := opt.GetPosString("FILE")

	data, err := os.ReadFile(inputFile)
	if err != nil {
		log.WithError(err).Fatal("Error reading input file")
	}

	code, err := assembler.New().Assemble(string(data))
	if err != nil {
		log.WithField("file", inputFile).WithError(err).Fatal("Assembly error")
	}

	if out := opt.GetString("output"); out != "" {
		if err := os.WriteFile(out, code, 0644); err != nil {
			log.WithError(err).Fatal("Error writing output file")
		}
		log.WithFields(logrus.Fields{"file": out, "bytes": len(code)}).Info("Machine code written")
		return
	}

	parts := make([]string, len(code))
	for i, b := range code {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	fmt.Println(strings.Join(parts, " "))
}

func newLogger() *logrus.Logger {
	tty := term.IsTerminal(int(os.Stderr.Fd()))
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      tty,
		DisableColors:    !tty,
		DisableTimestamp: true,
	})
	return log
}
