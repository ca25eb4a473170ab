package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

const (
	maxGoroutines = 10
)

var (
	listFlag  = flag.String("l", "", "The path to the list of midi files,\nfind . -type f -name \"*.mid\" > midi_list.txt")
	maxFlag   = flag.Int("p", maxGoroutines, "Number of files processed in parallel, must be > 0")
	jsonFlag  = flag.Bool("json", false, "Print tracks as JSON")
	closeFlag = flag.Bool("close", false, "End notes still sounding at end of track instead of dropping them")
	debugFlag = flag.Bool("debug", false, "Debug logging")
)

func readList(file *os.File) <-chan string {
	out := make(chan string)

	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)

	go func() {
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				out <- line
			}
		}
		close(out)
	}()

	return out
}

func argList(args []string) <-chan string {
	out := make(chan string, len(args))
	for _, arg := range args {
		out <- arg
	}
	close(out)
	return out
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file.mid ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if (*listFlag == "" && flag.NArg() == 0) || *maxFlag <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger, err := newLogger(*debugFlag)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() // nolint:errcheck

	enableLogging(logger, *debugFlag)

	paths := argList(flag.Args())
	if *listFlag != "" {
		f, err := os.Open(*listFlag)
		if err != nil {
			logger.Fatal("open list", zap.String("path", *listFlag), zap.Error(err))
		}
		defer f.Close()

		paths = readList(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results := decodeAll(ctx, paths, *maxFlag, *closeFlag)

	failed := false
	for _, r := range results {
		if r.err != nil {
			failed = true
			logger.Error("decode", zap.String("name", r.name), zap.Int("tracks", len(r.tracks)), zap.Error(r.err))
		}
	}

	if *jsonFlag {
		err = writeJSON(os.Stdout, results)
	} else {
		err = writeText(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("write", zap.Error(err))
	}

	if failed {
		logger.Sync() // nolint:errcheck
		os.Exit(1)
	}
}
