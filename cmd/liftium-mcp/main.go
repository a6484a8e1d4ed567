package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	liftiummcp "github.com/claude/liftium/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	serverURL := flag.String("server", "", "Liftium server URL (e.g. https://liftium.tail1234.ts.net)")
	timezone := flag.String("timezone", "", "IANA timezone for \"today\" (default: local)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftium-mcp", Version)
		return
	}

	// stdout carries the MCP protocol.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftium-mcp -server <URL> [-timezone Europe/Berlin]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	loc := time.Local
	if *timezone != "" {
		var err error
		loc, err = time.LoadLocation(*timezone)
		if err != nil {
			log.Error("invalid timezone", "timezone", *timezone, "error", err)
			os.Exit(1)
		}
	}

	client := liftiummcp.NewHTTPClient(*serverURL)
	s := liftiummcp.New(client, liftiummcp.Options{Location: loc, Version: Version}, log)

	log.Info("serving MCP over stdio", "server", *serverURL)
	if err := mcpserver.ServeStdio(s); err != nil {
		log.Error("stdio server error", "error", err)
		os.Exit(1)
	}
}
