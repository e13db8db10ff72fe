package main

import (
	"context"
	"fmt"
	"io"

	"github.com/minhyannv/property-assistant-go/pkg/address"
	"github.com/minhyannv/property-assistant-go/pkg/assistant"
	configpkg "github.com/minhyannv/property-assistant-go/pkg/config"
	loggerpkg "github.com/minhyannv/property-assistant-go/pkg/logger"
	"github.com/minhyannv/property-assistant-go/pkg/property"
)

// app runs the collect, fetch, upload and question flow once.
type app struct {
	cfg         configpkg.Config
	logger      loggerpkg.Logger
	in          io.Reader
	out         io.Writer
	interactive bool
	// propertyBaseURL overrides the lookup prefix; empty uses the default.
	propertyBaseURL string
}

func (a *app) run(ctx context.Context) error {
	if a.interactive {
		printWelcome(a.out)
	}
	collector := address.NewCollector(a.in, a.out)

	if !a.cfg.SkipFetch {
		if err := a.fetchProperty(ctx, collector); err != nil {
			return err
		}
	} else {
		loggerpkg.Debug(a.cfg.Verbose, a.logger, "fetch skipped", map[string]any{"path": a.cfg.OutputPath})
	}

	client := assistant.NewClient(a.cfg)
	fileID, err := assistant.UploadDocument(ctx, client, a.cfg.OutputPath)
	if err != nil {
		return err
	}
	loggerpkg.Info(a.logger, "document uploaded", map[string]any{"file_id": fileID, "path": a.cfg.OutputPath})

	session, err := assistant.NewSession(ctx, a.cfg, fileID,
		assistant.WithClient(client),
		assistant.WithLogger(loggerpkg.Named(a.logger, "assistant")),
		assistant.WithOutput(a.out),
	)
	if err != nil {
		return err
	}

	return runREPL(ctx, session, replOptions{
		Verbose: a.cfg.Verbose,
		Logger:  a.logger,
	}, collector.Scanner(), a.out)
}

// fetchProperty collects the address and zpid, then fetches and stores the
// record. A failed fetch is reported and the flow continues.
func (a *app) fetchProperty(ctx context.Context, collector *address.Collector) error {
	addr, err := collector.CollectAddress()
	if err != nil {
		return err
	}
	zpid, err := collector.CollectPropertyID()
	if err != nil {
		return err
	}

	fetcher, err := property.NewFetcher(a.cfg.Proxy,
		property.WithLogger(loggerpkg.Named(a.logger, "property"), a.cfg.Verbose))
	if err != nil {
		return err
	}
	svc := property.NewService(fetcher, property.NewStore(a.cfg.OutputPath), a.propertyBaseURL, loggerpkg.Named(a.logger, "property"))

	res := svc.FetchAndStore(ctx, addr.String(), zpid)
	_, _ = fmt.Fprintln(a.out, res.Message())
	return nil
}

func printWelcome(out io.Writer) {
	_, _ = fmt.Fprintln(out, "=== Property Assistant - Interactive Mode ===")
	_, _ = fmt.Fprintln(out, "Enter the property address and zpid, then ask questions about the listing.")
	_, _ = fmt.Fprintln(out, "Type 'exit' to end the session.")
	_, _ = fmt.Fprintln(out)
}
