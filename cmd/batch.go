package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/platewatch/platewatch/internal/pipeline"
)

var (
	batchFile  string
	batchLimit int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze a CSV of name,city targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		requests, err := readBatchFile(batchFile)
		if err != nil {
			return err
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return processBatch(ctx, requests, batchLimit, cfg.Batch.MaxConcurrentTargets, func(ctx context.Context, req pipeline.Request) error {
			_, err := env.Pipeline.Run(ctx, req)
			return err
		})
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "CSV file of name,city rows (required)")
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of targets to process (0 = all)")
	batchCmd.MarkFlagRequired("file") //nolint:errcheck
	rootCmd.AddCommand(batchCmd)
}

// readBatchFile parses a two-column CSV of name,city rows. A header row
// starting with "name" is skipped; blank rows are ignored.
func readBatchFile(path string) ([]pipeline.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "batch: open file")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var requests []pipeline.Request
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "batch: read csv")
		}
		if len(row) < 2 {
			continue
		}
		name := strings.TrimSpace(row[0])
		city := strings.TrimSpace(row[1])
		if name == "" || city == "" {
			continue
		}
		if len(requests) == 0 && strings.EqualFold(name, "name") {
			continue
		}
		requests = append(requests, pipeline.Request{Name: name, City: city})
	}

	if len(requests) == 0 {
		return nil, eris.Errorf("batch: no usable rows in %s", path)
	}
	return requests, nil
}

// analyzeFunc is the callback signature for running one analysis.
type analyzeFunc func(ctx context.Context, req pipeline.Request) error

// processBatch applies limit, then analyzes targets concurrently.
// Individual failures are logged and counted, never fatal for the batch.
func processBatch(ctx context.Context, requests []pipeline.Request, limit, concurrency int, analyze analyzeFunc) error {
	if limit > 0 && len(requests) > limit {
		requests = requests[:limit]
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("targets", len(requests)),
		zap.Int("concurrency", concurrency),
	)

	var succeeded, failed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, req := range requests {
		g.Go(func() error {
			if err := analyze(gctx, req); err != nil {
				failed.Add(1)
				zap.L().Error("batch: analysis failed",
					zap.String("name", req.Name),
					zap.String("city", req.City),
					zap.Error(err),
				)
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: wait")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}
