// Copyright (c) 2026 GYCODES. All rights reserved.
// Author: dev@gycodes.io

package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/GYCODES/manga-translate/internal/platform/metrics"
)

// PipeEngine runs the bridge script as a child process per request.
//
// # Lifecycle
//
// One invocation = one process: the request line is written to stdin, stdin is
// closed, the script answers with one JSON line on stdout and exits. There is
// no persistent worker to supervise, at the cost of interpreter startup per
// call. Every run is bounded by the configured timeout via
// [exec.CommandContext]; a wedged interpreter becomes an error, never a hang.
type PipeEngine struct {
	command string
	script  string
	timeout time.Duration
	logger  *slog.Logger
}

// NewPipeEngine creates a bridge engine that spawns `command script` per call.
func NewPipeEngine(command, script string, timeout time.Duration, logger *slog.Logger) *PipeEngine {
	return &PipeEngine{
		command: command,
		script:  script,
		timeout: timeout,
		logger:  logger,
	}
}

// Translate implements [Engine].
func (e *PipeEngine) Translate(ctx context.Context, texts []string, targetLang, sourceLang string) ([]string, error) {
	line, err := e.exchange(ctx, request{
		Mode:       ModeTranslate,
		Texts:      texts,
		TargetLang: targetLang,
		Source:     sourceLang,
	})
	if err != nil {
		return nil, err
	}

	// Translate mode answers with a bare JSON string array.
	var translated []string
	if err := json.Unmarshal(line, &translated); err == nil {
		return translated, nil
	}

	// The bridge reports its own failures as an error envelope instead.
	var failure errResponse
	if err := json.Unmarshal(line, &failure); err == nil && failure.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, failure.Error)
	}

	return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, truncate(line))
}

// Recognize implements [Engine].
func (e *PipeEngine) Recognize(ctx context.Context, imageURL, lang string) ([]Block, error) {
	line, err := e.exchange(ctx, request{
		Mode: ModeOCR,
		URL:  imageURL,
		Lang: lang,
	})
	if err != nil {
		return nil, err
	}

	var response ocrResponse
	if err := json.Unmarshal(line, &response); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, truncate(line))
	}
	if response.Error != "" {
		return nil, fmt.Errorf("%w: %s", ErrMalformedOutput, response.Error)
	}

	return response.Blocks, nil
}

// exchange performs one request/response round trip with a fresh subprocess.
func (e *PipeEngine) exchange(ctx context.Context, req request) ([]byte, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("bridge: encode request: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, e.command, e.script)
	cmd.Stdin = bytes.NewReader(append(payload, '\n'))

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	startTime := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(startTime)

	// The bridge logs diagnostics on stderr; surface them at debug level.
	if stderr.Len() > 0 {
		e.logger.DebugContext(ctx, "bridge_stderr",
			slog.String("mode", req.Mode),
			slog.String("output", strings.TrimSpace(stderr.String())),
		)
	}

	if runErr != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			metrics.RecordBridge(req.Mode, "timeout", elapsed.Seconds())
			e.logger.WarnContext(ctx, "bridge_invocation_timeout",
				slog.String("mode", req.Mode),
				slog.Duration("timeout", e.timeout),
			)
			return nil, fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		}

		metrics.RecordBridge(req.Mode, "error", elapsed.Seconds())
		e.logger.WarnContext(ctx, "bridge_invocation_failed",
			slog.String("mode", req.Mode),
			slog.Any("error", runErr),
		)
		return nil, fmt.Errorf("bridge: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}

	line := firstLine(stdout.Bytes())
	if len(line) == 0 {
		metrics.RecordBridge(req.Mode, "empty", elapsed.Seconds())
		return nil, fmt.Errorf("%w: empty response", ErrMalformedOutput)
	}

	metrics.RecordBridge(req.Mode, "ok", elapsed.Seconds())
	return line, nil
}

// firstLine returns the first non-empty line of the bridge's stdout.
func firstLine(output []byte) []byte {
	for _, line := range bytes.Split(output, []byte("\n")) {
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) > 0 {
			return trimmed
		}
	}
	return nil
}

// truncate shortens raw output for error messages.
func truncate(raw []byte) string {
	const limit = 120
	s := string(raw)
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
