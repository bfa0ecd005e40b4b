// Command artifactctl checks an artifact directory offline. It loads the
// artifacts exactly as the server does and exits non-zero when they are
// unusable, so a broken export is caught before deployment.
//
// Usage:
//
//	artifactctl verify [-dir DIR] [-version V]
//	artifactctl info   [-dir DIR] [-version V]
//	artifactctl score  [-dir DIR] [-version V] -answers FILE
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/dto"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/application/usecase"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/artifact"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/memory"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/messaging"
)

// Exit codes.
const (
	exitOK       = 0
	exitArtifact = 1
	exitUsage    = 2
	exitInput    = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	dir     string
	version string
	onnxLib string
	answers string
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}

	cmd := args[0]
	fs := flag.NewFlagSet("artifactctl "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	var opts options
	fs.StringVar(&opts.dir, "dir", envOr("ARTIFACT_DIR", "./artifacts"), "artifact directory")
	fs.StringVar(&opts.version, "version", os.Getenv("ARTIFACT_VERSION"), "pinned artifact version (default: greatest present)")
	fs.StringVar(&opts.onnxLib, "onnxruntime-lib", os.Getenv("ONNXRUNTIME_LIB"), "path to the onnxruntime shared library")
	if cmd == "score" {
		fs.StringVar(&opts.answers, "answers", "", "JSON file holding one questionnaire submission")
	}
	if err := fs.Parse(args[1:]); err != nil {
		return exitUsage
	}

	switch cmd {
	case "verify":
		return verify(opts, stdout, stderr)
	case "info":
		return info(opts, stdout, stderr)
	case "score":
		if opts.answers == "" {
			fmt.Fprintln(stderr, "artifactctl score: -answers is required")
			return exitUsage
		}
		return score(opts, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "artifactctl: unknown command %q\n", cmd)
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: artifactctl <verify|info|score> [-dir DIR] [-version V] [-answers FILE]")
}

// load reads the artifact set and builds the scoring engine the server would run.
func load(opts options) (*artifact.Store, *service.Engine, error) {
	store, err := artifact.Load(opts.dir, artifact.Options{Version: opts.version, ONNXRuntimeLib: opts.onnxLib})
	if err != nil {
		return nil, nil, err
	}
	engine, err := service.NewEngine(store.EngineArtifacts(), "")
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return store, engine, nil
}

func verify(opts options, stdout, stderr io.Writer) int {
	store, engine, err := load(opts)
	if err != nil {
		return reportLoadError(stderr, err)
	}
	defer store.Close()

	fmt.Fprintf(stdout, "ok: %s model, version %s, %d features, threshold %g\n",
		store.Classifier.Kind(), store.Version, len(store.FeatureColumns), engine.Threshold())
	for _, kind := range []string{artifact.KindModel, artifact.KindScaler, artifact.KindLabelEncoders, artifact.KindFeatureColumns, artifact.KindModelMetadata} {
		if path, ok := store.Files[kind]; ok {
			fmt.Fprintf(stdout, "  %-16s %s\n", kind, path)
		}
	}
	return exitOK
}

func info(opts options, stdout, stderr io.Writer) int {
	store, engine, err := load(opts)
	if err != nil {
		return reportLoadError(stderr, err)
	}
	defer store.Close()

	return writeJSON(stdout, stderr, dto.FromModelInfo(store.Info(engine.Threshold())))
}

func score(opts options, stdout, stderr io.Writer) int {
	raw, err := os.ReadFile(opts.answers)
	if err != nil {
		fmt.Fprintf(stderr, "artifactctl score: %v\n", err)
		return exitInput
	}
	var answers map[string]interface{}
	if err := json.Unmarshal(raw, &answers); err != nil {
		fmt.Fprintf(stderr, "artifactctl score: %s is not a JSON object: %v\n", opts.answers, err)
		return exitInput
	}

	store, engine, err := load(opts)
	if err != nil {
		return reportLoadError(stderr, err)
	}
	defer store.Close()

	metrics, err := usecase.NewMetrics(noop.NewMeterProvider().Meter("artifactctl"))
	if err != nil {
		fmt.Fprintf(stderr, "artifactctl score: %v\n", err)
		return exitArtifact
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := usecase.NewAssessStudent(engine, memory.NewAssessmentRepository(time.Minute),
		messaging.NewLogPublisher(logger), metrics, logger)

	result, err := uc.Execute(context.Background(), dto.AssessRequest{Answers: answers})
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			writeJSON(stderr, stderr, dto.FromValidationError(verr, uc.CrisisResources()))
			return exitInput
		}
		fmt.Fprintf(stderr, "artifactctl score: %v\n", err)
		return exitArtifact
	}

	return writeJSON(stdout, stderr, result)
}

func reportLoadError(stderr io.Writer, err error) int {
	var aerr *model.ArtifactError
	if errors.As(err, &aerr) {
		fmt.Fprintf(stderr, "artifact error (%s): %v\n", aerr.Kind, aerr)
	} else {
		fmt.Fprintf(stderr, "artifactctl: %v\n", err)
	}
	return exitArtifact
}

func writeJSON(w, stderr io.Writer, v interface{}) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(stderr, "artifactctl: %v\n", err)
		return exitArtifact
	}
	return exitOK
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
