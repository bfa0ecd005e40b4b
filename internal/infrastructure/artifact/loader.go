// Package artifact loads the frozen model, scaler, label encoders, feature
// column list and optional metadata from a directory of versioned JSON files.
package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/model"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/port"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/domain/service"
	"github.com/hammadmunir959/Student-Mental-Health-Diagnoser-Using-Gradient-Boosting/internal/infrastructure/ml"
)

// Artifact kinds. Kinds are listed longest first so that file name parsing
// never mistakes model_metadata_<v> for a model of version metadata_<v>.
const (
	KindModelMetadata  = "model_metadata"
	KindLabelEncoders  = "label_encoders"
	KindFeatureColumns = "feature_columns"
	KindScaler         = "scaler"
	KindModel          = "model"
)

var kinds = []string{KindModelMetadata, KindLabelEncoders, KindFeatureColumns, KindScaler, KindModel}

// Unversioned is reported as the version of an unversioned artifact set.
const Unversioned = "unversioned"

// Store is the loaded, read-only artifact set.
type Store struct {
	Classifier     port.Classifier
	Scaler         port.Scaler
	Encoders       map[string]port.Encoder
	Metadata       *model.ModelMetadata
	Files          map[string]string
	FeatureColumns []string
	Version        string
	Dir            string
}

// Options configures Load.
type Options struct {
	// Version pins the artifact version; empty selects the greatest version present.
	Version string
	// ONNXRuntimeLib is passed to the onnx backend.
	ONNXRuntimeLib string
}

// Load reads every artifact of one version from dir. Every failure is a
// *model.ArtifactError.
func Load(dir string, opts Options) (*Store, error) {
	files, err := scan(dir)
	if err != nil {
		return nil, err
	}

	version, err := resolveVersion(dir, files, opts.Version)
	if err != nil {
		return nil, err
	}

	store := &Store{
		Dir:      dir,
		Version:  version,
		Files:    make(map[string]string, len(kinds)),
		Encoders: make(map[string]port.Encoder),
	}
	if version == "" {
		store.Version = Unversioned
	}

	for _, kind := range kinds {
		path, ok := pick(files[kind], version)
		if !ok {
			if kind == KindModelMetadata {
				continue
			}
			return nil, model.NewArtifactError(kind, dir, "no %s file for version %q", kind, store.Version)
		}
		store.Files[kind] = filepath.Join(dir, path)
	}

	if err := store.loadColumns(); err != nil {
		return nil, err
	}
	if err := store.loadScaler(); err != nil {
		return nil, err
	}
	if err := store.loadEncoders(); err != nil {
		return nil, err
	}
	if err := store.loadMetadata(); err != nil {
		return nil, err
	}
	if err := store.loadModel(opts.ONNXRuntimeLib); err != nil {
		return nil, err
	}
	if err := store.checkWidths(); err != nil {
		return nil, err
	}

	return store, nil
}

// scan indexes the JSON artifact files of dir by kind, then by version
// ("" for unversioned files).
func scan(dir string) (map[string]map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &model.ArtifactError{Kind: "directory", Path: dir, Err: err}
	}

	files := make(map[string]map[string]string, len(kinds))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		kind, version, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		if files[kind] == nil {
			files[kind] = make(map[string]string)
		}
		files[kind][version] = entry.Name()
	}
	return files, nil
}

// parseName splits <kind>_<version>.json or <kind>.json.
func parseName(name string) (kind, version string, ok bool) {
	stem, isJSON := strings.CutSuffix(name, ".json")
	if !isJSON {
		return "", "", false
	}
	for _, k := range kinds {
		if stem == k {
			return k, "", true
		}
		if v, found := strings.CutPrefix(stem, k+"_"); found && v != "" {
			return k, v, true
		}
	}
	return "", "", false
}

func resolveVersion(dir string, files map[string]map[string]string, pinned string) (string, error) {
	models := files[KindModel]
	if pinned != "" {
		if _, ok := models[pinned]; !ok {
			return "", model.NewArtifactError(KindModel, dir, "no model file for pinned version %q", pinned)
		}
		return pinned, nil
	}

	versions := make([]string, 0, len(models))
	for v := range models {
		if v != "" {
			versions = append(versions, v)
		}
	}
	if len(versions) > 0 {
		sort.Strings(versions)
		return versions[len(versions)-1], nil
	}
	if _, ok := models[""]; ok {
		return "", nil
	}
	return "", model.NewArtifactError(KindModel, dir, "no model file found")
}

// pick prefers the exact version and falls back to the unversioned file.
func pick(byVersion map[string]string, version string) (string, bool) {
	if name, ok := byVersion[version]; ok {
		return name, true
	}
	name, ok := byVersion[""]
	return name, ok
}

func (s *Store) read(kind string, v interface{}) error {
	path := s.Files[kind]
	data, err := os.ReadFile(path)
	if err != nil {
		return &model.ArtifactError{Kind: kind, Path: path, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &model.ArtifactError{Kind: kind, Path: path, Err: fmt.Errorf("failed to decode: %w", err)}
	}
	return nil
}

func (s *Store) fail(kind string, err error) error {
	return &model.ArtifactError{Kind: kind, Path: s.Files[kind], Err: err}
}

func (s *Store) loadColumns() error {
	if err := s.read(KindFeatureColumns, &s.FeatureColumns); err != nil {
		return err
	}
	if len(s.FeatureColumns) == 0 {
		return s.fail(KindFeatureColumns, errors.New("column list is empty"))
	}
	return nil
}

func (s *Store) loadScaler() error {
	var export scalerExport
	if err := s.read(KindScaler, &export); err != nil {
		return err
	}

	var err error
	switch export.Type {
	case ScalerStandard, "":
		s.Scaler, err = NewStandardScaler(export.Mean, export.Scale)
	case ScalerMinMax:
		s.Scaler, err = NewMinMaxScaler(export.Min, export.Scale)
	default:
		err = fmt.Errorf("unsupported scaler type %q", export.Type)
	}
	if err != nil {
		s.Scaler = nil
		return s.fail(KindScaler, err)
	}
	return nil
}

func (s *Store) loadEncoders() error {
	var exports map[string]labelEncoderExport
	if err := s.read(KindLabelEncoders, &exports); err != nil {
		return err
	}
	for name, export := range exports {
		enc, err := NewLabelEncoder(export.Classes, export.MostFrequent)
		if err != nil {
			return s.fail(KindLabelEncoders, fmt.Errorf("encoder %q: %w", name, err))
		}
		s.Encoders[name] = enc
	}
	return nil
}

func (s *Store) loadMetadata() error {
	if _, ok := s.Files[KindModelMetadata]; !ok {
		return nil
	}
	var meta model.ModelMetadata
	if err := s.read(KindModelMetadata, &meta); err != nil {
		return err
	}
	s.Metadata = &meta
	return nil
}

func (s *Store) loadModel(onnxLib string) error {
	path := s.Files[KindModel]
	data, err := os.ReadFile(path)
	if err != nil {
		return s.fail(KindModel, err)
	}
	classifier, err := ml.Load(data, ml.Options{Dir: s.Dir, ONNXRuntimeLib: onnxLib})
	if err != nil {
		return s.fail(KindModel, err)
	}
	s.Classifier = classifier
	return nil
}

func (s *Store) checkWidths() error {
	n := len(s.FeatureColumns)
	if s.Scaler.Width() != n {
		return s.fail(KindScaler, fmt.Errorf("scaler width %d does not match %d feature columns", s.Scaler.Width(), n))
	}
	if s.Classifier.InputWidth() != n {
		return s.fail(KindModel, fmt.Errorf("model expects %d features, feature columns define %d", s.Classifier.InputWidth(), n))
	}
	return nil
}

// Threshold returns the decision threshold declared in the metadata, or zero
// when none is declared.
func (s *Store) Threshold() float64 {
	if s.Metadata == nil {
		return 0
	}
	return s.Metadata.Threshold
}

// EngineArtifacts returns the inputs of service.NewEngine.
func (s *Store) EngineArtifacts() service.EngineArtifacts {
	return service.EngineArtifacts{
		Classifier:   s.Classifier,
		Scaler:       s.Scaler,
		Encoders:     s.Encoders,
		Columns:      s.FeatureColumns,
		ModelVersion: s.Version,
		Threshold:    s.Threshold(),
	}
}

// Info describes the artifact set.
func (s *Store) Info(threshold float64) model.ModelInfo {
	encoders := make([]string, 0, len(s.Encoders))
	for name := range s.Encoders {
		encoders = append(encoders, name)
	}
	sort.Strings(encoders)

	return model.ModelInfo{
		Kind:           s.Classifier.Kind(),
		Version:        s.Version,
		Dir:            s.Dir,
		FeatureColumns: append([]string(nil), s.FeatureColumns...),
		Encoders:       encoders,
		Threshold:      threshold,
		Metadata:       s.Metadata,
	}
}

// Close releases resources held by the classifier, such as an inference session.
func (s *Store) Close() error {
	if c, ok := s.Classifier.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
