package factory_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mikey/markerscan/internal/adapters/export"
	"github.com/mikey/markerscan/internal/adapters/source"
	"github.com/mikey/markerscan/internal/classifier"
	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/factory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Factories", func() {
	var (
		cfg *config.Config
		dir string
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		cfg = config.NewFromViper(config.NewEmptyViper())
	})

	Describe("SourceFactory", func() {
		It("substitutes an unavailable source for a missing database", func() {
			cfg.GetViper().Set("source.sqlite_path", filepath.Join(dir, "missing.db"))
			src, err := factory.NewSourceFactory(cfg, zap.NewNop()).CreateMessageSource(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(src).To(BeAssignableToTypeOf(&source.UnavailableSource{}))

			_, err = src.Fetch(context.Background(), core.Query{})
			Expect(err).To(MatchError(core.ErrSourceUnavailable))
		})

		It("opens a JSONL file", func() {
			path := filepath.Join(dir, "messages.jsonl")
			Expect(os.WriteFile(path, []byte(`{"content":"eureka"}`+"\n"), 0o644)).To(Succeed())
			cfg.GetViper().Set("source.type", "jsonl")
			cfg.GetViper().Set("source.jsonl_path", path)

			src, err := factory.NewSourceFactory(cfg, zap.NewNop()).CreateMessageSource(context.Background())
			Expect(err).NotTo(HaveOccurred())
			msgs, err := src.Fetch(context.Background(), core.Query{})
			Expect(err).NotTo(HaveOccurred())
			Expect(msgs).To(HaveLen(1))
		})

		It("rejects unknown source types", func() {
			cfg.GetViper().Set("source.type", "carrier-pigeon")
			_, err := factory.NewSourceFactory(cfg, zap.NewNop()).CreateMessageSource(context.Background())
			Expect(err).To(MatchError(ContainSubstring("unsupported source type")))
		})
	})

	Describe("ExporterFactory", func() {
		It("creates a file exporter by default", func() {
			cfg.GetViper().Set("export.output_dir", filepath.Join(dir, "out"))
			exp, err := factory.NewExporterFactory(cfg, zap.NewNop()).CreateExporter(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(exp).To(BeAssignableToTypeOf(&export.FileExporter{}))
		})

		It("requires a bucket for S3", func() {
			cfg.GetViper().Set("export.type", "s3")
			_, err := factory.NewExporterFactory(cfg, zap.NewNop()).CreateExporter(context.Background())
			Expect(err).To(HaveOccurred())
		})

		It("rejects unknown export types", func() {
			cfg.GetViper().Set("export.type", "fax")
			_, err := factory.NewExporterFactory(cfg, zap.NewNop()).CreateExporter(context.Background())
			Expect(err).To(MatchError(ContainSubstring("unsupported export type")))
		})
	})

	Describe("ClassifierFactory", func() {
		It("applies weight overrides to the built-in taxonomy", func() {
			cfg.GetViper().Set("analysis.weights", map[string]any{"recognition": 2})
			cats, err := factory.NewClassifierFactory(cfg, zap.NewNop()).LoadTaxonomy()
			Expect(err).NotTo(HaveOccurred())
			Expect(cats[2].Weight).To(Equal(2.0))

			c, err := factory.NewClassifierFactory(cfg, zap.NewNop()).CreateClassifier()
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Analyze("eureka", nil, nil).TotalScore).To(Equal(2.0))
		})

		It("loads a taxonomy file", func() {
			path := filepath.Join(dir, "taxonomy.yaml")
			Expect(os.WriteFile(path, []byte("categories:\n  - name: HOPE\n    weight: 1\n    patterns: [hope]\n"), 0o644)).To(Succeed())
			cfg.GetViper().Set("analysis.taxonomy_file", path)

			c, err := factory.NewClassifierFactory(cfg, zap.NewNop()).CreateClassifier()
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Analyze("I hope so", nil, nil).DominantMarker).To(HaveValue(Equal("HOPE")))
		})

		It("fails on invalid patterns", func() {
			path := filepath.Join(dir, "taxonomy.toml")
			Expect(os.WriteFile(path, []byte("[[categories]]\nname = \"BAD\"\nweight = 1.0\npatterns = [\"(\"]\n"), 0o644)).To(Succeed())
			cfg.GetViper().Set("analysis.taxonomy_file", path)

			_, err := factory.NewClassifierFactory(cfg, zap.NewNop()).CreateClassifier()
			Expect(err).To(MatchError(classifier.ErrInvalidPattern))
		})
	})
})
