package di_test

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mikey/markerscan/internal/config"
	"github.com/mikey/markerscan/internal/core"
	"github.com/mikey/markerscan/internal/di"
	"github.com/mikey/markerscan/internal/ports"
	"github.com/mikey/markerscan/internal/service"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("BuildContainer", func() {
	var cfg *config.Config

	BeforeEach(func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "messages.jsonl")
		Expect(os.WriteFile(path, []byte(
			`{"content":"a moment of clarity","timestamp":"2026-01-27T09:00:00","author":"alpha"}`+"\n"), 0o644)).To(Succeed())

		v := config.NewEmptyViper()
		v.Set("source.type", "jsonl")
		v.Set("source.jsonl_path", path)
		v.Set("export.output_dir", filepath.Join(dir, "out"))
		cfg = config.NewFromViper(v)
	})

	It("wires the marker service end to end", func() {
		container, err := di.BuildContainer(cfg, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		err = container.Invoke(func(svc *service.MarkerService) error {
			results, err := svc.Scan(context.Background(), core.Query{}, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].DominantMarker).To(HaveValue(Equal("RECOGNITION")))
			return nil
		})
		Expect(err).NotTo(HaveOccurred())
	})

	It("provides the analyzer and the HTTP server", func() {
		container, err := di.BuildContainer(cfg, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())

		Expect(container.Invoke(func(a core.Analyzer, s ports.Server) {
			Expect(a.Analyze("eureka", nil, nil).MarkerCount).To(Equal(1))
			Expect(s).NotTo(BeNil())
		})).To(Succeed())
	})

	It("surfaces configuration errors on invoke", func() {
		cfg.GetViper().Set("analysis.weights", map[string]any{"nope": 1})
		container, err := di.BuildContainer(cfg, zap.NewNop())
		Expect(err).NotTo(HaveOccurred())
		Expect(container.Invoke(func(core.Analyzer) {})).NotTo(Succeed())
	})
})

var _ = Describe("BuildCLIContainer", func() {
	It("applies flags without registering them in the container", func() {
		dir := GinkgoT().TempDir()
		input := filepath.Join(dir, "messages.jsonl")
		Expect(os.WriteFile(input, []byte(`{"content":"eureka","author":"alpha"}`+"\n"), 0o644)).To(Succeed())
		cfgFile := filepath.Join(dir, "config.yaml")
		Expect(os.WriteFile(cfgFile, []byte("export:\n  output_dir: "+filepath.Join(dir, "out")+"\n"), 0o644)).To(Succeed())

		container, err := di.BuildCLIContainer(&di.CLIFlags{ConfigFile: cfgFile, InputFile: input})
		Expect(err).NotTo(HaveOccurred())

		Expect(container.Invoke(func(svc *service.MarkerService) {
			results, err := svc.Scan(context.Background(), core.Query{}, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
		})).To(Succeed())
		Expect(container.Invoke(func(*di.CLIFlags) {})).NotTo(Succeed())
	})
})
